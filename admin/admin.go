package admin

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"velour/booking"
	"velour/db"
	"velour/globals"
	"velour/middleware"
	"velour/models"
	"velour/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"golang.org/x/crypto/bcrypt"
)

const sessionTTL = 12 * time.Hour

var pinHash []byte

// Init hashes the configured PIN once at startup so the plaintext never sits
// in memory past boot. Defaults to 1844 for local development.
func Init() {
	pin := os.Getenv("ADMIN_PIN")
	if pin == "" {
		pin = "1844"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("admin: failed to hash PIN: %v", err)
	}
	pinHash = hash
}

// CheckPIN compares an entered PIN against the configured one.
func CheckPIN(pin string) bool {
	if len(pinHash) == 0 {
		Init()
	}
	return bcrypt.CompareHashAndPassword(pinHash, []byte(pin)) == nil
}

// UnlockHandler exchanges the shared numeric PIN for a session token. A wrong
// PIN leaves the dashboard locked with an explicit error.
func UnlockHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body struct {
		PIN string `json:"pin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.PIN == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "PIN is required")
		return
	}

	if !CheckPIN(body.PIN) {
		utils.RespondWithError(w, http.StatusUnauthorized, "Incorrect PIN")
		return
	}

	sessionID := utils.GetUUID()
	expiresAt := time.Now().Add(sessionTTL)
	claims := middleware.Claims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	middleware.RegisterSession(sessionID)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"token":     token,
		"expiresAt": expiresAt.Unix(),
	})
}

// LockHandler revokes the caller's session.
func LockHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if sessionID, ok := r.Context().Value(globals.SessionKey).(string); ok {
		middleware.RevokeSession(sessionID)
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"locked": true})
}

// Stats are the dashboard's derived aggregates.
type Stats struct {
	PendingCount int     `json:"pendingCount"`
	PaidRevenue  float64 `json:"paidRevenue"`
	TotalCount   int     `json:"totalCount"`
}

// ComputeStats folds the booking list into dashboard aggregates. Booking
// status and payment status are independent axes, so both are scanned.
func ComputeStats(bookings []models.Booking) Stats {
	s := Stats{TotalCount: len(bookings)}
	for _, b := range bookings {
		if b.Status == models.BookingPending {
			s.PendingCount++
		}
		if b.PaymentStatus == models.PaymentPaid {
			s.PaidRevenue += b.EstimatedFare
		}
	}
	return s
}

func StatsHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	bookings, err := booking.ListBookings(ctx)
	if err != nil {
		if errors.Is(err, db.ErrNotConfigured) {
			utils.RespondWithError(w, http.StatusServiceUnavailable, "Booking storage is not configured")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not load bookings")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"stats": ComputeStats(bookings)})
}
