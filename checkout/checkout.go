package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"velour/booking"
	"velour/db"
	"velour/feeds"
	"velour/models"
	"velour/mq"
	"velour/stripe"
	"velour/utils"

	"github.com/julienschmidt/httprouter"
)

// CreateSessionHandler translates a persisted booking into a hosted checkout
// session. Failure is always recoverable: the booking stays pending/unpaid
// and the caller gets an error message instead of a redirect URL.
func CreateSessionHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body struct {
		BookingID string `json:"bookingId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.BookingID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "bookingId is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	b, err := booking.GetBooking(ctx, body.BookingID)
	if err != nil {
		if errors.Is(err, db.ErrNotConfigured) {
			utils.RespondWithError(w, http.StatusServiceUnavailable, "Booking storage is not configured")
			return
		}
		utils.RespondWithError(w, http.StatusNotFound, "Booking not found")
		return
	}

	session, err := stripe.CreateBookingSession(b.ID, b.VehicleID, b.ServiceType, b.Name, b.Email)
	if err != nil {
		log.Printf("checkout: session for booking %s failed: %v", b.ID, err)
		utils.RespondWithJSON(w, http.StatusBadGateway, utils.M{
			"error": "Payment could not be started. Your booking is saved; you can try again later.",
		})
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"url": session.URL})
}

// ReturnHandler observes the provider's redirect back. The session and sig
// query values must match the signature minted when the checkout URL was
// created, so only a redirect carrying the untampered pair can flip the
// payment status. Cancellation leaves the record untouched.
func ReturnHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query()
	bookingID := q.Get("booking")
	status := q.Get("status")
	if bookingID == "" || (status != "success" && status != "cancelled") {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid checkout return")
		return
	}
	if !stripe.VerifyReturnSignature(q.Get("session"), bookingID, q.Get("sig")) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid checkout signature")
		return
	}

	if status == "cancelled" {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"bookingId": bookingID, "paymentStatus": models.PaymentUnpaid})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := booking.UpdatePaymentStatus(ctx, bookingID, models.PaymentPaid); err != nil {
		if errors.Is(err, db.ErrNotConfigured) {
			utils.RespondWithError(w, http.StatusServiceUnavailable, "Booking storage is not configured")
			return
		}
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	mq.Emit(feeds.TopicBookings, "updated", bookingID)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"bookingId": bookingID, "paymentStatus": models.PaymentPaid})
}
