package stripe

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"velour/models"
	"velour/utils"
)

// ErrNotConfigured means CHECKOUT_SECRET_KEY is absent. Callers must treat it
// as recoverable: the booking stays persisted and the user is told payment
// could not start.
var ErrNotConfigured = errors.New("payment provider not configured")

type BookingSession struct {
	URL       string
	SessionID string
	BookingID string
}

type sessionRequest struct {
	BookingID     string `json:"bookingId"`
	VehicleID     string `json:"vehicleId"`
	ServiceType   string `json:"serviceType"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
}

type sessionResponse struct {
	URL   string `json:"url"`
	Error string `json:"error,omitempty"`
}

var httpClient = &http.Client{Timeout: 10 * time.Second}

// CreateBookingSession produces a hosted checkout URL for a booking. With
// CHECKOUT_API_URL set the provider endpoint is called; otherwise a signed
// hosted URL is built locally, which is enough for the dev checkout page.
func CreateBookingSession(bookingID, vehicleID string, serviceType models.ServiceType, customerName, customerEmail string) (BookingSession, error) {
	key := os.Getenv("CHECKOUT_SECRET_KEY")
	if key == "" {
		return BookingSession{}, ErrNotConfigured
	}

	req := sessionRequest{
		BookingID:     bookingID,
		VehicleID:     vehicleID,
		ServiceType:   string(serviceType),
		CustomerName:  customerName,
		CustomerEmail: customerEmail,
	}

	if api := os.Getenv("CHECKOUT_API_URL"); api != "" {
		return createRemoteSession(api, key, req)
	}
	return createHostedSession(key, req), nil
}

func createRemoteSession(api, key string, req sessionRequest) (BookingSession, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return BookingSession{}, err
	}

	httpReq, err := http.NewRequest(http.MethodPost, api, bytes.NewReader(body))
	if err != nil {
		return BookingSession{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+key)

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return BookingSession{}, fmt.Errorf("checkout provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	var out sessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return BookingSession{}, fmt.Errorf("checkout provider returned invalid response: %w", err)
	}
	if out.Error != "" {
		return BookingSession{}, errors.New(out.Error)
	}
	if resp.StatusCode != http.StatusOK || out.URL == "" {
		return BookingSession{}, fmt.Errorf("checkout provider returned status %d", resp.StatusCode)
	}

	return BookingSession{URL: out.URL, SessionID: utils.GetUUID(), BookingID: req.BookingID}, nil
}

func createHostedSession(key string, req sessionRequest) BookingSession {
	base := os.Getenv("CHECKOUT_BASE_URL")
	if base == "" {
		base = "http://localhost:5173/checkout"
	}
	sessionID := utils.GetUUID()

	q := url.Values{}
	q.Set("session", sessionID)
	q.Set("booking", req.BookingID)
	q.Set("vehicle", req.VehicleID)
	q.Set("service", req.ServiceType)
	q.Set("sig", sign(key, sessionID+"|"+req.BookingID))

	return BookingSession{
		URL:       base + "?" + q.Encode(),
		SessionID: sessionID,
		BookingID: req.BookingID,
	}
}

// VerifyReturnSignature checks the sig minted by createHostedSession against
// the session and booking IDs echoed back on the return leg.
func VerifyReturnSignature(sessionID, bookingID, sig string) bool {
	key := os.Getenv("CHECKOUT_SECRET_KEY")
	if key == "" || sessionID == "" || bookingID == "" || sig == "" {
		return false
	}
	expected := sign(key, sessionID+"|"+bookingID)
	return hmac.Equal([]byte(expected), []byte(sig))
}

func sign(key, data string) string {
	h := hmac.New(sha256.New, []byte(key))
	h.Write([]byte(data))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}
