package booking

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"velour/models"
	"velour/utils"
)

func sampleBooking() models.Booking {
	return models.Booking{
		ID:            "b1",
		Name:          "Ava Laurent",
		Email:         "ava@example.com",
		VehicleID:     "luxury-suv",
		ServiceType:   models.ServiceRoundTrip,
		Status:        models.BookingPending,
		PaymentStatus: models.PaymentUnpaid,
	}
}

func TestPaymentHandoffProviderFailureIsRecoverable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error":"declined"}`))
	}))
	defer srv.Close()

	t.Setenv("CHECKOUT_SECRET_KEY", "sk_test_123")
	t.Setenv("CHECKOUT_API_URL", srv.URL)

	b := sampleBooking()
	resp := utils.M{"booking": b}
	attachPaymentHandoff(resp, &b)

	if _, ok := resp["paymentUrl"]; ok {
		t.Fatal("failed handoff must not return a redirect url")
	}
	msg, ok := resp["paymentError"].(string)
	if !ok || msg == "" {
		t.Fatalf("paymentError = %v, want recoverable message", resp["paymentError"])
	}
	if b.Status != models.BookingPending || b.PaymentStatus != models.PaymentUnpaid {
		t.Fatalf("booking mutated on provider failure: status=%s payment=%s", b.Status, b.PaymentStatus)
	}
}

func TestPaymentHandoffAttachesCheckoutURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"url":"https://provider.example.com/pay/cs_77"}`))
	}))
	defer srv.Close()

	t.Setenv("CHECKOUT_SECRET_KEY", "sk_test_123")
	t.Setenv("CHECKOUT_API_URL", srv.URL)

	b := sampleBooking()
	resp := utils.M{"booking": b}
	attachPaymentHandoff(resp, &b)

	if _, ok := resp["paymentError"]; ok {
		t.Fatalf("unexpected paymentError: %v", resp["paymentError"])
	}
	if resp["paymentUrl"] != "https://provider.example.com/pay/cs_77" {
		t.Fatalf("paymentUrl = %v", resp["paymentUrl"])
	}
}
