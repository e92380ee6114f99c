package admin

import (
	"os"
	"testing"

	"velour/models"
)

func TestCheckPIN(t *testing.T) {
	os.Unsetenv("ADMIN_PIN")
	Init()

	if !CheckPIN("1844") {
		t.Fatal("default PIN 1844 must unlock")
	}
	for _, pin := range []string{"0000", "1843", "184", "18444", ""} {
		if CheckPIN(pin) {
			t.Errorf("PIN %q unlocked the dashboard", pin)
		}
	}
}

func TestCheckPINFromEnv(t *testing.T) {
	os.Setenv("ADMIN_PIN", "9021")
	Init()
	t.Cleanup(func() {
		os.Unsetenv("ADMIN_PIN")
		Init()
	})

	if !CheckPIN("9021") {
		t.Fatal("configured PIN must unlock")
	}
	if CheckPIN("1844") {
		t.Fatal("default PIN must not unlock once overridden")
	}
}

func TestComputeStats(t *testing.T) {
	bookings := []models.Booking{
		{Status: models.BookingPending, PaymentStatus: models.PaymentUnpaid, EstimatedFare: 240},
		{Status: models.BookingConfirmed, PaymentStatus: models.PaymentPaid, EstimatedFare: 95},
		{Status: models.BookingPending, PaymentStatus: models.PaymentPaid, EstimatedFare: 450},
		{Status: models.BookingCancelled, PaymentStatus: models.PaymentRefunded, EstimatedFare: 120},
	}

	s := ComputeStats(bookings)
	if s.PendingCount != 2 {
		t.Errorf("pendingCount = %d, want 2", s.PendingCount)
	}
	if s.PaidRevenue != 545 {
		t.Errorf("paidRevenue = %v, want 545", s.PaidRevenue)
	}
	if s.TotalCount != 4 {
		t.Errorf("totalCount = %d, want 4", s.TotalCount)
	}
}

func TestComputeStatsEmpty(t *testing.T) {
	s := ComputeStats(nil)
	if s.PendingCount != 0 || s.PaidRevenue != 0 || s.TotalCount != 0 {
		t.Fatalf("empty stats = %+v", s)
	}
}
