package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"velour/db"
	"velour/models"
	"velour/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateBooking assigns the server-generated id, timestamp and initial
// statuses, then inserts the record. The caller's status fields are ignored.
func CreateBooking(ctx context.Context, b *models.Booking) error {
	if err := db.Ensure(); err != nil {
		return err
	}
	b.ID = utils.GetUUID()
	b.CreatedAt = time.Now().Unix()
	b.Status = models.BookingPending
	b.PaymentStatus = models.PaymentUnpaid

	_, err := db.BookingsCollection.InsertOne(ctx, b)
	return err
}

// ListBookings returns all records, newest first.
func ListBookings(ctx context.Context) ([]models.Booking, error) {
	if err := db.Ensure(); err != nil {
		return nil, err
	}
	cur, err := db.BookingsCollection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	bookings := []models.Booking{}
	if err := cur.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	if err := db.Ensure(); err != nil {
		return nil, err
	}
	var b models.Booking
	if err := db.BookingsCollection.FindOne(ctx, bson.M{"id": id}).Decode(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

func validBookingStatus(s models.BookingStatus) bool {
	switch s {
	case models.BookingPending, models.BookingConfirmed, models.BookingCompleted, models.BookingCancelled:
		return true
	}
	return false
}

func validPaymentStatus(s models.PaymentStatus) bool {
	switch s {
	case models.PaymentUnpaid, models.PaymentPaid, models.PaymentRefunded:
		return true
	}
	return false
}

// UpdateBookingStatus sets exactly the status field. Last write wins; there
// is no concurrency token.
func UpdateBookingStatus(ctx context.Context, id string, status models.BookingStatus) error {
	if !validBookingStatus(status) {
		return fmt.Errorf("unknown booking status %q", status)
	}
	return updateField(ctx, id, "status", string(status))
}

// UpdatePaymentStatus sets exactly the paymentStatus field.
func UpdatePaymentStatus(ctx context.Context, id string, status models.PaymentStatus) error {
	if !validPaymentStatus(status) {
		return fmt.Errorf("unknown payment status %q", status)
	}
	return updateField(ctx, id, "paymentStatus", string(status))
}

func updateField(ctx context.Context, id, field, value string) error {
	if err := db.Ensure(); err != nil {
		return err
	}
	res, err := db.BookingsCollection.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{field: value}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("booking %s not found", id)
	}
	return nil
}

// Snapshot marshals the full booking list for the live feed. Consumers fold
// the latest snapshot into view state, so re-sending it is always safe.
func Snapshot(ctx context.Context) ([]byte, error) {
	bookings, err := ListBookings(ctx)
	if err != nil {
		return nil, err
	}
	return json.Marshal(map[string]any{"topic": "bookings", "bookings": bookings})
}
