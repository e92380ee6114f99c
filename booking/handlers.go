package booking

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"velour/catalog"
	"velour/db"
	"velour/fare"
	"velour/feeds"
	"velour/models"
	"velour/mq"
	"velour/stripe"
	"velour/utils"

	"github.com/julienschmidt/httprouter"
)

type createRequest struct {
	FormState
	StartPayment bool `json:"startPayment"`
}

// CreateBookingHandler validates the terminal submit, persists the record and
// optionally starts the checkout handoff. A checkout failure never rolls the
// booking back: the record stays pending/unpaid and the response carries a
// recoverable paymentError instead of a redirect URL.
func CreateBookingHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if errs := req.SubmitErrors(); len(errs) > 0 {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{"errors": errs})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	vehicle := catalog.Lookup(ctx, req.VehicleID)
	if vehicle == nil {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{
			"errors": []FieldError{{Field: "vehicleId", Message: "Unknown vehicle"}},
		})
		return
	}

	estimated := fare.Estimate(vehicle.BaseFare, req.ServiceType)
	if estimated <= 0 {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{
			"errors": []FieldError{{Field: "serviceType", Message: "Select a service type to get a fare"}},
		})
		return
	}

	b := models.Booking{
		ServiceType:    req.ServiceType,
		ServiceDate:    req.ServiceDate,
		PickupTime:     req.PickupTime,
		PickupAddress:  req.PickupAddress,
		DropoffAddress: req.DropoffAddress,
		Passengers:     req.Passengers,
		VehicleID:      req.VehicleID,
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Notes:          req.Notes,
		EstimatedFare:  estimated,
	}

	if err := CreateBooking(ctx, &b); err != nil {
		if errors.Is(err, db.ErrNotConfigured) {
			utils.RespondWithError(w, http.StatusServiceUnavailable, "Booking storage is not configured")
			return
		}
		log.Printf("booking: create failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not save booking")
		return
	}

	mq.Emit(feeds.TopicBookings, "created", b.ID)

	resp := utils.M{"booking": b}
	if req.StartPayment {
		attachPaymentHandoff(resp, &b)
	}

	utils.RespondWithJSON(w, http.StatusCreated, resp)
}

// attachPaymentHandoff adds either the hosted checkout URL or a recoverable
// paymentError to the submit response. The booking is already persisted as
// pending/unpaid; a provider failure never rolls it back and never redirects.
func attachPaymentHandoff(resp utils.M, b *models.Booking) {
	session, err := stripe.CreateBookingSession(b.ID, b.VehicleID, b.ServiceType, b.Name, b.Email)
	if err != nil {
		log.Printf("booking: checkout session for %s failed: %v", b.ID, err)
		resp["paymentError"] = "Your booking was saved, but payment could not be started. You can pay later from the confirmation email."
		return
	}
	resp["paymentUrl"] = session.URL
}

func ListBookingsHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	bookings, err := ListBookings(ctx)
	if err != nil {
		if errors.Is(err, db.ErrNotConfigured) {
			utils.RespondWithError(w, http.StatusServiceUnavailable, "Booking storage is not configured")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not load bookings")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"bookings": bookings})
}

// UpdateStatusHandler mutates exactly the status field of one record.
func UpdateStatusHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	updateOne(w, r, ps, func(ctx context.Context, id, value string) error {
		return UpdateBookingStatus(ctx, id, models.BookingStatus(value))
	}, "status")
}

// UpdatePaymentHandler mutates exactly the paymentStatus field of one record.
func UpdatePaymentHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	updateOne(w, r, ps, func(ctx context.Context, id, value string) error {
		return UpdatePaymentStatus(ctx, id, models.PaymentStatus(value))
	}, "paymentStatus")
}

func updateOne(w http.ResponseWriter, r *http.Request, ps httprouter.Params, apply func(context.Context, string, string) error, field string) {
	id := ps.ByName("id")
	var body map[string]string
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	value := body[field]
	if value == "" {
		utils.RespondWithError(w, http.StatusBadRequest, field+" is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := apply(ctx, id, value); err != nil {
		if errors.Is(err, db.ErrNotConfigured) {
			utils.RespondWithError(w, http.StatusServiceUnavailable, "Booking storage is not configured")
			return
		}
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	mq.Emit(feeds.TopicBookings, "updated", id)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"id": id, field: value})
}
