package booking

import (
	"fmt"
	"strings"

	"velour/models"
)

// Form steps, linear. Forward transitions are guarded; going back is always
// allowed.
type Step int

const (
	StepTripDetails Step = iota + 1
	StepVehicle
	StepConfirm
)

func (s Step) Valid() bool {
	return s >= StepTripDetails && s <= StepConfirm
}

// FormState is the client-side booking draft. It lives only for the duration
// of a form session; nothing is persisted until Submit validation passes.
type FormState struct {
	Step           Step               `json:"step"`
	ServiceType    models.ServiceType `json:"serviceType"`
	ServiceDate    string             `json:"serviceDate"`
	PickupTime     string             `json:"pickupTime"`
	PickupAddress  string             `json:"pickupAddress"`
	DropoffAddress string             `json:"dropoffAddress"`
	Passengers     int                `json:"passengers"`
	VehicleID      string             `json:"vehicleId"`
	Name           string             `json:"name"`
	Email          string             `json:"email"`
	Phone          string             `json:"phone"`
	Notes          string             `json:"notes,omitempty"`
}

// FieldError names the offending field so the UI can attach the message
// inline.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func required(field, value, message string) *FieldError {
	if strings.TrimSpace(value) == "" {
		return &FieldError{Field: field, Message: message}
	}
	return nil
}

func (f *FormState) tripDetailErrors() []FieldError {
	var errs []FieldError
	checks := []*FieldError{
		required("pickupAddress", f.PickupAddress, "Pickup address is required"),
		required("dropoffAddress", f.DropoffAddress, "Dropoff address is required"),
		required("serviceDate", f.ServiceDate, "Service date is required"),
		required("pickupTime", f.PickupTime, "Pickup time is required"),
	}
	for _, c := range checks {
		if c != nil {
			errs = append(errs, *c)
		}
	}
	return errs
}

func (f *FormState) vehicleErrors() []FieldError {
	if strings.TrimSpace(f.VehicleID) == "" {
		return []FieldError{{Field: "vehicleId", Message: "Please select a vehicle"}}
	}
	return nil
}

func (f *FormState) contactErrors() []FieldError {
	var errs []FieldError
	if e := required("name", f.Name, "Name is required"); e != nil {
		errs = append(errs, *e)
	}
	if e := required("email", f.Email, "Email is required"); e != nil {
		errs = append(errs, *e)
	} else if !strings.Contains(f.Email, "@") {
		errs = append(errs, FieldError{Field: "email", Message: "Email looks invalid"})
	}
	if e := required("phone", f.Phone, "Phone is required"); e != nil {
		errs = append(errs, *e)
	}
	return errs
}

// GuardErrors returns the validation failures blocking a forward move to
// target. Guards are cumulative: reaching step 3 requires both trip details
// and a vehicle.
func (f *FormState) GuardErrors(target Step) []FieldError {
	var errs []FieldError
	if target >= StepVehicle {
		errs = append(errs, f.tripDetailErrors()...)
	}
	if target >= StepConfirm {
		errs = append(errs, f.vehicleErrors()...)
	}
	return errs
}

// Advance moves one step forward when the current step's guard is satisfied.
func (f *FormState) Advance() []FieldError {
	if f.Step >= StepConfirm {
		return nil
	}
	if errs := f.GuardErrors(f.Step + 1); len(errs) > 0 {
		return errs
	}
	f.Step++
	return nil
}

// Back moves one step backward, never below step 1.
func (f *FormState) Back() {
	if f.Step > StepTripDetails {
		f.Step--
	}
}

// Jump moves directly to target. Backward jumps always succeed; forward jumps
// are rejected with the unmet guard's errors, never silently forced. The chat
// assistant goes through here too, so the form stays the sole authority.
func (f *FormState) Jump(target Step) []FieldError {
	if !target.Valid() {
		return []FieldError{{Field: "step", Message: "Unknown step"}}
	}
	if target <= f.Step {
		f.Step = target
		return nil
	}
	if errs := f.GuardErrors(target); len(errs) > 0 {
		return errs
	}
	f.Step = target
	return nil
}

// SubmitErrors validates the terminal submit action: every guard plus the
// contact fields. A non-empty result means nothing may be persisted.
func (f *FormState) SubmitErrors() []FieldError {
	errs := f.GuardErrors(StepConfirm)
	errs = append(errs, f.contactErrors()...)
	return errs
}
