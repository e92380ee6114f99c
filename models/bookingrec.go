package models

type ServiceType string

const (
	ServiceOneWay    ServiceType = "one-way"
	ServiceRoundTrip ServiceType = "round-trip"
	ServiceHourly    ServiceType = "hourly"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// VehicleOption is one entry of the fleet catalog.
type VehicleOption struct {
	ID       string  `json:"id" bson:"id"`
	Name     string  `json:"name" bson:"name"`
	Class    string  `json:"class" bson:"class"`
	Seats    string  `json:"seats" bson:"seats"`
	Luggage  string  `json:"luggage" bson:"luggage"`
	Image    string  `json:"image" bson:"image"`
	BaseFare float64 `json:"baseFare" bson:"baseFare"`
}

// Booking is the persisted reservation record. Status and PaymentStatus are
// independent axes: a booking can be confirmed and still unpaid.
type Booking struct {
	ID             string        `json:"id" bson:"id"`
	ServiceType    ServiceType   `json:"serviceType" bson:"serviceType"`
	ServiceDate    string        `json:"serviceDate" bson:"serviceDate"`
	PickupTime     string        `json:"pickupTime" bson:"pickupTime"`
	PickupAddress  string        `json:"pickupAddress" bson:"pickupAddress"`
	DropoffAddress string        `json:"dropoffAddress" bson:"dropoffAddress"`
	Passengers     int           `json:"passengers" bson:"passengers"`
	VehicleID      string        `json:"vehicleId" bson:"vehicleId"`
	Name           string        `json:"name" bson:"name"`
	Email          string        `json:"email" bson:"email"`
	Phone          string        `json:"phone" bson:"phone"`
	Notes          string        `json:"notes,omitempty" bson:"notes,omitempty"`
	EstimatedFare  float64       `json:"estimatedFare" bson:"estimatedFare"`
	Status         BookingStatus `json:"status" bson:"status"`
	PaymentStatus  PaymentStatus `json:"paymentStatus" bson:"paymentStatus"`
	CreatedAt      int64         `json:"createdAt" bson:"createdAt"`
}
