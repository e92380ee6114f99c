package fare

import (
	"velour/models"
)

// Service-type multipliers. Hourly assumes a 3-hour minimum block; flagged as
// a business simplification, kept as-is.
var multipliers = map[models.ServiceType]float64{
	models.ServiceOneWay:    1,
	models.ServiceRoundTrip: 2,
	models.ServiceHourly:    3,
}

// Multiplier returns the fare multiplier for a service type, 0 when unknown.
func Multiplier(serviceType models.ServiceType) float64 {
	return multipliers[serviceType]
}

// Estimate computes the flat estimated fare for a vehicle's base fare and a
// service type. No vehicle selected means baseFare 0, which yields 0 and
// blocks submission upstream.
func Estimate(baseFare float64, serviceType models.ServiceType) float64 {
	if baseFare <= 0 {
		return 0
	}
	return baseFare * Multiplier(serviceType)
}
