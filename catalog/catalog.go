package catalog

import (
	"context"
	"strconv"
	"strings"
	"time"

	"velour/db"
	"velour/models"

	"go.mongodb.org/mongo-driver/bson"
)

// Default fleet, served until an admin saves edited content.
var defaultFleet = []models.VehicleOption{
	{
		ID:       "exec-sedan",
		Name:     "Executive Sedan",
		Class:    "Sedan",
		Seats:    "Up to 3 passengers",
		Luggage:  "3 suitcases",
		Image:    "/static/fleetpic/exec-sedan.jpg",
		BaseFare: 95,
	},
	{
		ID:       "luxury-suv",
		Name:     "Luxury SUV",
		Class:    "SUV",
		Seats:    "Up to 6 passengers",
		Luggage:  "6 suitcases",
		Image:    "/static/fleetpic/luxury-suv.jpg",
		BaseFare: 120,
	},
	{
		ID:       "sprinter-van",
		Name:     "Mercedes Sprinter",
		Class:    "Van",
		Seats:    "Up to 12 passengers",
		Luggage:  "14 suitcases",
		Image:    "/static/fleetpic/sprinter-van.jpg",
		BaseFare: 150,
	},
	{
		ID:       "stretch-limo",
		Name:     "Stretch Limousine",
		Class:    "Limousine",
		Seats:    "Up to 8 passengers",
		Luggage:  "4 suitcases",
		Image:    "/static/fleetpic/stretch-limo.jpg",
		BaseFare: 175,
	},
}

func DefaultFleet() []models.VehicleOption {
	fleet := make([]models.VehicleOption, len(defaultFleet))
	copy(fleet, defaultFleet)
	return fleet
}

// Fleet returns the admin-edited fleet from the site-content document when
// one exists, falling back to the built-in catalog.
func Fleet(ctx context.Context) []models.VehicleOption {
	if err := db.Ensure(); err != nil {
		return DefaultFleet()
	}
	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc models.SiteContent
	if err := db.ContentCollection.FindOne(cctx, bson.M{}).Decode(&doc); err != nil || len(doc.Fleet) == 0 {
		return DefaultFleet()
	}

	fleet := make([]models.VehicleOption, 0, len(doc.Fleet))
	for _, e := range doc.Fleet {
		fleet = append(fleet, models.VehicleOption{
			ID:       e.ID,
			Name:     e.Name,
			Class:    e.Class,
			Seats:    e.Seats,
			Luggage:  e.Luggage,
			Image:    e.Image,
			BaseFare: e.Price,
		})
	}
	return fleet
}

// Lookup finds a vehicle by id, nil when absent.
func Lookup(ctx context.Context, id string) *models.VehicleOption {
	for _, v := range Fleet(ctx) {
		if v.ID == id {
			return &v
		}
	}
	return nil
}

// SeatCount extracts the numeric capacity from the descriptive seats text,
// e.g. "Up to 12 passengers" -> 12.
func SeatCount(v models.VehicleOption) int {
	for _, part := range strings.Fields(v.Seats) {
		if n, err := strconv.Atoi(part); err == nil {
			return n
		}
	}
	return 0
}

// Largest returns the highest-capacity vehicle of the fleet.
func Largest(fleet []models.VehicleOption) *models.VehicleOption {
	var best *models.VehicleOption
	bestSeats := -1
	for i := range fleet {
		if n := SeatCount(fleet[i]); n > bestSeats {
			best = &fleet[i]
			bestSeats = n
		}
	}
	return best
}
