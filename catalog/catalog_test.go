package catalog

import (
	"testing"

	"velour/models"
)

func TestSeatCount(t *testing.T) {
	cases := []struct {
		seats string
		want  int
	}{
		{"Up to 12 passengers", 12},
		{"Up to 3 passengers", 3},
		{"seats vary", 0},
		{"", 0},
	}
	for _, tc := range cases {
		got := SeatCount(models.VehicleOption{Seats: tc.seats})
		if got != tc.want {
			t.Errorf("SeatCount(%q) = %d, want %d", tc.seats, got, tc.want)
		}
	}
}

func TestLargestPicksHighestCapacity(t *testing.T) {
	best := Largest(DefaultFleet())
	if best == nil {
		t.Fatal("expected a vehicle")
	}
	if best.ID != "sprinter-van" {
		t.Fatalf("largest = %s, want sprinter-van", best.ID)
	}
}

func TestDefaultFleetIsACopy(t *testing.T) {
	fleet := DefaultFleet()
	fleet[0].BaseFare = 1
	if DefaultFleet()[0].BaseFare == 1 {
		t.Fatal("DefaultFleet leaked internal slice")
	}
}
