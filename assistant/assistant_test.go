package assistant

import (
	"strings"
	"testing"

	"velour/models"
)

func rules() *ruleGenerator { return &ruleGenerator{} }

func TestVehicleIntentLargePartyRecommendsLargestClass(t *testing.T) {
	reply, err := rules().Generate(models.ChatRequest{
		Message: "Which vehicle should I pick?",
		Context: models.ChatContext{Passengers: 8},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(reply.Reply, "Mercedes Sprinter") {
		t.Fatalf("expected largest-capacity recommendation, got %q", reply.Reply)
	}
}

func TestVehicleIntentSmallPartyFitsSmallestSuitable(t *testing.T) {
	reply, err := rules().Generate(models.ChatRequest{
		Message: "what car do you have",
		Context: models.ChatContext{Passengers: 2},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(reply.Reply, "Executive Sedan") {
		t.Fatalf("expected sedan for 2 passengers, got %q", reply.Reply)
	}
}

func TestPriceIntentUsesSelectedVehicleAndService(t *testing.T) {
	reply, err := rules().Generate(models.ChatRequest{
		Message: "how much will this cost?",
		Context: models.ChatContext{
			VehicleID:   "luxury-suv",
			ServiceType: models.ServiceRoundTrip,
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(reply.Reply, "$240.00") {
		t.Fatalf("expected round-trip SUV estimate $240.00 in %q", reply.Reply)
	}
}

func TestNavigationHonorsFormGuards(t *testing.T) {
	// Empty trip details: the jump must be refused with an explanation.
	reply, err := rules().Generate(models.ChatRequest{
		Message: "take me to the next step",
		Context: models.ChatContext{Step: 1},
	})
	if err != nil {
		t.Fatal(err)
	}
	if reply.Action != nil {
		t.Fatalf("navigation forced past an unmet guard: %+v", reply.Action)
	}
	if !strings.Contains(reply.Reply, "Pickup address") {
		t.Fatalf("refusal does not explain the unmet guard: %q", reply.Reply)
	}

	// Complete trip details: the jump is proposed.
	reply, err = rules().Generate(models.ChatRequest{
		Message: "next step please",
		Context: models.ChatContext{
			Step:           1,
			PickupAddress:  "JFK Terminal 4",
			DropoffAddress: "The Plaza Hotel",
			ServiceDate:    "2026-09-12",
			PickupTime:     "14:30",
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if reply.Action == nil || reply.Action.Type != "goto_step" || reply.Action.Step != 2 {
		t.Fatalf("expected goto_step 2 action, got %+v", reply.Action)
	}
}

func TestUnknownIntentFallsBackToHelp(t *testing.T) {
	reply, err := rules().Generate(models.ChatRequest{Message: "tell me a joke"})
	if err != nil {
		t.Fatal(err)
	}
	if reply.Reply == "" {
		t.Fatal("fallback reply must never be empty")
	}
}

func TestReplyUsesRulesWhenPrimaryUnconfigured(t *testing.T) {
	t.Setenv("ASSISTANT_API_KEY", "")

	reply := Reply(models.ChatRequest{
		Message: "vehicle for a big group",
		Context: models.ChatContext{Passengers: 8},
	})
	if !strings.Contains(reply.Reply, "Mercedes Sprinter") {
		t.Fatalf("rule fallback not selected: %q", reply.Reply)
	}
}
