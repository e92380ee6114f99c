package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"velour/booking"
	"velour/catalog"
	"velour/fare"
	"velour/models"
	"velour/utils"
)

// ruleGenerator is the deterministic fallback: keyword intents over vehicle,
// price and navigation questions. It must work with no external service at
// all, so it only touches the catalog and the form guards.
type ruleGenerator struct{}

func (g *ruleGenerator) Available() bool { return true }

func (g *ruleGenerator) Generate(req models.ChatRequest) (models.ChatReply, error) {
	msg := strings.ToLower(req.Message)

	switch {
	case containsAny(msg, "vehicle", "car", "fleet", "suv", "sedan", "van", "limo"):
		return g.vehicleReply(req.Context), nil
	case containsAny(msg, "price", "cost", "fare", "rate", "how much"):
		return g.priceReply(req.Context), nil
	case containsAny(msg, "next", "continue", "confirm", "checkout", "step", "proceed"):
		return g.navigationReply(msg, req.Context), nil
	case containsAny(msg, "hello", "hi", "hey"):
		return models.ChatReply{Reply: "Hello! I can help you pick a vehicle, estimate your fare, or walk you through the booking steps."}, nil
	default:
		return models.ChatReply{Reply: "I can help with our vehicles, pricing, or moving through the booking form. What would you like to know?"}, nil
	}
}

func containsAny(msg string, keywords ...string) bool {
	for _, k := range keywords {
		if strings.Contains(msg, k) {
			return true
		}
	}
	return false
}

func (g *ruleGenerator) vehicleReply(ctx models.ChatContext) models.ChatReply {
	cctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	fleet := catalog.Fleet(cctx)

	if ctx.Passengers >= 7 {
		if v := catalog.Largest(fleet); v != nil {
			return models.ChatReply{Reply: fmt.Sprintf(
				"For %d passengers I'd recommend our %s (%s) — it seats %s with room for %s.",
				ctx.Passengers, v.Name, v.Class, strings.ToLower(v.Seats), strings.ToLower(v.Luggage))}
		}
	}

	if ctx.Passengers > 0 {
		for _, v := range fleet {
			if catalog.SeatCount(v) >= ctx.Passengers {
				return models.ChatReply{Reply: fmt.Sprintf(
					"Our %s (%s) fits your party of %d nicely, starting at %s.",
					v.Name, v.Class, ctx.Passengers, utils.FormatUSD(v.BaseFare))}
			}
		}
	}

	names := make([]string, 0, len(fleet))
	for _, v := range fleet {
		names = append(names, v.Name)
	}
	return models.ChatReply{Reply: "Our fleet: " + strings.Join(names, ", ") + ". Tell me your passenger count and I'll suggest the best fit."}
}

func (g *ruleGenerator) priceReply(ctx models.ChatContext) models.ChatReply {
	cctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if ctx.VehicleID != "" && ctx.ServiceType != "" {
		if v := catalog.Lookup(cctx, ctx.VehicleID); v != nil {
			est := fare.Estimate(v.BaseFare, ctx.ServiceType)
			if est > 0 {
				return models.ChatReply{Reply: fmt.Sprintf(
					"A %s trip with the %s comes to an estimated %s.",
					ctx.ServiceType, v.Name, utils.FormatUSD(est))}
			}
		}
	}

	var lines []string
	for _, v := range catalog.Fleet(cctx) {
		lines = append(lines, fmt.Sprintf("%s from %s", v.Name, utils.FormatUSD(v.BaseFare)))
	}
	return models.ChatReply{Reply: "Base fares: " + strings.Join(lines, "; ") +
		". Round trips run double, hourly service is billed as a 3-hour block."}
}

// navigationReply proposes a step jump, but only after re-checking the form
// guards; an unmet guard gets an explanation, never a forced jump.
func (g *ruleGenerator) navigationReply(msg string, ctx models.ChatContext) models.ChatReply {
	target := booking.Step(ctx.Step) + 1
	if containsAny(msg, "confirm", "checkout") {
		target = booking.StepConfirm
	}
	if !target.Valid() {
		return models.ChatReply{Reply: "You're already on the final step — fill in your contact details and hit submit."}
	}

	form := booking.FormState{
		Step:           booking.Step(ctx.Step),
		ServiceType:    ctx.ServiceType,
		ServiceDate:    ctx.ServiceDate,
		PickupTime:     ctx.PickupTime,
		PickupAddress:  ctx.PickupAddress,
		DropoffAddress: ctx.DropoffAddress,
		Passengers:     ctx.Passengers,
		VehicleID:      ctx.VehicleID,
	}
	if errs := form.Jump(target); len(errs) > 0 {
		missing := make([]string, 0, len(errs))
		for _, e := range errs {
			missing = append(missing, e.Message)
		}
		return models.ChatReply{Reply: "Almost there — before moving on: " + strings.Join(missing, "; ") + "."}
	}

	return models.ChatReply{
		Reply:  fmt.Sprintf("Taking you to step %d.", target),
		Action: &models.ChatAction{Type: "goto_step", Step: int(target)},
	}
}
