package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"voyager/internal/models/itinerary"
	"voyager/pkg/utils"
)

// AIItineraryProvider asks a language model for itinerary JSON and runs the
// answer through the same boundary parser as the remote API.
type AIItineraryProvider struct {
	client utils.PlannerClientInterface
	log    *zap.Logger
}

func NewAIItineraryProvider(client utils.PlannerClientInterface, log *zap.Logger) *AIItineraryProvider {
	return &AIItineraryProvider{client: client, log: log}
}

func (p *AIItineraryProvider) Generate(ctx context.Context, req itinerary.TripRequest) (*itinerary.GenerateResponse, error) {
	startTime := time.Now()

	raw, err := p.client.GenerateJSON(ctx, buildGeneratePrompt(req))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrItineraryService, err)
	}
	p.log.Debug("planner answered",
		zap.Duration("took", time.Since(startTime)),
		zap.Int("bytes", len(raw)))

	out, err := itinerary.ParseGenerateResponse([]byte(raw))
	if err != nil {
		p.log.Warn("planner returned an invalid itinerary", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", utils.ErrUnexpectedBehaviorOfAI, err)
	}
	return out, nil
}

func (p *AIItineraryProvider) PlanWithPicks(ctx context.Context, req itinerary.PicksRequest) (*itinerary.PicksResponse, error) {
	raw, err := p.client.GenerateJSON(ctx, buildPicksPrompt(req))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrItineraryService, err)
	}

	out, err := itinerary.ParsePicksResponse([]byte(raw))
	if err != nil {
		p.log.Warn("planner returned an invalid picks plan", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", utils.ErrUnexpectedBehaviorOfAI, err)
	}
	return out, nil
}

const optionSchema = `{
  "id": "opt_1",
  "label": "Itinerary Plan 1",
  "total_estimated_cost": 2840,
  "daily_plan": {
    "flight_from_source": {"from_location": "SFO", "to_location": "NRT", "start_time": "2026-03-15T08:00:00Z", "reach_by": "2026-03-16T14:30:00Z"},
    "flight_to_origin": {"from_location": "NRT", "to_location": "SFO", "start_time": "2026-03-19T10:00:00Z", "reach_by": "2026-03-19T18:00:00Z"},
    "hotel_stay": [{"name": "Hotel name", "check_in": "2026-03-16", "check_out": "2026-03-19", "google_maps_url": "https://www.google.com/maps/search/Hotel+name"}],
    "days": [
      {"day": 1, "activities": [{"start_from": "Place", "start_time": "09:00", "reach_time": "09:30", "time_to_spend": "2h", "google_maps_url": "https://www.google.com/maps/search/Place"}]}
    ]
  }
}`

func (p *AIItineraryProvider) Close() error {
	return p.client.Close()
}

func buildGeneratePrompt(req itinerary.TripRequest) string {
	var prompt strings.Builder

	prompt.WriteString("Plan a trip and return exactly three alternative itineraries.\n\n")
	prompt.WriteString("Trip:\n")
	prompt.WriteString(fmt.Sprintf("- From: %s\n- To: %s\n", req.Origin, req.Destination))
	if req.StartDate != "" || req.EndDate != "" {
		prompt.WriteString(fmt.Sprintf("- Dates: %s to %s\n", orDash(req.StartDate), orDash(req.EndDate)))
		if days := utils.TripDays(req.StartDate, req.EndDate); days > 0 {
			prompt.WriteString(fmt.Sprintf("- Length: %d days\n", days))
		}
	} else {
		prompt.WriteString("- Dates: flexible, pick a sensible trip length and report it as suggested_days\n")
	}
	prompt.WriteString(fmt.Sprintf("- Travellers: %d\n", req.NumPersons))
	if req.AccommodationType != "" {
		prompt.WriteString(fmt.Sprintf("- Accommodation: %s\n", req.AccommodationType))
	}
	if req.TotalBudget > 0 {
		prompt.WriteString(fmt.Sprintf("- Total budget: %d\n", req.TotalBudget))
	} else if req.BudgetPerPerson > 0 {
		prompt.WriteString(fmt.Sprintf("- Budget per person: %d\n", req.BudgetPerPerson))
	}
	if req.Pace != "" {
		prompt.WriteString(fmt.Sprintf("- Pace: %s\n", req.Pace))
	}
	if len(req.Interests) > 0 {
		prompt.WriteString(fmt.Sprintf("- Interests: %s\n", strings.Join(req.Interests, ", ")))
	}
	if req.PassportCountry != "" {
		prompt.WriteString(fmt.Sprintf("- Passport: %s\n", req.PassportCountry))
	}
	if req.Accessibility {
		prompt.WriteString("- Needs step-free, accessible venues\n")
	}
	if req.Dietary {
		prompt.WriteString("- Has dietary restrictions; prefer places with options\n")
	}

	prompt.WriteString("\nReturn JSON only, in this format:\n")
	prompt.WriteString(`{"suggested_days": 5, "options": [` + optionSchema + `]}`)
	prompt.WriteString("\n\nRules: day numbers start at 1, total_estimated_cost is a non-negative number for the whole party, ids are unique.\n")

	return prompt.String()
}

func buildPicksPrompt(req itinerary.PicksRequest) string {
	var prompt strings.Builder

	prompt.WriteString("Build one itinerary that visits every place the traveller picked.\n\n")
	if req.Origin != "" || req.Destination != "" {
		prompt.WriteString(fmt.Sprintf("Route: %s to %s\n", orDash(req.Origin), orDash(req.Destination)))
	}
	if req.StartDate != "" || req.EndDate != "" {
		prompt.WriteString(fmt.Sprintf("Dates: %s to %s\n", orDash(req.StartDate), orDash(req.EndDate)))
	}

	prompt.WriteString("Picked places:\n")
	for i, pick := range req.Picks {
		prompt.WriteString(fmt.Sprintf("%d. %s", i+1, pick.Label))
		if pick.GoogleMapsURL != "" {
			prompt.WriteString(fmt.Sprintf(" (%s)", pick.GoogleMapsURL))
		}
		prompt.WriteString("\n")
	}

	prompt.WriteString("\nReturn JSON only, in this format:\n")
	prompt.WriteString(`{"option_id": "picks_1", "option": ` + optionSchema + `}`)
	prompt.WriteString("\n")

	return prompt.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
