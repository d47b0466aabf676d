package services

import (
	"context"
	"fmt"

	"voyager/internal/models/itinerary"
)

// MockItineraryProvider returns fixed Tokyo itineraries. It backs local development
// and tests when no itinerary API is configured.
type MockItineraryProvider struct{}

func NewMockItineraryProvider() *MockItineraryProvider {
	return &MockItineraryProvider{}
}

func (m *MockItineraryProvider) Generate(ctx context.Context, req itinerary.TripRequest) (*itinerary.GenerateResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := &itinerary.GenerateResponse{Options: mockTokyoOptions()}
	if req.StartDate == "" || req.EndDate == "" {
		days := 4
		out.SuggestedDays = &days
	}
	return out, nil
}

var pickSlots = [][2]string{{"09:00", "09:30"}, {"12:00", "12:20"}, {"15:00", "15:30"}}

// PlanWithPicks lays the picks out three per day in the order given.
func (m *MockItineraryProvider) PlanWithPicks(ctx context.Context, req itinerary.PicksRequest) (*itinerary.PicksResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var days []itinerary.DayPlan
	for i, pick := range req.Picks {
		if i%len(pickSlots) == 0 {
			days = append(days, itinerary.DayPlan{Day: len(days) + 1})
		}
		slot := pickSlots[i%len(pickSlots)]
		day := &days[len(days)-1]
		day.Activities = append(day.Activities, itinerary.Activity{
			Name:          pick.Label,
			StartFrom:     pick.Label,
			StartTime:     slot[0],
			ReachTime:     slot[1],
			TimeToSpend:   "2h",
			GoogleMapsURL: pick.GoogleMapsURL,
		})
	}

	plan := itinerary.DailyPlan{Days: days}
	if req.Origin != "" {
		plan.FlightFromSource = &itinerary.FlightLeg{FromLocation: req.Origin, ToLocation: req.Destination, StartTime: req.StartDate}
		plan.FlightToOrigin = &itinerary.FlightLeg{FromLocation: req.Destination, ToLocation: req.Origin, StartTime: req.EndDate}
	}

	id := fmt.Sprintf("picks_%d", len(req.Picks))
	return &itinerary.PicksResponse{
		OptionID: id,
		Option: itinerary.Option{
			ID:                 id,
			Label:              "Your picks",
			DailyPlan:          plan,
			TotalEstimatedCost: float64(600 + 150*len(req.Picks)),
		},
	}, nil
}

func mapsSearch(q string) string {
	return "https://www.google.com/maps/search/" + q
}

func mockTokyoOptions() []itinerary.Option {
	return []itinerary.Option{
		{
			ID:    "opt_1",
			Label: "Itinerary Plan 1",
			DailyPlan: itinerary.DailyPlan{
				FlightFromSource: &itinerary.FlightLeg{FromLocation: "SFO", StartTime: "2026-03-15T08:00:00Z", ReachBy: "2026-03-16T14:30:00Z"},
				FlightToOrigin:   &itinerary.FlightLeg{FromLocation: "NRT", ToLocation: "SFO", StartTime: "2026-03-19T10:00:00Z", ReachBy: "2026-03-19T18:00:00Z"},
				HotelStay: []itinerary.HotelStay{
					{Name: "Aman Tokyo", CheckIn: "2026-03-16", CheckOut: "2026-03-19", GoogleMapsURL: mapsSearch("Aman+Tokyo")},
				},
				Days: []itinerary.DayPlan{
					{Day: 1, Activities: []itinerary.Activity{
						{StartFrom: "NRT", StartTime: "14:30", ReachTime: "16:00", TimeToSpend: "1h 30m"},
						{StartFrom: "Hotel", StartTime: "18:00", ReachTime: "18:30", TimeToSpend: "2h"},
					}},
					{Day: 2, Activities: []itinerary.Activity{
						{StartFrom: "Hotel", StartTime: "09:00", ReachTime: "09:45", TimeToSpend: "2h"},
						{StartFrom: "Tsukiji", StartTime: "12:00", ReachTime: "12:15", TimeToSpend: "1h 30m", GoogleMapsURL: mapsSearch("Tsukiji+market+Tokyo")},
						{StartFrom: "TeamLab", StartTime: "15:00", ReachTime: "15:30", TimeToSpend: "2h", GoogleMapsURL: mapsSearch("teamLab+Borderless+Tokyo")},
					}},
					{Day: 3, Activities: []itinerary.Activity{
						{StartFrom: "Hotel", StartTime: "08:00", ReachTime: "10:30", TimeToSpend: "4h"},
						{StartFrom: "Mt. Fuji", StartTime: "15:00", ReachTime: "18:00", TimeToSpend: "-", GoogleMapsURL: mapsSearch("Mt+Fuji")},
					}},
				},
			},
			TotalEstimatedCost: 5500,
		},
		{
			ID:    "opt_2",
			Label: "Itinerary Plan 2",
			DailyPlan: itinerary.DailyPlan{
				FlightFromSource: &itinerary.FlightLeg{FromLocation: "SFO", StartTime: "2026-03-15T10:00:00Z", ReachBy: "2026-03-16T16:00:00Z"},
				FlightToOrigin:   &itinerary.FlightLeg{FromLocation: "HND", ToLocation: "SFO", StartTime: "2026-03-19T18:00:00Z", ReachBy: "2026-03-19T12:00:00Z"},
				HotelStay: []itinerary.HotelStay{
					{Name: "The Gate Hotel Asakusa", CheckIn: "2026-03-16", CheckOut: "2026-03-19", GoogleMapsURL: mapsSearch("The+Gate+Hotel+Asakusa")},
				},
				Days: []itinerary.DayPlan{
					{Day: 1, Activities: []itinerary.Activity{
						{StartFrom: "HND", StartTime: "16:00", ReachTime: "17:30", TimeToSpend: "1h"},
						{StartFrom: "Shibuya", StartTime: "19:00", ReachTime: "19:30", TimeToSpend: "2h", GoogleMapsURL: mapsSearch("Shibuya+Crossing+Tokyo")},
					}},
					{Day: 2, Activities: []itinerary.Activity{
						{StartFrom: "Hotel", StartTime: "09:00", ReachTime: "09:30", TimeToSpend: "1h 30m"},
						{StartFrom: "Harajuku", StartTime: "11:00", ReachTime: "11:20", TimeToSpend: "2h", GoogleMapsURL: mapsSearch("Harajuku+Tokyo")},
						{StartFrom: "Ginza", StartTime: "14:00", ReachTime: "14:30", TimeToSpend: "2h", GoogleMapsURL: mapsSearch("Ginza+Tokyo")},
					}},
					{Day: 3, Activities: []itinerary.Activity{
						{StartFrom: "Hotel", StartTime: "08:30", ReachTime: "09:00", TimeToSpend: "3h"},
					}},
				},
			},
			TotalEstimatedCost: 2840,
		},
		{
			ID:    "opt_3",
			Label: "Itinerary Plan 3",
			DailyPlan: itinerary.DailyPlan{
				FlightFromSource: &itinerary.FlightLeg{FromLocation: "SFO", StartTime: "2026-03-15T23:00:00Z", ReachBy: "2026-03-16T06:00:00Z"},
				FlightToOrigin:   &itinerary.FlightLeg{FromLocation: "NRT", ToLocation: "SFO", StartTime: "2026-03-18T22:00:00Z", ReachBy: "2026-03-18T16:00:00Z"},
				HotelStay: []itinerary.HotelStay{
					{Name: "Hotel Mystays Asakusa", CheckIn: "2026-03-16", CheckOut: "2026-03-19", GoogleMapsURL: mapsSearch("Mystays+Asakusa")},
				},
				Days: []itinerary.DayPlan{
					{Day: 1, Activities: []itinerary.Activity{
						{StartFrom: "NRT", StartTime: "06:00", ReachTime: "08:30", TimeToSpend: "2h"},
						{StartFrom: "Asakusa", StartTime: "10:00", ReachTime: "10:15", TimeToSpend: "3h", GoogleMapsURL: mapsSearch("Senso-ji+Temple+Asakusa")},
					}},
					{Day: 2, Activities: []itinerary.Activity{
						{StartFrom: "Hotel", StartTime: "07:00", ReachTime: "07:30", TimeToSpend: "2h"},
						{StartFrom: "Ueno Park", StartTime: "10:00", ReachTime: "10:20", TimeToSpend: "3h", GoogleMapsURL: mapsSearch("Ueno+Park+Tokyo")},
					}},
				},
			},
			TotalEstimatedCost: 1420,
		},
	}
}
