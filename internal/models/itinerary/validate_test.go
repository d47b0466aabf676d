package itinerary

import (
	"errors"
	"math"
	"testing"
)

func TestParseGenerateResponse(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantErr     error
		anyErr      bool
		wantOptions int
	}{
		{"missing options", `{}`, ErrMissingOptions, false, 0},
		{"null options", `{"options":null}`, ErrMissingOptions, false, 0},
		{"object options", `{"options":{}}`, ErrMissingOptions, false, 0},
		{"empty options is soft-empty", `{"options":[]}`, nil, false, 0},
		{"not json", `<html>`, nil, true, 0},
		{"option without id", `{"options":[{"label":"x","daily_plan":{"days":[]},"total_estimated_cost":10}]}`, nil, true, 0},
		{"negative cost", `{"options":[{"id":"a","daily_plan":{"days":[]},"total_estimated_cost":-1}]}`, nil, true, 0},
		{"cost too large", `{"options":[{"id":"a","daily_plan":{"days":[]},"total_estimated_cost":3e17}]}`, nil, true, 0},
		{"day zero", `{"options":[{"id":"a","daily_plan":{"days":[{"day":0,"activities":[]}]},"total_estimated_cost":1}]}`, nil, true, 0},
		{"hotel without name", `{"options":[{"id":"a","daily_plan":{"hotel_stay":[{"check_in":"2026-03-16"}],"days":[]},"total_estimated_cost":1}]}`, nil, true, 0},
		{"valid", `{"options":[{"id":"a","label":"A","daily_plan":{"days":[{"day":1,"activities":[{"start_from":"NRT"}]}]},"total_estimated_cost":2840}],"suggested_days":4}`, nil, false, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseGenerateResponse([]byte(tt.body))
			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			case tt.anyErr:
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			case err != nil:
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got.Options) != tt.wantOptions {
				t.Errorf("options = %d, want %d", len(got.Options), tt.wantOptions)
			}
		})
	}
}

func TestParseGenerateResponse_SuggestedDays(t *testing.T) {
	got, err := ParseGenerateResponse([]byte(`{"options":[],"suggested_days":5}`))
	if err != nil {
		t.Fatal(err)
	}
	if got.SuggestedDays == nil || *got.SuggestedDays != 5 {
		t.Errorf("suggested_days = %v", got.SuggestedDays)
	}
}

func TestParsePicksResponse(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
		anyErr  bool
	}{
		{"missing option_id", `{"option":{"id":"x","daily_plan":{"days":[]}}}`, ErrMissingPickID, false},
		{"missing option", `{"option_id":"x"}`, ErrMissingOption, false},
		{"option not an object", `{"option_id":"x","option":[1]}`, ErrMissingOption, false},
		{"invalid option", `{"option_id":"x","option":{"daily_plan":{"days":[{"day":0}]}}}`, nil, true},
		{"valid", `{"option_id":"picks_1","option":{"daily_plan":{"days":[{"day":1,"activities":[]}]},"total_estimated_cost":900}}`, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePicksResponse([]byte(tt.body))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if tt.anyErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Option.ID != "picks_1" {
				t.Errorf("option id = %q, want it defaulted from option_id", got.Option.ID)
			}
		})
	}
}

func TestValidateTripRequest(t *testing.T) {
	valid := func() TripRequest {
		return TripRequest{
			Origin:      " SFO ",
			Destination: "Tokyo",
			StartDate:   "2026-03-15",
			EndDate:     "2026-03-19",
			NumPersons:  2,
			Pace:        "moderate",
		}
	}

	tests := []struct {
		name    string
		mutate  func(r *TripRequest)
		wantErr bool
	}{
		{"valid", func(r *TripRequest) {}, false},
		{"missing origin", func(r *TripRequest) { r.Origin = "   " }, true},
		{"missing destination", func(r *TripRequest) { r.Destination = "" }, true},
		{"party too large", func(r *TripRequest) { r.NumPersons = 21 }, true},
		{"party zero", func(r *TripRequest) { r.NumPersons = 0 }, true},
		{"bad pace", func(r *TripRequest) { r.Pace = "sprint" }, true},
		{"bad accommodation", func(r *TripRequest) { r.AccommodationType = "tent" }, true},
		{"bad date", func(r *TripRequest) { r.StartDate = "15/03/2026" }, true},
		{"end before start", func(r *TripRequest) { r.EndDate = "2026-03-01" }, true},
		{"open dates", func(r *TripRequest) { r.StartDate, r.EndDate = "", "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid()
			tt.mutate(&r)
			err := ValidateTripRequest(&r)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	r := valid()
	_ = ValidateTripRequest(&r)
	if r.Origin != "SFO" {
		t.Errorf("origin not trimmed: %q", r.Origin)
	}
}

func TestOptionEndpoints(t *testing.T) {
	o := Option{DailyPlan: DailyPlan{
		FlightFromSource: &FlightLeg{FromLocation: "SFO"},
		FlightToOrigin:   &FlightLeg{FromLocation: "NRT", ToLocation: "SFO"},
	}}
	origin, dest := o.Endpoints()
	if origin != "SFO" || dest != "NRT" {
		t.Errorf("endpoints = %q, %q", origin, dest)
	}

	empty := Option{}
	if o, d := empty.Endpoints(); o != "" || d != "" {
		t.Errorf("empty option endpoints = %q, %q", o, d)
	}
}

func TestParseQuoteResponse(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
		anyErr  bool
	}{
		{"empty object", `{}`, ErrMissingQuote, false},
		{"unexpected shape", `{"unexpected":true}`, ErrMissingQuote, false},
		{"missing per_person", `{"subtotal":100,"total":115}`, ErrMissingQuote, false},
		{"negative total", `{"subtotal":100,"total":-1,"per_person":1}`, ErrMissingQuote, false},
		{"not json", `<html>`, nil, true},
		{"zero subtotal", `{"subtotal":0,"platform_fee":15,"total":15,"per_person":7.5}`, nil, false},
		{"valid", `{"subtotal":2840,"platform_fee":15,"total":2855,"per_person":1427.5,"breakdown":{"flights":[{"description":"Outbound","amount":1278}]}}`, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseQuoteResponse([]byte(tt.body))
			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			case tt.anyErr:
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			case err != nil:
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Total != got.Subtotal+got.PlatformFee {
				t.Errorf("total = %d, subtotal = %d, fee = %d", got.Total, got.Subtotal, got.PlatformFee)
			}
		})
	}
}

func TestCheckTripCost(t *testing.T) {
	valid := []float64{0, 2840.5, MaxTripCost}
	for _, cost := range valid {
		if err := CheckTripCost(cost); err != nil {
			t.Errorf("CheckTripCost(%v) = %v", cost, err)
		}
	}
	invalid := []float64{-1, MaxTripCost + 1, 3e17, math.NaN(), math.Inf(1)}
	for _, cost := range invalid {
		if err := CheckTripCost(cost); !errors.Is(err, ErrCostOutOfRange) {
			t.Errorf("CheckTripCost(%v) = %v, want ErrCostOutOfRange", cost, err)
		}
	}
}
