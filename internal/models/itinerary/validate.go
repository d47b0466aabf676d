package itinerary

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrMissingOptions = errors.New("invalid response: expected { options: [...] }")
	ErrMissingPickID  = errors.New("invalid response: expected { option_id, option }")
	ErrMissingOption  = errors.New("invalid response: option (timeline) is required")
	ErrDateOrder      = errors.New("end_date must not be before start_date")
	ErrCostOutOfRange = fmt.Errorf("total_estimated_cost must be between 0 and %.0f", MaxTripCost)
	ErrMissingQuote   = errors.New("invalid response: expected { subtotal, total, per_person }")
)

// MaxTripCost bounds option costs so quote arithmetic stays within int64.
const MaxTripCost = 1e15

var validate = validator.New(validator.WithRequiredStructEnabled())

// ParseGenerateResponse decodes and validates a generate payload. A missing or null
// options list is rejected; an empty list is a valid soft-empty result.
func ParseGenerateResponse(body []byte) (*GenerateResponse, error) {
	var envelope struct {
		Options       json.RawMessage `json:"options"`
		SuggestedDays *int            `json:"suggested_days"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode itinerary response: %w", err)
	}
	raw := bytes.TrimSpace(envelope.Options)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) || raw[0] != '[' {
		return nil, ErrMissingOptions
	}

	var options []Option
	if err := json.Unmarshal(raw, &options); err != nil {
		return nil, fmt.Errorf("decode itinerary options: %w", err)
	}
	for i := range options {
		if err := ValidateOption(&options[i]); err != nil {
			return nil, fmt.Errorf("option %d: %w", i, err)
		}
	}

	return &GenerateResponse{Options: options, SuggestedDays: envelope.SuggestedDays}, nil
}

// ParsePicksResponse decodes the plan-with-picks payload; both option_id and option are required.
func ParsePicksResponse(body []byte) (*PicksResponse, error) {
	var envelope struct {
		OptionID string          `json:"option_id"`
		Option   json.RawMessage `json:"option"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode plan-with-picks response: %w", err)
	}
	if envelope.OptionID == "" {
		return nil, ErrMissingPickID
	}
	raw := bytes.TrimSpace(envelope.Option)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, ErrMissingOption
	}

	var option Option
	if err := json.Unmarshal(raw, &option); err != nil {
		return nil, fmt.Errorf("decode plan-with-picks option: %w", err)
	}
	if option.ID == "" {
		option.ID = envelope.OptionID
	}
	if err := ValidateOption(&option); err != nil {
		return nil, err
	}

	return &PicksResponse{OptionID: envelope.OptionID, Option: option}, nil
}

// CheckTripCost rejects NaN, infinite, negative and oversized costs.
func CheckTripCost(cost float64) error {
	if math.IsNaN(cost) || math.IsInf(cost, 0) || cost < 0 || cost > MaxTripCost {
		return ErrCostOutOfRange
	}
	return nil
}

// ParseQuoteResponse decodes a remote quote. subtotal, total and per_person must be
// present and non-negative.
func ParseQuoteResponse(body []byte) (*Quote, error) {
	var envelope struct {
		Subtotal    *int64   `json:"subtotal" validate:"required,min=0"`
		PlatformFee int64    `json:"platform_fee" validate:"min=0"`
		Total       *int64   `json:"total" validate:"required,min=0"`
		PerPerson   *float64 `json:"per_person" validate:"required,min=0"`

		Breakdown          *Breakdown          `json:"breakdown"`
		PointsOptimization *PointsOptimization `json:"points_optimization"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode quote: %w", err)
	}
	if err := validate.Struct(&envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingQuote, err)
	}

	return &Quote{
		Subtotal:           *envelope.Subtotal,
		PlatformFee:        envelope.PlatformFee,
		Total:              *envelope.Total,
		PerPerson:          *envelope.PerPerson,
		Breakdown:          envelope.Breakdown,
		PointsOptimization: envelope.PointsOptimization,
	}, nil
}

func ValidateOption(o *Option) error {
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("invalid itinerary option: %w", err)
	}
	return nil
}

// ValidateTripRequest checks the form before anything is stored or sent.
func ValidateTripRequest(r *TripRequest) error {
	r.Origin = strings.TrimSpace(r.Origin)
	r.Destination = strings.TrimSpace(r.Destination)
	if err := validate.Struct(r); err != nil {
		return err
	}
	if r.StartDate != "" && r.EndDate != "" && r.EndDate < r.StartDate {
		return ErrDateOrder
	}
	return nil
}
