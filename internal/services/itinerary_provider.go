package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"voyager/internal/config"
	"voyager/internal/models/itinerary"
	"voyager/pkg/utils"
)

// ItineraryProvider produces itinerary options. Implementations return errors wrapping
// utils.ErrItineraryService for transport and status failures and
// utils.ErrMalformedItinerary (or ErrUnexpectedBehaviorOfAI) for payloads that fail
// boundary validation. Calls are never retried here.
type ItineraryProvider interface {
	Generate(ctx context.Context, req itinerary.TripRequest) (*itinerary.GenerateResponse, error)
	PlanWithPicks(ctx context.Context, req itinerary.PicksRequest) (*itinerary.PicksResponse, error)
}

// NewItineraryProvider selects the provider named in config: remote, gemini, openai or mock.
func NewItineraryProvider(cfg *config.Config, log *zap.Logger) (ItineraryProvider, error) {
	provider := strings.ToLower(cfg.Itinerary.Provider)
	log.Info("initializing itinerary provider", zap.String("provider", provider))

	switch provider {
	case "remote":
		return NewRemoteItineraryClient(cfg.Itinerary.BaseURL, cfg.Itinerary.Timeout), nil
	case "gemini":
		client, err := utils.NewPlannerClient(provider, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			return nil, err
		}
		return NewAIItineraryProvider(client, log), nil
	case "openai":
		client, err := utils.NewPlannerClient(provider, cfg.OpenAI.APIKey, cfg.OpenAI.Model)
		if err != nil {
			return nil, err
		}
		return NewAIItineraryProvider(client, log), nil
	case "", "mock":
		return NewMockItineraryProvider(), nil
	default:
		return nil, fmt.Errorf("unsupported itinerary provider: %s. Use 'remote', 'gemini', 'openai' or 'mock'", cfg.Itinerary.Provider)
	}
}
