package itinerary_fx

import (
	"context"
	"io"
	"strings"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"voyager/internal/config"
	"voyager/internal/services"
	mem "voyager/pkg/memcache"
)

var Module = fx.Options(
	fx.Provide(
		services.NewItineraryProvider,
		provideRemoteClient,
		provideGenerationService,
		providePickService,
		provideQuoteService,
		provideDocumentGenerator),
	fx.Invoke(registerProviderShutdown),
)

// registerProviderShutdown releases model clients held by the AI providers.
func registerProviderShutdown(lc fx.Lifecycle, provider services.ItineraryProvider) {
	closer, ok := provider.(io.Closer)
	if !ok {
		return
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return closer.Close()
		},
	})
}

func provideRemoteClient(cfg *config.Config) *services.RemoteItineraryClient {
	return services.NewRemoteItineraryClient(cfg.Itinerary.BaseURL, cfg.Itinerary.Timeout)
}

func provideGenerationService(
	cfg *config.Config,
	provider services.ItineraryProvider,
	store mem.SessionStateStore,
	plans services.SavedPlanServiceInterface,
	log *zap.Logger,
) services.GenerationServiceInterface {
	return services.NewGenerationService(provider, store, plans, log.Named("generation"), cfg.Itinerary.Timeout)
}

func providePickService(cfg *config.Config, provider services.ItineraryProvider, log *zap.Logger) services.PickServiceInterface {
	return services.NewPickService(provider, log.Named("picks"), cfg.Itinerary.Timeout)
}

func provideQuoteService(cfg *config.Config, remote *services.RemoteItineraryClient) services.QuoteServiceInterface {
	if strings.EqualFold(cfg.Itinerary.QuoteMode, "remote") {
		return services.NewQuoteService(cfg.Quote.PlatformFee, remote)
	}
	return services.NewQuoteService(cfg.Quote.PlatformFee, nil)
}

func provideDocumentGenerator(cfg *config.Config, remote *services.RemoteItineraryClient) services.TripDocumentGenerator {
	if strings.EqualFold(cfg.Itinerary.DocumentMode, "remote") {
		return remote
	}
	return services.NewLocalTripDocumentBuilder()
}
