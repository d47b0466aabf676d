package events_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"voyager/internal/config"
	"voyager/internal/events"
)

var Module = fx.Provide(providePublisher)

func providePublisher(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (events.Publisher, error) {
	publisher, err := events.NewPublisher(cfg.Events, log)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return publisher.Close()
		},
	})
	return publisher, nil
}
