package session_fx

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"voyager/internal/config"
	"voyager/internal/infra"
	mem "voyager/pkg/memcache"
)

var Module = fx.Provide(provideSessionStore)

// provideSessionStore keeps drafts and in-progress markers in process memory unless
// SESSION_DRIVER=redis, which lets a reload on another replica see them.
func provideSessionStore(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (mem.SessionStateStore, error) {
	switch strings.ToLower(cfg.Session.Driver) {
	case "", "memory":
		log.Info("session state in memory", zap.Duration("ttl", cfg.Session.TTL))
		return mem.NewMemorySessionState(cfg.Session.TTL), nil
	case "redis":
		client, err := infra.NewRedisClient(context.Background(), cfg.Redis)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return client.Close()
			},
		})
		log.Info("session state in redis", zap.String("addr", cfg.Redis.Addr), zap.Duration("ttl", cfg.Session.TTL))
		return mem.NewRedisSessionState(client, cfg.Session.TTL), nil
	default:
		return nil, fmt.Errorf("unsupported session driver: %s. Use 'memory' or 'redis'", cfg.Session.Driver)
	}
}
