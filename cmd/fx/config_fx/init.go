package config_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"voyager/internal/config"
	"voyager/internal/infra"
	"voyager/pkg/utils"
)

var Module = fx.Provide(
	config.New,
	infra.NewLogger,
	provideJWTManager)

func provideJWTManager(cfg *config.Config, log *zap.Logger) *utils.JWTManager {
	if cfg.Auth.JWTSecret == "change-me" {
		log.Warn("JWT_SECRET is the default value; set it before deploying")
	}
	return utils.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
}
