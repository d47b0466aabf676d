package infra

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"voyager/internal/config"
)

// NewLogger builds the process logger: JSON in production, console otherwise.
// It is also installed as the zap global so package-level helpers can log.
func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	var zc zap.Config
	if cfg.App.Env == "production" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	logger, err := zc.Build(zap.Fields(zap.String("app", cfg.App.Name)))
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}
