package infrastructure

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Logger *zap.Logger

// Init builds the global logger at the configured level. Unknown level
// names fall back to info rather than silencing the service.
func Init(level string) {
	cfg := zap.NewProductionConfig()
	if lvl, err := zapcore.ParseLevel(level); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	Logger, _ = cfg.Build()
	Logger.Info("logger initialized", zap.String("level", cfg.Level.String()))
}
