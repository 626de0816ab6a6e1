// Package logging provides zap logger helpers and the shared process logger.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// L is the shared logger used by packages that log before dependency wiring
// completes (config loading, CLI bootstrap). It starts as a no-op and is
// replaced by InitLogger.
var L = zap.NewNop()

// InitLogger builds the process logger and installs it as L.
// It must be called once at startup, before any component logs.
func InitLogger(development bool) {
	logger, err := New(development)
	if err != nil {
		// Fall back to a bare production logger rather than starting mute.
		logger = zap.Must(zap.NewProduction())
		logger.Warn("Falling back to default production logger", zap.Error(err))
	}
	L = logger
}

// New builds a zap.Logger configured for development or production.
func New(development bool) (*zap.Logger, error) {
	if development {
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.TimeKey = "ts"
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		logger, err := cfg.Build()
		if err != nil {
			return nil, fmt.Errorf("build dev logger: %w", err)
		}
		return logger, nil
	}
	cfg := zap.NewProductionConfig()
	cfg.DisableStacktrace = false
	cfg.EncoderConfig.TimeKey = "ts"
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build prod logger: %w", err)
	}
	return logger, nil
}
