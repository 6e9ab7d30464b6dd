// Package logger builds the application zap logger for a given environment.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	envLocal      = "local"
	envDev        = "dev"
	envProduction = "production"
)

// New returns a configured zap logger: colored console output at Debug level
// for local development, JSON output at Info level otherwise.
func New(env string) *zap.Logger {
	var cfg zap.Config

	switch env {
	case envLocal:
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	case envDev:
		cfg = zap.NewDevelopmentConfig()
	case envProduction:
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewProductionConfig()
	}

	log, err := cfg.Build()
	if err != nil {
		// A broken logger config is a programming error; fall back to a
		// no-op logger rather than running without any logger instance.
		return zap.NewNop()
	}

	return log
}
