// Package observability sets up the game's structured logging and tracing.
package observability

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/sosaria/internal/config"
)

// AppName tags every log entry and names the root logger.
const AppName = "sosaria"

// NewLogger builds the game logger from cfg. Every entry carries the app
// name and a session id fresh for each call. Entries are not sampled.
//
// Precondition: cfg passed config validation.
// Postcondition: Returns a configured zap.Logger or a non-nil error.
func NewLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}

	var enc zapcore.EncoderConfig
	switch cfg.Format {
	case "json":
		enc = zap.NewProductionEncoderConfig()
	case "console":
		enc = zap.NewDevelopmentEncoderConfig()
		enc.EncodeLevel = zapcore.CapitalLevelEncoder
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	enc.EncodeDuration = zapcore.StringDurationEncoder

	out := cfg.Output
	if out == "" {
		out = "stderr"
	}
	zc := zap.Config{
		Level:            level,
		Development:      cfg.Format == "console",
		Encoding:         cfg.Format,
		EncoderConfig:    enc,
		OutputPaths:      []string{out},
		ErrorOutputPaths: []string{out},
		InitialFields: map[string]any{
			"app":     AppName,
			"session": uuid.NewString(),
		},
	}
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger.Named(AppName), nil
}
