// Package logger configures the application's structured logging.
//
// It builds the root zerolog logger from config: JSON output for log
// pipelines or a console writer for local development, with the level
// threshold applied globally.
package logger

import (
	"os"

	"github.com/inkpress/blog-backend/internal/config"
	"github.com/rs/zerolog"
)

// New constructs the root application logger from the logging config.
//
// Every other logger in the process is derived from this one, so the
// service/env fields added here show up on all log lines.
func New(cfg *config.Config) *zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.Logging.Format == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		logger = zerolog.New(os.Stderr)
	}

	logger = logger.Level(level).With().
		Timestamp().
		Str("service", "blog-backend").
		Str("env", cfg.Primary.Env).
		Logger()

	return &logger
}
