package config

import "fmt"

// LoggingConfig holds application logging configuration.
//
// It is a pointer field on Config so it can be omitted entirely;
// defaults are injected in Load when missing.
type LoggingConfig struct {
	// Level is the verbosity threshold (debug/info/warn/error).
	Level string `koanf:"level"`

	// Format selects the output format: "json" for log pipelines,
	// "console" for human-readable local output.
	Format string `koanf:"format"`
}

// DefaultLoggingConfig returns logging defaults for the given environment:
// debug/console locally, info/json everywhere else.
func DefaultLoggingConfig(env string) *LoggingConfig {
	if env == "local" || env == "development" {
		return &LoggingConfig{
			Level:  "debug",
			Format: "console",
		}
	}
	return &LoggingConfig{
		Level:  "info",
		Format: "json",
	}
}

// Validate enforces the allowed level and format values.
func (c *LoggingConfig) Validate() error {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.Level] {
		return fmt.Errorf("invalid logging level: %s (must be one of: debug, info, warn, error)", c.Level)
	}

	if c.Format != "json" && c.Format != "console" {
		return fmt.Errorf("invalid logging format: %s (must be json or console)", c.Format)
	}

	return nil
}
