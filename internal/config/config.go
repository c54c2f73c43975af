// Package config manages environment variables.
//
// It reads variables from the process environment (optionally seeded
// from a `.env` file), loads them into structured Go types, and
// validates that required values are present so the application
// fails fast on bad or missing configuration.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads a `.env` file into the process env
	// before any env vars are read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

// Config is the root configuration object for the application.
//
// Env vars are read with the BLOGAPI_ prefix and mapped into nested
// blocks via "." notation, e.g. BLOGAPI_SERVER.PORT -> Config.Server.Port.
type Config struct {
	Primary    Primary          `koanf:"primary" validate:"required"`
	Server     ServerConfig     `koanf:"server" validate:"required"`
	Database   DatabaseConfig   `koanf:"database" validate:"required"`
	Newsletter NewsletterConfig `koanf:"newsletter" validate:"required"`
	Logging    *LoggingConfig   `koanf:"logging"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are stored as seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
}

// DatabaseConfig contains the MongoDB connection parameters.
//
// URI is a standard mongodb:// connection string; pooling and timeouts
// beyond the connect-time ping are left to the driver defaults.
type DatabaseConfig struct {
	URI  string `koanf:"uri" validate:"required"`
	Name string `koanf:"name" validate:"required"`
}

// Credential source names for NewsletterConfig.CredentialSource.
const (
	CredentialSourceStatic  = "static"
	CredentialSourceSecrets = "secrets"
)

// NewsletterConfig configures the subscription provider integration.
//
// CredentialSource selects how provider credentials are resolved:
//   - "static": APIKey and AudienceID are read directly from config.
//   - "secrets": credentials are fetched once at startup from AWS
//     Secrets Manager using SecretName/SecretRegion.
type NewsletterConfig struct {
	CredentialSource string `koanf:"credential_source" validate:"required,oneof=static secrets"`
	APIKey           string `koanf:"api_key"`
	AudienceID       string `koanf:"audience_id"`
	SecretName       string `koanf:"secret_name"`
	SecretRegion     string `koanf:"secret_region"`

	// CredentialWaitSeconds bounds how long a subscription request
	// waits for startup credential resolution before failing.
	CredentialWaitSeconds int `koanf:"credential_wait_seconds"`
}

// Validate applies cross-field rules that struct tags cannot express.
func (n *NewsletterConfig) Validate() error {
	switch n.CredentialSource {
	case CredentialSourceStatic:
		if n.APIKey == "" || n.AudienceID == "" {
			return fmt.Errorf("newsletter api_key and audience_id are required with static credentials")
		}
	case CredentialSourceSecrets:
		if n.SecretName == "" || n.SecretRegion == "" {
			return fmt.Errorf("newsletter secret_name and secret_region are required with secrets credentials")
		}
	default:
		return fmt.Errorf("invalid newsletter credential_source: %s", n.CredentialSource)
	}
	return nil
}

// Load reads configuration from environment variables, unmarshals it
// into Config, validates it, and applies defaults for optional blocks.
func Load() (*Config, error) {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	// "." is the key-path delimiter koanf uses to represent nesting.
	k := koanf.New(".")

	err := k.Load(env.Provider("BLOGAPI_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "BLOGAPI_"))
	}), nil)
	if err != nil {
		logger.Fatal().Err(err).Msg("Could not load initial env variables.")
	}

	mainConfig := &Config{}

	err = k.Unmarshal("", mainConfig)
	if err != nil {
		logger.Fatal().Err(err).Msg("Could not unmarshal main config.")
	}

	validate := validator.New()

	err = validate.Struct(mainConfig)
	if err != nil {
		logger.Fatal().Err(err).Msg("Config validation failed.")
	}

	// Logging is optional; inject defaults derived from the environment.
	if mainConfig.Logging == nil {
		mainConfig.Logging = DefaultLoggingConfig(mainConfig.Primary.Env)
	}

	if err := mainConfig.Logging.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid logging config")
	}

	if err := mainConfig.Newsletter.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid newsletter config")
	}

	if mainConfig.Newsletter.CredentialWaitSeconds <= 0 {
		mainConfig.Newsletter.CredentialWaitSeconds = 10
	}

	return mainConfig, nil
}
