// Package config loads and validates application configuration.
//
// Configuration comes from environment variables (optionally seeded from
// a .env file via godotenv's autoload), is unmarshalled into structs with
// koanf, and validated with go-playground/validator so the app fails fast
// on missing or malformed values.
//
// Env vars use the WELLNESS_ prefix and dot-delimited nesting:
//
//	WELLNESS_SERVER.PORT          -> Config.Server.Port
//	WELLNESS_DATABASE.HOST        -> Config.Database.Host
//	WELLNESS_AUTH.SECRET_KEY      -> Config.Auth.SecretKey
package config

import (
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads .env into the process environment before
	// any env var is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

// Config is the root configuration object.
//
// Observability is a pointer because it is optional; when absent,
// defaults are injected at load time.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Auth          AuthConfig           `koanf:"auth" validate:"required"`
	Email         EmailConfig          `koanf:"email"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level runtime environment information, used to tag
// logs/traces and to switch env-dependent behavior.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups HTTP server runtime settings. Timeouts are stored
// as whole seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// RedisConfig contains Redis connection details ("host:port").
// Redis backs the Asynq job queue and the request rate limiter.
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// AuthConfig stores JWT signing settings. Tokens are HS256-signed with
// SecretKey and expire after TokenExpiryMinutes.
type AuthConfig struct {
	SecretKey          string `koanf:"secret_key" validate:"required"`
	TokenExpiryMinutes int    `koanf:"token_expiry_minutes" validate:"required,min=1"`
}

// EmailConfig holds outbound email (Resend) settings. Optional: with an
// empty API key, email sending is disabled and jobs log instead of send.
type EmailConfig struct {
	ResendAPIKey string `koanf:"resend_api_key"`
	FromName     string `koanf:"from_name"`
	FromAddress  string `koanf:"from_address"`
}

// Load reads env vars, unmarshals them into Config, validates the result,
// and applies observability defaults.
func Load() (*Config, error) {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	k := koanf.New(".")

	err := k.Load(env.Provider("WELLNESS_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "WELLNESS_"))
	}), nil)
	if err != nil {
		logger.Fatal().Err(err).Msg("Could not load initial env variables.")
	}

	mainConfig := &Config{}

	if err := k.Unmarshal("", mainConfig); err != nil {
		logger.Fatal().Err(err).Msg("Could not unmarshal main config.")
	}

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		logger.Fatal().Err(err).Msg("Config validation failed.")
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service name is fixed; environment always follows primary.env so
	// telemetry is tagged consistently no matter what was configured.
	mainConfig.Observability.ServiceName = "wellness-api"
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid observability config")
	}

	return mainConfig, nil
}
