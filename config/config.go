package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	Env  string `env:"ENV" envDefault:"local" validate:"required,oneof=local staging production"`
	Port string `env:"PORT" envDefault:"8080" validate:"required"`

	DatabaseURL string `env:"DATABASE_URL,required" validate:"required"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`

	MetricsPort string `env:"METRICS_PORT" envDefault:"9090"`

	JWTSecret    string `env:"JWT_SECRET,required"   validate:"required,min=32"`
	ResendAPIKey string `env:"RESEND_API_KEY"         validate:"required_unless=Env local"`
	ResendFrom   string `env:"RESEND_FROM"            validate:"required_unless=Env local"`
	SiteBaseURL  string `env:"SITE_BASE_URL"          envDefault:"http://localhost:8080"`

	// Turnstile bot-verification gate. AllowTestKeys substitutes
	// Cloudflare's well-known test secret when no real one is set; config
	// validation keeps it impossible to enable in production.
	TurnstileSecretKey     string `env:"TURNSTILE_SECRET_KEY"      validate:"required_if=Env production"`
	TurnstileAllowTestKeys bool   `env:"TURNSTILE_ALLOW_TEST_KEYS" envDefault:"false" validate:"excluded_if=Env production"`

	// Facebook data-deletion callback.
	FacebookAppSecret         string `env:"FACEBOOK_APP_SECRET"          validate:"required_if=Env production"`
	FacebookDeletionStatusURL string `env:"FACEBOOK_DELETION_STATUS_URL" validate:"required_if=Env production,omitempty,url"`

	CleanupSchedule     string `env:"CLEANUP_SCHEDULE"      envDefault:"@hourly"`
	HealthLogRetentionH int    `env:"HEALTH_LOG_RETENTION_HOURS" envDefault:"168" validate:"min=1"`
}

func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
