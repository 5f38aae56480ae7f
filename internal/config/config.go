// Package config provides application configuration management.
// Configuration is loaded from environment variables following 12-factor principles.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	// Application settings
	AppEnv string `env:"APP_ENV" envDefault:"development"`
	Port   int    `env:"PORT" envDefault:"3000"`

	// Mail transport selection.
	// "resend" uses the Resend API, "gmail" uses the Gmail SMTP preset,
	// empty means raw SMTP from the SMTP_* settings.
	EmailService     string `env:"EMAIL_SERVICE"`
	EmailUser        string `env:"EMAIL_USER"`
	EmailAppPassword string `env:"EMAIL_APP_PASSWORD"`

	// Raw SMTP settings, used when EMAIL_SERVICE is empty.
	SMTPHost   string `env:"SMTP_HOST"`
	SMTPPort   int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPSecure bool   `env:"SMTP_SECURE" envDefault:"false"`
	SMTPUser   string `env:"SMTP_USER"`
	SMTPPass   string `env:"SMTP_PASS"`

	// Email addressing
	EmailFrom  string `env:"EMAIL_FROM" envDefault:"Enterprise Setup Wizard <noreply@example.com>"`
	EmailTo    string `env:"EMAIL_TO" envDefault:"enterprise-setup@example.com"`
	SalesEmail string `env:"SALES_EMAIL"`

	// SendConfirmation gates the customer-facing thank-you email.
	SendConfirmation bool `env:"SEND_CONFIRMATION" envDefault:"false"`

	// Cache (Redis) for rate limiting. Optional: rate limiting is
	// disabled with a startup warning when unset.
	RedisURL string `env:"REDIS_URL"`

	// Rate limiting for the submit endpoint (per client IP).
	RateLimitEnabled bool          `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	RateLimitMax     int           `env:"RATE_LIMIT_MAX" envDefault:"10"`
	RateLimitWindow  time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"15m"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Server timeouts
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// CORS configuration
	// Comma-separated list of allowed origins. "*" allows any origin.
	AllowedOrigin string `env:"ALLOWED_ORIGIN" envDefault:"*"`

	// Request body size limit in bytes (default 10MB)
	MaxRequestBodySize int64 `env:"MAX_REQUEST_BODY_SIZE" envDefault:"10485760"`
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// GetCORSAllowedOrigins parses the comma-separated origins string into a slice.
func (c *Config) GetCORSAllowedOrigins() []string {
	if c.AllowedOrigin == "" {
		return nil
	}

	origins := strings.Split(c.AllowedOrigin, ",")
	result := make([]string, 0, len(origins))

	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// TransportConfigured reports whether mail transport settings are present.
// The server still serves requests without a transport; sends fail until
// one is configured.
func (c *Config) TransportConfigured() bool {
	switch c.EmailService {
	case "resend":
		return c.EmailAppPassword != ""
	case "gmail":
		return c.EmailUser != "" && c.EmailAppPassword != ""
	default:
		return c.SMTPHost != ""
	}
}

// Load parses environment variables and returns a Config.
// Returns an error if required variables are missing.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
