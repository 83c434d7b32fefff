// internal/infra/config/config.go
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is env/config-resolved runtime settings, normalized once. It
// intentionally contains only values, no constructed clients.
//
// Policy:
// - Environment variables win; a local .env file fills gaps in dev.
// - Defaults keep single-binary local runs working against localhost.
// - Normalization (trim, trailing-slash removal) happens here, hard
//   validation in Validate.
type Config struct {
	// API
	APIBaseURL string

	// Identity (Azure AD public client)
	AADTenantID string
	AADClientID string
	APIScope    string

	// Status channel display interval
	StatusTTL time.Duration

	// Optional submission mail notifier
	SendGridAPIKey string
	MailFrom       string

	// Ambient
	LogLevel string
	Env      string
}

const (
	defaultAPIBaseURL = "http://localhost:8000"
	defaultStatusTTL  = 3 * time.Second
)

// Load resolves configuration from the environment (and .env when present).
func Load() (Config, error) {
	// Missing .env is fine; env vars alone are the deployed shape.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("STOCKROOM")
	v.AutomaticEnv()

	v.SetDefault("api_base_url", defaultAPIBaseURL)
	v.SetDefault("status_ttl", defaultStatusTTL)
	v.SetDefault("log_level", "info")
	v.SetDefault("env", "dev")

	cfg := Config{
		APIBaseURL:     normalizeBaseURL(v.GetString("api_base_url")),
		AADTenantID:    strings.TrimSpace(v.GetString("aad_tenant_id")),
		AADClientID:    strings.TrimSpace(v.GetString("aad_client_id")),
		APIScope:       strings.TrimSpace(v.GetString("api_scope")),
		StatusTTL:      v.GetDuration("status_ttl"),
		SendGridAPIKey: strings.TrimSpace(v.GetString("sendgrid_api_key")),
		MailFrom:       strings.TrimSpace(v.GetString("mail_from")),
		LogLevel:       strings.TrimSpace(v.GetString("log_level")),
		Env:            strings.TrimSpace(v.GetString("env")),
	}

	if cfg.StatusTTL <= 0 {
		cfg.StatusTTL = defaultStatusTTL
	}
	return cfg, nil
}

// Validate checks the settings a signed-in run cannot do without.
func (c Config) Validate() error {
	if c.APIBaseURL == "" {
		return errors.New("config: api base url is empty")
	}
	if c.AADTenantID == "" || c.AADClientID == "" || c.APIScope == "" {
		return errors.New("config: aad tenant id, client id and api scope are required")
	}
	return nil
}

// MailEnabled reports whether the optional notifier can be wired.
func (c Config) MailEnabled() bool {
	return c.SendGridAPIKey != "" && c.MailFrom != ""
}

func normalizeBaseURL(s string) string {
	return strings.TrimRight(strings.TrimSpace(s), "/")
}
