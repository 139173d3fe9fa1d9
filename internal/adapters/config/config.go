package config

import (
	"encoding/json"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"marketdata/pkg/errors"
)

type Config struct {
	App           AppConfig
	MarketData    MarketDataConfig
	HTTP          HTTPConfig
	Metrics       MetricsConfig
	ErrorTracking ErrorTrackingConfig
}

type AppConfig struct {
	Name     string `envconfig:"APP_NAME" default:"marketdata"`
	Env      string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

type MarketDataConfig struct {
	BaseURL       string   `envconfig:"BINANCE_BASE_URL" default:"https://api.binance.us"`
	AlternateURLs []string `envconfig:"BINANCE_ALTERNATE_URLS" default:"https://api1.binance.us,https://api2.binance.us,https://api3.binance.us"`
	APIKey        string   `envconfig:"BINANCE_API_KEY"`
	APIKeyFile    string   `envconfig:"BINANCE_API_KEY_FILE"`
}

type HTTPConfig struct {
	Timeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s"`
}

type MetricsConfig struct {
	// Empty disables the /metrics listener
	Addr string `envconfig:"METRICS_ADDR"`
}

type ErrorTrackingConfig struct {
	Enabled     bool   `envconfig:"ERROR_TRACKING_ENABLED" default:"true"`
	SentryDSN   string `envconfig:"SENTRY_DSN"`
	Environment string `envconfig:"SENTRY_ENVIRONMENT" default:"production"`
}

// keyFile mirrors the JSON key file layout; only the api key is used
type keyFile struct {
	APIKey    string `json:"api_key"`
	SecretKey string `json:"secret_key"`
}

// Load reads configuration from environment variables
// It first tries to load .env file (useful for local development)
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if not exists)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to process env config")
	}

	if err := cfg.MarketData.resolveAPIKey(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// resolveAPIKey falls back to the key file when no key is set directly
func (c *MarketDataConfig) resolveAPIKey() error {
	if c.APIKey != "" || c.APIKeyFile == "" {
		return nil
	}

	raw, err := os.ReadFile(c.APIKeyFile)
	if err != nil {
		return errors.Wrapf(err, "read api key file %s", c.APIKeyFile)
	}

	var kf keyFile
	if err := json.Unmarshal(raw, &kf); err != nil {
		return errors.Wrapf(err, "parse api key file %s", c.APIKeyFile)
	}

	c.APIKey = strings.TrimSpace(kf.APIKey)
	return nil
}

// Validate checks the settings the client cannot work without.
// The API key is checked separately by RequireAPIKey, since commands
// that send no request do not need it.
func (c *Config) Validate() error {
	var errs errors.MultiError

	if err := validateBaseURL("BINANCE_BASE_URL", c.MarketData.BaseURL); err != nil {
		errs.Add(err)
	}
	for _, alt := range c.MarketData.AlternateURLs {
		if err := validateBaseURL("BINANCE_ALTERNATE_URLS", alt); err != nil {
			errs.Add(err)
		}
	}

	if c.HTTP.Timeout < 0 {
		errs.Add(errors.NewValidationError("HTTP_TIMEOUT", "must not be negative", c.HTTP.Timeout))
	}

	return errs.ToError()
}

// RequireAPIKey fails when neither BINANCE_API_KEY nor the key file supplied a key
func (c *Config) RequireAPIKey() error {
	if c.MarketData.APIKey == "" {
		return errors.Wrap(errors.ErrMissingCredential, "set BINANCE_API_KEY or BINANCE_API_KEY_FILE")
	}
	return nil
}

func validateBaseURL(field, raw string) error {
	if raw == "" {
		return errors.NewValidationError(field, "must not be empty", raw)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return errors.NewValidationError(field, err.Error(), raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.NewValidationError(field, "scheme must be http or https", raw)
	}
	if u.Host == "" {
		return errors.NewValidationError(field, "host is required", raw)
	}
	return nil
}
