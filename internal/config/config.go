// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/recipe-scraper/internal/fetch"
	"github.com/jonathan/recipe-scraper/internal/output"
	"github.com/jonathan/recipe-scraper/internal/parsing"
	"github.com/jonathan/recipe-scraper/internal/schemas"
)

// Environment variables read by FromEnv.
const (
	EnvSource      = "RECIPE_SOURCE"
	EnvBaseURL     = "RECIPE_BASE_URL"
	EnvPagesDir    = "RECIPE_PAGES_DIR"
	EnvOutDir      = "RECIPE_OUT_DIR"
	EnvTimeout     = "RECIPE_TIMEOUT_SECONDS"
	EnvUserAgent   = "RECIPE_USER_AGENT"
	EnvDatabaseURL = "DATABASE_URL"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Page source
	Source         string `json:"source,omitempty" validate:"omitempty,oneof=http file browser"` // http, file or browser
	BaseURL        string `json:"base_url,omitempty" validate:"omitempty,url"`                   // Search endpoint
	PagesDir       string `json:"pages_dir,omitempty"`                                           // Snapshot directory for file mode
	TimeoutSeconds int    `json:"timeout_seconds,omitempty" validate:"gte=0,lte=300"`            // Per-request timeout; browser renders get at least 30s
	UserAgent      string `json:"user_agent,omitempty"`

	// Output
	OutDir      string `json:"out_dir,omitempty"`      // CSV output directory
	DatabaseURL string `json:"database_url,omitempty"` // Optional PostgreSQL sink

	// Behavior
	Verbose   bool              `json:"verbose,omitempty"`
	Selectors parsing.Selectors `json:"selectors,omitempty"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Source:         string(fetch.SourceHTTP),
		BaseURL:        fetch.DefaultBaseURL,
		PagesDir:       fetch.DefaultPagesDir,
		TimeoutSeconds: int(fetch.DefaultTimeout / time.Second),
		UserAgent:      fetch.DefaultUserAgent,
		OutDir:         output.DefaultDir,
		Selectors:      parsing.DefaultSelectors(),
	}
}

// LoadConfig loads configuration from a JSON file.
// The document is checked against the embedded config schema before decoding.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if !json.Valid(data) {
		return nil, fmt.Errorf("failed to parse config JSON: %s is not valid JSON", path)
	}
	if err := schemas.ValidateConfig(data); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv builds a Config from environment variables. Unset variables stay empty.
func FromEnv() (Config, error) {
	cfg := Config{
		Source:      os.Getenv(EnvSource),
		BaseURL:     os.Getenv(EnvBaseURL),
		PagesDir:    os.Getenv(EnvPagesDir),
		OutDir:      os.Getenv(EnvOutDir),
		UserAgent:   os.Getenv(EnvUserAgent),
		DatabaseURL: os.Getenv(EnvDatabaseURL),
	}
	if raw := os.Getenv(EnvTimeout); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("config error: %s must be an integer: %w", EnvTimeout, err)
		}
		cfg.TimeoutSeconds = seconds
	}
	return cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if c.Selectors != (parsing.Selectors{}) {
		if err := c.Selectors.MergeWithDefaults().Validate(); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to layer config file values over env values over built-ins.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Source == "" {
		result.Source = defaults.Source
	}
	if result.BaseURL == "" {
		result.BaseURL = defaults.BaseURL
	}
	if result.PagesDir == "" {
		result.PagesDir = defaults.PagesDir
	}
	if result.OutDir == "" {
		result.OutDir = defaults.OutDir
	}
	if result.UserAgent == "" {
		result.UserAgent = defaults.UserAgent
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	// Int fields: use default if zero
	if result.TimeoutSeconds == 0 {
		result.TimeoutSeconds = defaults.TimeoutSeconds
	}

	// Selectors merge field by field
	if result.Selectors.Card == "" {
		result.Selectors.Card = defaults.Selectors.Card
	}
	if result.Selectors.Name == "" {
		result.Selectors.Name = defaults.Selectors.Name
	}
	if result.Selectors.Difficulty == "" {
		result.Selectors.Difficulty = defaults.Selectors.Difficulty
	}
	if result.Selectors.PrepTime == "" {
		result.Selectors.PrepTime = defaults.Selectors.PrepTime
	}

	// Bool fields: cannot distinguish unset from false, so true wins
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}

// Timeout returns the per-request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return fetch.DefaultTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// SourceConfig converts the configuration into fetcher settings.
func (c *Config) SourceConfig() (fetch.SourceConfig, error) {
	source, err := fetch.ParseSource(c.Source)
	if err != nil {
		return fetch.SourceConfig{}, err
	}
	return fetch.SourceConfig{
		Source: source,
		Options: &fetch.Options{
			BaseURL:   c.BaseURL,
			Timeout:   c.Timeout(),
			UserAgent: c.UserAgent,
		},
		PagesDir: c.PagesDir,
	}, nil
}
