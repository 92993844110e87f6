// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"

	"github.com/spurintel/feed-tools/internal/feed"
	"github.com/spurintel/feed-tools/internal/process"
)

// EnvToken is the environment variable holding the feed API token.
const EnvToken = "API_TOKEN"

// Config is the fully resolved runtime configuration, populated once at
// startup from defaults, an optional JSON config file, the environment,
// and CLI flags (in that order of precedence).
type Config struct {
	// Token is the bearer credential for feed requests. It is only read
	// from the environment, never from a config file.
	Token string `json:"-" validate:"required"`

	FeedType  string `json:"feed_type,omitempty" validate:"required,oneof=anonymous anonymous-residential"`
	BaseURL   string `json:"base_url,omitempty" validate:"required,url"`
	BatchSize int    `json:"batch_size,omitempty" validate:"min=1"`
	Workers   int    `json:"workers,omitempty" validate:"min=1"`
	Verbose   bool   `json:"verbose,omitempty"`
}

// Default returns the built-in configuration: the anonymous feed at the
// production endpoint, 100000-line batches, 4 workers.
func Default() Config {
	return Config{
		FeedType:  feed.TypeAnonymous.String(),
		BaseURL:   feed.DefaultBaseURL,
		BatchSize: process.DefaultBatchSize,
		Workers:   process.DefaultWorkers,
	}
}

// Load reads configuration overrides from a JSON file.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
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

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled
// from defaults. Used to layer a config file over the built-ins before
// CLI flags are applied on top.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Token == "" {
		result.Token = defaults.Token
	}
	if result.FeedType == "" {
		result.FeedType = defaults.FeedType
	}
	if result.BaseURL == "" {
		result.BaseURL = defaults.BaseURL
	}
	if result.BatchSize == 0 {
		result.BatchSize = defaults.BatchSize
	}
	if result.Workers == 0 {
		result.Workers = defaults.Workers
	}
	if defaults.Verbose {
		result.Verbose = true
	}

	return result
}

// TokenFromEnv reads the API token from the environment.
func TokenFromEnv() string {
	return os.Getenv(EnvToken)
}

// Validate checks the configuration and fails fast before any network
// activity. A missing token or unknown feed type is a configuration
// error.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return err
		}
		for _, fieldErr := range err.(validator.ValidationErrors) {
			switch fieldErr.Field() {
			case "Token":
				return fmt.Errorf("config error: %s environment variable is not set", EnvToken)
			case "FeedType":
				return fmt.Errorf("config error: unknown feed type %q", c.FeedType)
			case "BaseURL":
				return fmt.Errorf("config error: invalid base URL %q", c.BaseURL)
			case "BatchSize":
				return fmt.Errorf("config error: batch size must be positive, got %d", c.BatchSize)
			case "Workers":
				return fmt.Errorf("config error: workers must be positive, got %d", c.Workers)
			}
		}
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}
