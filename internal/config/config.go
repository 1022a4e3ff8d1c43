// Package config handles application configuration from environment variables
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

// Config holds all application configuration
type Config struct {
	Port string `env:"PORT" envDefault:"8080"`
	// BaseURL is the public origin advertised in the agent card; empty
	// means the origin of each card request.
	BaseURL string `env:"BASE_URL"`

	Log            LogConfig          `envPrefix:"LOG_"`
	Calendarific   CalendarificConfig `envPrefix:"CALENDARIFIC_"`
	Cache          CacheConfig        `envPrefix:"HOLIDAY_CACHE_"`
	AggregateDelay time.Duration      `env:"AGGREGATE_DELAY" envDefault:"100ms"`
	OpenAI         OpenAIConfig       `envPrefix:"OPENAI_"`
}

type LogConfig struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Pretty bool   `env:"PRETTY" envDefault:"false"`
}

// CalendarificConfig holds holiday provider configuration
type CalendarificConfig struct {
	APIKey              string        `env:"API_KEY"`
	BaseURL             string        `env:"BASE_URL" envDefault:"https://calendarific.com/api/v2"`
	Timeout             time.Duration `env:"TIMEOUT" envDefault:"15s"`
	MaxConcurrent       int           `env:"MAX_CONCURRENT" envDefault:"4"`
	CacheProviderErrors bool          `env:"CACHE_PROVIDER_ERRORS" envDefault:"false"`
}

type CacheConfig struct {
	Size int           `env:"SIZE" envDefault:"500"`
	TTL  time.Duration `env:"TTL" envDefault:"24h"`
}

// OpenAIConfig holds chat model configuration; any OpenAI-compatible
// endpoint works through BaseURL.
type OpenAIConfig struct {
	APIKey        string `env:"API_KEY"`
	BaseURL       string `env:"BASE_URL"`
	Model         string `env:"MODEL" envDefault:"gpt-4o-mini"`
	MaxToolRounds int    `env:"MAX_TOOL_ROUNDS" envDefault:"5"`
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// HasCalendarific returns true if the holiday provider key is set
func (c *Config) HasCalendarific() bool {
	return c.Calendarific.APIKey != ""
}

// HasOpenAI returns true if a chat model key is set
func (c *Config) HasOpenAI() bool {
	return c.OpenAI.APIKey != ""
}

// Validate rejects values the components cannot run with. A missing
// Calendarific key is not an error here; it surfaces on the first fetch.
func (c *Config) Validate() error {
	var errs []error
	if c.Port == "" {
		errs = append(errs, errors.New("PORT must not be empty"))
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}
	if c.Cache.Size <= 0 {
		errs = append(errs, fmt.Errorf("HOLIDAY_CACHE_SIZE must be positive, got %d", c.Cache.Size))
	}
	if c.Cache.TTL <= 0 {
		errs = append(errs, fmt.Errorf("HOLIDAY_CACHE_TTL must be positive, got %s", c.Cache.TTL))
	}
	if c.Calendarific.MaxConcurrent <= 0 {
		errs = append(errs, fmt.Errorf("CALENDARIFIC_MAX_CONCURRENT must be positive, got %d", c.Calendarific.MaxConcurrent))
	}
	if c.Calendarific.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("CALENDARIFIC_TIMEOUT must be positive, got %s", c.Calendarific.Timeout))
	}
	if c.AggregateDelay < 0 {
		errs = append(errs, fmt.Errorf("AGGREGATE_DELAY must not be negative, got %s", c.AggregateDelay))
	}
	if c.OpenAI.MaxToolRounds <= 0 {
		errs = append(errs, fmt.Errorf("OPENAI_MAX_TOOL_ROUNDS must be positive, got %d", c.OpenAI.MaxToolRounds))
	}
	return errors.Join(errs...)
}
