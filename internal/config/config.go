// Package config loads and validates service configuration from the
// environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/mathieu/devis-analyzer/internal/cache"
	"github.com/mathieu/devis-analyzer/internal/registry"
)

// Config is the resolved service configuration.
type Config struct {
	GeminiAPIKey  string `validate:"required"`
	Port          int    `validate:"min=1,max=65535"`
	AppEnv        string `validate:"oneof=development production"`
	CacheCapacity int    `validate:"min=1"`
	SireneBaseURL string `validate:"required,url"`
}

// Load reads the environment and applies defaults. GEMINI_API_KEY is the
// only required variable.
func Load() (*Config, error) {
	cfg := &Config{
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		Port:          3000,
		AppEnv:        "development",
		CacheCapacity: cache.DefaultCapacity,
		SireneBaseURL: registry.DefaultBaseURL,
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Port = port
	}
	if v := os.Getenv("APP_ENV"); v != "" {
		cfg.AppEnv = v
	}
	if v := os.Getenv("CACHE_CAPACITY"); v != "" {
		capacity, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid CACHE_CAPACITY %q: %w", v, err)
		}
		cfg.CacheCapacity = capacity
	}
	if v := os.Getenv("SIRENE_BASE_URL"); v != "" {
		cfg.SireneBaseURL = v
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// IsProduction gates whether error details are exposed to clients.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
