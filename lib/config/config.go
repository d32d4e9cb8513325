// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the startup configuration for the cartwatch dashboard.
type Config struct {
	// BaseURL is the root URL of the cart backend, without a trailing
	// slash (e.g. "http://localhost:8000"). File key: base_url.
	BaseURL string

	// CartID identifies the cart this dashboard observes and controls.
	// File key: cart_id.
	CartID string

	// PollInterval is how often the dashboard refreshes cart state
	// from the backend. File key: poll_interval, as a Go duration
	// string.
	PollInterval time.Duration
}

// Default returns the built-in configuration: a local development
// backend and the placeholder cart identifier.
func Default() *Config {
	return &Config{
		BaseURL:      "http://localhost:8000",
		CartID:       "CART-001",
		PollInterval: 2 * time.Second,
	}
}

// Load loads configuration from the CARTWATCH_CONFIG environment
// variable if set, then applies environment overrides. When
// CARTWATCH_CONFIG is unset, defaults plus environment overrides are
// used — unlike the config file, the environment layer is optional by
// design since the dashboard is useful with zero configuration.
func Load() (*Config, error) {
	configPath := os.Getenv("CARTWATCH_CONFIG")
	if configPath == "" {
		cfg := Default()
		cfg.applyEnvironment()
		return cfg, nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific YAML file path, then
// applies environment overrides. Absent keys keep their defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	// Durations are written as strings ("2s", "500ms") in the file, so
	// decode through a wire struct and parse explicitly — yaml.v3 has
	// no native time.Duration support.
	var wire struct {
		BaseURL      string `yaml:"base_url"`
		CartID       string `yaml:"cart_id"`
		PollInterval string `yaml:"poll_interval"`
	}
	if err := yaml.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if wire.BaseURL != "" {
		cfg.BaseURL = wire.BaseURL
	}
	if wire.CartID != "" {
		cfg.CartID = wire.CartID
	}
	if wire.PollInterval != "" {
		interval, err := time.ParseDuration(wire.PollInterval)
		if err != nil {
			return nil, fmt.Errorf("config file %s: poll_interval: %w", path, err)
		}
		cfg.PollInterval = interval
	}

	cfg.applyEnvironment()
	return cfg, nil
}

// applyEnvironment overlays environment variables onto the config. A
// .env file in the working directory is loaded first if present; a
// missing .env is not an error.
func (c *Config) applyEnvironment() {
	_ = godotenv.Load()

	if v := os.Getenv("CARTWATCH_API_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("CARTWATCH_CART_ID"); v != "" {
		c.CartID = v
	}
}

// Validate checks the configuration for values the dashboard cannot
// run with.
func (c *Config) Validate() error {
	parsed, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("base_url %q: %w", c.BaseURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("base_url %q: scheme must be http or https", c.BaseURL)
	}
	if parsed.Host == "" {
		return fmt.Errorf("base_url %q: missing host", c.BaseURL)
	}
	if c.CartID == "" {
		return fmt.Errorf("cart_id must not be empty")
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll_interval must be positive, got %v", c.PollInterval)
	}
	return nil
}
