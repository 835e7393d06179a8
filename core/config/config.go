/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Hesab Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package config loads settings from HESAB_* environment variables.
package config

import (
	"fmt"
	"net"

	"github.com/kelseyhightower/envconfig"
)

// Prefix is prepended to every environment variable name
const Prefix = "HESAB"

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
	Calc      CalcConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host string `envconfig:"HOST" default:"0.0.0.0"`
	Port string `envconfig:"PORT" default:"8097"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds per-client rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"20"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"40"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// CalcConfig holds calculator and converter settings.
type CalcConfig struct {
	Locale         string `envconfig:"LOCALE" default:"fa"`
	FractionDigits int    `envconfig:"FRACTION_DIGITS" default:"12"`
}

// sections are processed one by one so the variables are HESAB_PORT rather
// than HESAB_SERVER_PORT.
func (c *Config) sections() []any {
	return []any{&c.Server, &c.Logging, &c.RateLimit, &c.Calc}
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	for _, section := range cfg.sections() {
		if err := envconfig.Process(Prefix, section); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: "8097",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 20,
			Burst:             40,
			Enabled:           true,
		},
		Calc: CalcConfig{
			Locale:         "fa",
			FractionDigits: 12,
		},
	}
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("config: %s_PORT must not be empty", Prefix)
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("config: rate limit needs positive rps and burst, got %d/%d",
			c.RateLimit.RequestsPerSecond, c.RateLimit.Burst)
	}
	if c.Calc.FractionDigits < 0 {
		return fmt.Errorf("config: %s_FRACTION_DIGITS must not be negative", Prefix)
	}
	return nil
}

// Addr returns the host:port the server listens on.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, c.Server.Port)
}

// Usage prints the recognized environment variables.
func Usage() error {
	cfg := Default()
	for _, section := range cfg.sections() {
		if err := envconfig.Usage(Prefix, section); err != nil {
			return err
		}
	}
	return nil
}
