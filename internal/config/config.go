// Dramatlas - Whisky Collection Analytics and Recommendations
// Copyright 2026 Dramatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dramatlas/dramatlas

package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Config holds the complete application configuration, assembled from
// defaults, an optional YAML file, and environment variables.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Bar       BarConfig       `koanf:"bar"`
	Recommend RecommendConfig `koanf:"recommend"`
	History   HistoryConfig   `koanf:"history"`
	API       APIConfig       `koanf:"api"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host        string        `koanf:"host"`
	Port        int           `koanf:"port"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"`
}

// CatalogConfig locates the bottle catalog data file.
type CatalogConfig struct {
	Path string `koanf:"path"`
}

// BarConfig configures the upstream bar service that serves user
// collections (owned bottles and wishlists). When disabled, every
// user is treated as a new user and receives fallback picks.
type BarConfig struct {
	Enabled bool          `koanf:"enabled"`
	URL     string        `koanf:"url"`
	Token   string        `koanf:"token"`
	Timeout time.Duration `koanf:"timeout"`

	// Circuit breaker tuning for the bar service client.
	BreakerMaxRequests uint32        `koanf:"breaker_max_requests"`
	BreakerInterval    time.Duration `koanf:"breaker_interval"`
	BreakerTimeout     time.Duration `koanf:"breaker_timeout"`
}

// RecommendConfig tunes the recommendation engine.
type RecommendConfig struct {
	DefaultCount        int     `koanf:"default_count"`
	MaxCount            int     `koanf:"max_count"`
	CandidateMultiplier int     `koanf:"candidate_multiplier"`
	PricePenalty        float64 `koanf:"price_penalty"`
	FallbackScore       float64 `koanf:"fallback_score"`
}

// HistoryConfig controls persistence of served recommendations.
type HistoryConfig struct {
	Enabled         bool          `koanf:"enabled"`
	Path            string        `koanf:"path"`
	TTL             time.Duration `koanf:"ttl"`
	CleanupInterval time.Duration `koanf:"cleanup_interval"`
}

// APIConfig controls API response pagination.
type APIConfig struct {
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`
}

// SecurityConfig controls rate limiting and CORS.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	TrustedProxies    []string      `koanf:"trusted_proxies"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Validate checks the configuration for invalid or inconsistent values.
// It is called automatically by LoadWithKoanf.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %s", c.Server.Timeout)
	}

	if c.Catalog.Path == "" {
		return fmt.Errorf("catalog.path must not be empty")
	}

	if c.Bar.Enabled {
		if c.Bar.URL == "" {
			return fmt.Errorf("bar.url is required when the bar service is enabled")
		}
		u, err := url.Parse(c.Bar.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("bar.url must be a valid http(s) URL, got %q", c.Bar.URL)
		}
		if c.Bar.Timeout <= 0 {
			return fmt.Errorf("bar.timeout must be positive, got %s", c.Bar.Timeout)
		}
	}

	if c.Recommend.DefaultCount < 1 {
		return fmt.Errorf("recommend.default_count must be at least 1, got %d", c.Recommend.DefaultCount)
	}
	if c.Recommend.MaxCount < c.Recommend.DefaultCount {
		return fmt.Errorf("recommend.max_count (%d) must be >= recommend.default_count (%d)",
			c.Recommend.MaxCount, c.Recommend.DefaultCount)
	}
	if c.Recommend.CandidateMultiplier < 1 {
		return fmt.Errorf("recommend.candidate_multiplier must be at least 1, got %d", c.Recommend.CandidateMultiplier)
	}
	if c.Recommend.PricePenalty <= 0 || c.Recommend.PricePenalty > 1 {
		return fmt.Errorf("recommend.price_penalty must be in (0, 1], got %g", c.Recommend.PricePenalty)
	}
	if c.Recommend.FallbackScore <= 0 || c.Recommend.FallbackScore > 1 {
		return fmt.Errorf("recommend.fallback_score must be in (0, 1], got %g", c.Recommend.FallbackScore)
	}

	if c.History.Enabled {
		if c.History.Path == "" {
			return fmt.Errorf("history.path must not be empty when history is enabled")
		}
		if c.History.TTL <= 0 {
			return fmt.Errorf("history.ttl must be positive, got %s", c.History.TTL)
		}
	}

	if c.API.DefaultPageSize < 1 {
		return fmt.Errorf("api.default_page_size must be at least 1, got %d", c.API.DefaultPageSize)
	}
	if c.API.MaxPageSize < c.API.DefaultPageSize {
		return fmt.Errorf("api.max_page_size (%d) must be >= api.default_page_size (%d)",
			c.API.MaxPageSize, c.API.DefaultPageSize)
	}

	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs < 1 {
			return fmt.Errorf("security.rate_limit_reqs must be at least 1, got %d", c.Security.RateLimitReqs)
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("security.rate_limit_window must be positive, got %s", c.Security.RateLimitWindow)
		}
	}

	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "error", "fatal":
	default:
		return fmt.Errorf("logging.level must be one of trace, debug, info, warn, error, fatal; got %q", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}

	return nil
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Environment, "production")
}
