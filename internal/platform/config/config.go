// Copyright (c) 2026 Bnusa. All rights reserved.

/*
Package config maps environment variables into a strongly typed [Config]
using caarlos0/env.

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Configuration is read once at startup and passed to components through their
constructors. Nothing here is global.
*/
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Rate limiter backends.
const (
	RateLimitBackendMemory = "memory"
	RateLimitBackendRedis  = "redis"
)

// Config holds all runtime configuration for the Bnusa API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value store (Redis). Optional unless RATE_LIMIT_BACKEND=redis.
	RedisURL string `env:"REDIS_URL"`

	// RateLimitBackend selects where book-update counters live.
	RateLimitBackend string `env:"RATE_LIMIT_BACKEND" envDefault:"memory"`

	// Identity provider token verification
	AuthPublicKeyPath string `env:"AUTH_PUBLIC_KEY_PATH,required,notEmpty"`
	AuthIssuer        string `env:"AUTH_ISSUER"`
	AuthAudience      string `env:"AUTH_AUDIENCE"`

	// Cross-Origin Resource Sharing
	AllowedOriginSuffix string `env:"ALLOWED_ORIGIN_SUFFIX" envDefault:"bnusa.krd"`
}

// Load parses environment variables into a [Config] and checks cross-field rules.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.RateLimitBackend {
	case RateLimitBackendMemory:
	case RateLimitBackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("config: REDIS_URL is required when RATE_LIMIT_BACKEND=redis")
		}
	default:
		return fmt.Errorf("config: unknown RATE_LIMIT_BACKEND %q", c.RateLimitBackend)
	}
	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// OriginSuffix returns the domain suffix accepted by the CORS middleware.
func (c *Config) OriginSuffix() string {
	return c.AllowedOriginSuffix
}
