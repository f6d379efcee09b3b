// Copyright (c) 2026 Bibliotheca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, scheduler) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/taibuivan/bibliotheca/pkg/query"
)

// # Configuration Schema

// Config holds all runtime configuration for the catalog API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis)
	RedisURL string `env:"REDIS_URL,required"`

	// CatalogCacheTTL bounds how long a cached book list may be served.
	CatalogCacheTTL time.Duration `env:"CATALOG_CACHE_TTL" envDefault:"30s"`

	// Keys used to verify (and, for cmd/token, sign) caller identity tokens.
	// The API server only needs the public key.
	JWTPrivKeyPath string `env:"JWT_PRIVATE_KEY_PATH"`
	JWTPubKeyPath  string `env:"JWT_PUBLIC_KEY_PATH,required"`

	// Cross-Origin Resource Sharing
	FrontendURL  string `env:"FRONTEND_URL"`
	ExtraOrigins string `env:"EXTRA_ORIGINS"`

	// ReconcileSchedule is the cron expression for the orphan favorites sweep.
	// An empty value disables the job.
	ReconcileSchedule string `env:"RECONCILE_SCHEDULE" envDefault:"0 * * * *"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {
	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowedOrigins returns the browser origins permitted by the CORS policy.
//
// Localhost is always allowed in development. Trailing slashes are trimmed
// because browsers never send them in the Origin header.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	if c.IsDevelopment() {
		origins = append(origins, "http://localhost:3000")
	}

	candidates := append(query.CommaList(c.FrontendURL), query.CommaList(c.ExtraOrigins)...)
	for _, origin := range candidates {
		if origin = strings.TrimSuffix(origin, "/"); origin != "" {
			origins = append(origins, origin)
		}
	}

	return origins
}
