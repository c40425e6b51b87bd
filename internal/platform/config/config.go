// Copyright (c) 2026 MangaMirror. All rights reserved.
// Author: duc.lehoang.vn@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into strongly-typed
Go structs, providing early validation and default values.

Usage:

	cfg, err := config.LoadAPI()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, HTTP, importer) via constructors.
  - Zero Hidden State: No global variables are used to store config.

Both binaries (api and import) load their own struct; neither reads the
environment anywhere else.
*/
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// # API Server Configuration

// API holds all runtime configuration for the MangaMirror HTTP server.
type API struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"3000"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// JWTSecret signs session tokens (HS256).
	JWTSecret string `env:"JWT_SECRET,required"`
}

// LoadAPI parses environment variables into an [API] struct.
func LoadAPI() (*API, error) {
	cfg := &API{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}
	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *API) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *API) IsProduction() bool {
	return c.Environment == "production"
}

// # Importer Configuration

// Importer holds all runtime configuration for the catalog import job.
//
// The per-endpoint backoff values parameterize the retry-on-429 policy so
// rate-limit tuning never requires a code change.
type Importer struct {

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// SourceURL is the base URL of the upstream catalog API.
	SourceURL string `env:"SOURCE_API_URL" envDefault:"https://api.mangadex.org"`

	// RedisURL enables the resume checkpoint when set. Optional: without it
	// every run starts from offset 0 (insert-if-absent keeps that idempotent).
	RedisURL string `env:"REDIS_URL"`

	// PageLimit is the fixed catalog page size. The offset always advances by
	// this amount, regardless of how many items a page actually returned.
	PageLimit int `env:"IMPORT_PAGE_LIMIT" envDefault:"21"`

	// EntryDelay is the pause between consecutive catalog entries.
	EntryDelay time.Duration `env:"IMPORT_ENTRY_DELAY" envDefault:"0s"`

	// PageFetchDelay is the pause after each chapter's page batch. This is the
	// dominant rate-limit control for the whole pipeline.
	PageFetchDelay time.Duration `env:"IMPORT_PAGE_DELAY" envDefault:"1025ms"`

	// Backoff applied when the respective endpoint answers HTTP 429.
	ListBackoff  time.Duration `env:"IMPORT_LIST_BACKOFF"  envDefault:"10s"`
	FeedBackoff  time.Duration `env:"IMPORT_FEED_BACKOFF"  envDefault:"5s"`
	PagesBackoff time.Duration `env:"IMPORT_PAGES_BACKOFF" envDefault:"10s"`
}

// LoadImporter parses environment variables into an [Importer] struct.
func LoadImporter() (*Importer, error) {
	cfg := &Importer{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}
	return cfg, nil
}
