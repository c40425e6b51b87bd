// Copyright (c) 2026 MangaMirror. All rights reserved.
// Author: duc.lehoang.vn@gmail.com

package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lehoangduc/mangamirror/internal/platform/config"
)

/*
TestLoadAPI_Defaults verifies the API defaults and that a fresh load reports
development mode.
*/
func TestLoadAPI_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/mangamirror")
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := config.LoadAPI()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.ServerPort)
	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.Debug)
	assert.Equal(t, "./data/migrations", cfg.MigrationPath)

	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

/*
TestLoadAPI_ProductionEnvironment flips the mode helpers.
*/
func TestLoadAPI_ProductionEnvironment(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/mangamirror")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := config.LoadAPI()
	require.NoError(t, err)

	assert.False(t, cfg.IsDevelopment())
	assert.True(t, cfg.IsProduction())
}

/*
TestLoadImporter_Defaults verifies the importer's pacing defaults.
*/
func TestLoadImporter_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/mangamirror")

	cfg, err := config.LoadImporter()
	require.NoError(t, err)

	assert.Equal(t, "https://api.mangadex.org", cfg.SourceURL)
	assert.Empty(t, cfg.RedisURL)
	assert.Equal(t, 21, cfg.PageLimit)
	assert.Equal(t, time.Duration(0), cfg.EntryDelay)
	assert.Equal(t, 1025*time.Millisecond, cfg.PageFetchDelay)
	assert.Equal(t, 10*time.Second, cfg.ListBackoff)
	assert.Equal(t, 5*time.Second, cfg.FeedBackoff)
	assert.Equal(t, 10*time.Second, cfg.PagesBackoff)
}
