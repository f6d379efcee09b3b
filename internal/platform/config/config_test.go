// Copyright (c) 2026 Bibliotheca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bibliotheca/internal/platform/config"
)

func setRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/bibliotheca")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("JWT_PRIVATE_KEY_PATH", "/keys/private.pem")
	t.Setenv("JWT_PUBLIC_KEY_PATH", "/keys/public.pem")
}

/*
TestLoad_Defaults verifies that optional settings fall back to their defaults.
*/
func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "./data/migrations", cfg.MigrationPath)
	assert.Equal(t, 30*time.Second, cfg.CatalogCacheTTL)
	assert.Equal(t, "0 * * * *", cfg.ReconcileSchedule)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

/*
TestLoad_MissingRequired verifies that a missing DATABASE_URL aborts loading.
*/
func TestLoad_MissingRequired(t *testing.T) {
	setRequired(t)
	t.Setenv("DATABASE_URL", "")

	_, err := config.Load()
	assert.Error(t, err)
}

/*
TestConfig_AllowedOrigins checks origin assembly for the CORS policy.
*/
func TestConfig_AllowedOrigins(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.Config
		expected []string
	}{
		{
			name:     "development_includes_localhost",
			cfg:      config.Config{Environment: "development", FrontendURL: "https://library.example/"},
			expected: []string{"http://localhost:3000", "https://library.example"},
		},
		{
			name:     "production_uses_configured_only",
			cfg:      config.Config{Environment: "production", ExtraOrigins: "https://a.example, https://b.example"},
			expected: []string{"https://a.example", "https://b.example"},
		},
		{
			name:     "nothing_configured",
			cfg:      config.Config{Environment: "production"},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.cfg.AllowedOrigins())
		})
	}
}
