package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", "s")
	t.Setenv("CSRF_SECRET", "c")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.AppAddr)
	assert.Equal(t, "admin", cfg.AuthUsername)
	assert.Equal(t, "123", cfg.AuthPassword)
	assert.Equal(t, 60, cfg.RateLimitPerMinute)
	assert.Equal(t, 720*time.Hour, cfg.SessionTTL)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("SESSION_SECRET", "s")
	t.Setenv("CSRF_SECRET", "c")
	t.Setenv("APP_ENV", "production")
	t.Setenv("AUTH_USERNAME", "kasir")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "120")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "kasir", cfg.AuthUsername)
	assert.Equal(t, 120, cfg.RateLimitPerMinute)
}

func TestLoadConfigRequiresSecrets(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("CSRF_SECRET", "c")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestNilConfigIsNotProduction(t *testing.T) {
	var cfg *Config
	assert.False(t, cfg.IsProduction())
}
