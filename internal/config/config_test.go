package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DSN", "host=localhost user=bidwatch dbname=bidwatch")
	t.Setenv("JWT_ACCESS_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, 7090, cfg.HTTP.Port)
	assert.Equal(t, 15, cfg.Submit.TimeoutSeconds)
	assert.False(t, cfg.Submit.RetryOnce)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_DSN", "host=db user=bidwatch dbname=bidwatch")
	t.Setenv("JWT_ACCESS_SECRET", "test-secret")
	t.Setenv("APP_ENV", "production")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("SUBMIT_TIMEOUT_SECONDS", "30")
	t.Setenv("SUBMIT_RETRY_ONCE", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 30, cfg.Submit.TimeoutSeconds)
	assert.True(t, cfg.Submit.RetryOnce)
}

func TestLoadMissingRequired(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "test-secret")
	t.Setenv("DB_DSN", "")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DSN")

	t.Setenv("DB_DSN", "host=localhost")
	t.Setenv("JWT_ACCESS_SECRET", "")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_ACCESS_SECRET")
}
