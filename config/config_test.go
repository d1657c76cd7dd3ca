package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recipebook/backend/config"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_USER", "recipebook")
	t.Setenv("DB_NAME", "recipebook")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, config.Test, cfg.Environment)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "disable", cfg.DBSSLMode)
	assert.Equal(t, time.Second, cfg.DBWaitInterval)
	assert.Equal(t, 30, cfg.DBWaitMaxAttempts)
}

func TestLoadConfigOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("DB_WAIT_INTERVAL", "250ms")
	t.Setenv("DB_WAIT_MAX_ATTEMPTS", "5")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.ServerPort)
	assert.Equal(t, 250*time.Millisecond, cfg.DBWaitInterval)
	assert.Equal(t, 5, cfg.DBWaitMaxAttempts)
}

func TestLoadConfigMissingSecret(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_SECRET", "")

	_, err := config.LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigBadDuration(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_WAIT_INTERVAL", "soon")

	_, err := config.LoadConfig()
	assert.Error(t, err)
}
