package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for key := range defaults {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "release", cfg.Server.GinMode)
	assert.Equal(t, "model.gob", cfg.Model.ModelPath)
	assert.Equal(t, "standscaler.gob", cfg.Model.ScalerPath)
	assert.False(t, cfg.Database.Enabled)
	assert.Equal(t, 168*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("MODEL_PATH", "/srv/model.gob")
	t.Setenv("DB_ENABLED", "true")
	t.Setenv("DB_HOST", "db:3306")
	t.Setenv("JWT_TTL", "1h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, "/srv/model.gob", cfg.Model.ModelPath)
	assert.True(t, cfg.Database.Enabled)
	assert.Equal(t, "db:3306", cfg.Database.Hostname)
	assert.Equal(t, time.Hour, cfg.JWT.TTL)
}

func TestLoadInvalidTTL(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_TTL", "a week")

	_, err := Load()
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger("debug")
	require.NoError(t, err)
	assert.NotNil(t, logger)

	_, err = NewLogger("loud")
	assert.Error(t, err)
}
