package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_TestEnvironment(t *testing.T) {
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("CONFIG_FILE", "nonexistent.yaml")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Environment)
	assert.Equal(t, ":memory:", cfg.DatabaseFilePath)
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenExpiry)
}

func TestNew_DefaultsToDevelopment(t *testing.T) {
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("CONFIG_FILE", "nonexistent.yaml")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8000, cfg.ServerPort)
}

func TestNew_EnvOverrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("CONFIG_FILE", "nonexistent.yaml")
	t.Setenv("MYLIBRARY_SERVER_PORT", "9100")
	t.Setenv("MYLIBRARY_JWT_SECRET", "override-secret")
	t.Setenv("MYLIBRARY_ACCESS_TOKEN_EXPIRY", "15m")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.ServerPort)
	assert.Equal(t, "override-secret", cfg.JWTSecret)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenExpiry)
}

func TestNew_RequiresJWTSecret(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("CONFIG_FILE", "nonexistent.yaml")

	_, err := New()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt_secret")
}
