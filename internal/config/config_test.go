package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.ServerURL)
	assert.Equal(t, 30*time.Second, cfg.UploadTimeout())
	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, 5, cfg.DashboardLimit)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "cookie", cfg.AuthScheme)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("LIBRARY_SERVER_URL", "https://library.example.com")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://library.example.com", cfg.ServerURL)
	assert.Equal(t, "debug", cfg.LogLevel)
}
