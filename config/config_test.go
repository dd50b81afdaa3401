package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.HTTPPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.SeedData)
	assert.True(t, cfg.MigrateOnBoot)
	assert.NotEmpty(t, cfg.DatabaseURL)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	contents := `
http_port = "8080"
log_level = "debug"
seed_data = false
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.SeedData)
	// Unset keys keep their defaults.
	assert.True(t, cfg.MigrateOnBoot)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("VICAF_HTTP_PORT", "9090")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.HTTPPort)
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}
