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

	assert.Equal(t, 3001, cfg.Server.Port)
	assert.Equal(t, "nexusnext.db", cfg.Database.Path)
	assert.Equal(t, 1280, cfg.Showcase.Width)
	assert.Equal(t, 720, cfg.Showcase.Height)
	assert.Empty(t, cfg.Email.APIKey)
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 3001, cfg.Server.Port)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 8080
  base_url: https://nexusnext.io
database:
  path: /tmp/waitlist.db
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "https://nexusnext.io", cfg.Server.BaseURL)
	assert.Equal(t, "/tmp/waitlist.db", cfg.Database.Path)
	// Sections absent from the file keep their defaults.
	assert.Equal(t, 1280, cfg.Showcase.Width)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 8080\n"), 0o600))

	t.Setenv("NEXUSNEXT_PORT", "9090")
	t.Setenv("NEXUSNEXT_DB_PATH", ":memory:")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, ":memory:", cfg.Database.Path)
}

func TestLoadMalformedEnvIntIsIgnored(t *testing.T) {
	t.Setenv("NEXUSNEXT_PORT", "not-a-port")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 3001, cfg.Server.Port)
}

func TestLoadRejectsInvalidPort(t *testing.T) {
	t.Setenv("NEXUSNEXT_PORT", "70000")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoadRejectsUnparseableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a map"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}
