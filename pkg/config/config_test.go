package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasktrack.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv(EnvVar, "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "127.0.0.1:8000", cfg.Server.Addr)
	assert.Equal(t, "http://127.0.0.1:8000", cfg.Client.APIURL)
	assert.False(t, cfg.Server.Dump)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: 0.0.0.0:9000
  dump: true
client:
  api_url: http://tasks.internal:9000
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9000", cfg.Server.Addr)
	assert.True(t, cfg.Server.Dump)
	assert.Equal(t, "http://tasks.internal:9000", cfg.Client.APIURL)
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "server:\n  dump: true\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultAddr, cfg.Server.Addr)
	assert.Equal(t, DefaultAPIURL, cfg.Client.APIURL)
	assert.True(t, cfg.Server.Dump)
}

func TestLoadFromEnv(t *testing.T) {
	path := writeConfig(t, "client:\n  api_url: http://from-env:1234\n")
	t.Setenv(EnvVar, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://from-env:1234", cfg.Client.APIURL)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "server: [unterminated"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "server:\n  addr: \"\"\n"))
	assert.ErrorContains(t, err, "server.addr")
}
