package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{
		"server": {"port": "9090"},
		"database": {"driver": "sqlite", "sqlitePath": ":memory:"},
		"client": {"itemsPerPage": 50, "timeout": "3s"}
	}`), 0o600))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, ":memory:", cfg.Database.SQLitePath)
	assert.Equal(t, 50, cfg.Client.ItemsPerPage)
	assert.Equal(t, 3*time.Second, cfg.Client.Timeout)
	assert.Equal(t, 1, cfg.Client.Burst)
}

func TestLoadConfig_MissingFileKeepsDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 20, cfg.Client.ItemsPerPage)
	assert.Equal(t, time.Minute, cfg.Database.KeepAliveInterval)
}

func TestLoadConfig_Malformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{"server":`), 0o600))

	_, err := LoadConfig(dir)
	assert.Error(t, err)
}

func TestGetEnvironment(t *testing.T) {
	t.Setenv("PIM_ADMIN_PASSWORD", "secret")
	t.Setenv("POSTGRES_HOST", "")

	env, err := GetEnvironment("sqlite")
	require.NoError(t, err)
	assert.Equal(t, "admin", env.AdminLogin)
	assert.Equal(t, "disable", env.SSLMode)

	_, err = GetEnvironment("postgres")
	assert.Error(t, err)

	t.Setenv("PIM_ADMIN_PASSWORD", "")
	_, err = GetEnvironment("sqlite")
	assert.Error(t, err)
}

func TestGetConsoleEnvironment(t *testing.T) {
	t.Setenv("PIM_API_URL", "http://pim:8080")
	t.Setenv("PIM_LOGIN", "admin")

	env := GetConsoleEnvironment()
	assert.Equal(t, "http://pim:8080", env.ApiURL)
	assert.Equal(t, "admin", env.Login)
}
