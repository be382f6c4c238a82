package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{"DATABASE_DRIVER", "DATABASE_URL", "SERVER_PORT", "SECRET_KEY", "SESSION_EXPIRATION", "AUTH_PASSWORD_HASH", "LOG_LEVEL"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadWithOptions(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.DatabaseDriver)
	assert.Equal(t, "postgresql://postgres@localhost:5432/se_team", cfg.DatabaseURL)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 24*time.Hour, cfg.SessionExpiration)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.NotEmpty(t, cfg.SecretKey)
	assert.True(t, cfg.GeneratedSecret)
	assert.False(t, cfg.AuthEnabled())
}

func TestLoadGeneratesSecretPerProcess(t *testing.T) {
	clearEnv(t)

	first, err := LoadWithOptions(LoadOptions{})
	require.NoError(t, err)
	second, err := LoadWithOptions(LoadOptions{})
	require.NoError(t, err)

	assert.NotEqual(t, first.SecretKey, second.SecretKey)

	t.Setenv("SECRET_KEY", "configured")
	cfg, err := LoadWithOptions(LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, "configured", cfg.SecretKey)
	assert.False(t, cfg.GeneratedSecret)
}

func TestLoadSQLiteDefaultPath(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_DRIVER", "SQLite")

	cfg, err := LoadWithOptions(LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.DatabaseDriver)
	assert.Equal(t, "se_team.db", cfg.DatabaseURL)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_DRIVER", "oracle")

	_, err := LoadWithOptions(LoadOptions{})
	assert.Error(t, err)
}

func TestLoadRequiresSecretWithAuth(t *testing.T) {
	clearEnv(t)
	t.Setenv("AUTH_PASSWORD_HASH", "$2a$10$abcdefghijklmnopqrstuv")

	_, err := LoadWithOptions(LoadOptions{})
	assert.Error(t, err)

	t.Setenv("SECRET_KEY", "s3cret")
	cfg, err := LoadWithOptions(LoadOptions{})
	require.NoError(t, err)
	assert.True(t, cfg.AuthEnabled())
	assert.Equal(t, "s3cret", cfg.SecretKey)
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("SERVER_PORT=9999\nLOG_LEVEL=debug\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("SERVER_PORT")
		os.Unsetenv("LOG_LEVEL")
	})

	cfg, err := LoadWithOptions(LoadOptions{EnvFile: envFile})
	require.NoError(t, err)
	assert.Equal(t, "9999", cfg.ServerPort)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadMissingEnvFileIsIgnored(t *testing.T) {
	clearEnv(t)

	_, err := LoadWithOptions(LoadOptions{EnvFile: filepath.Join(t.TempDir(), "nope.env")})
	assert.NoError(t, err)
}
