package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/ratings")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("JWT_SECRET", "secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)
	c, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	require.Equal(t, "postgres://localhost/ratings", c.DatabaseURL)
	require.Equal(t, 24*time.Hour, c.AccessTokenTTL)
	require.Equal(t, 720*time.Hour, c.RefreshTokenTTL)
	require.Equal(t, ":8080", c.HTTPAddr)
	require.Equal(t, 10*time.Second, c.ShutdownTimeout)
	require.Equal(t, 1, c.WorkerCount)
	require.Equal(t, "store_rating.events", c.AMQPExchange)
	require.Equal(t, "@every 10m", c.RateLimitClean)
	require.Equal(t, 5.0, c.RateLimitRPS)
	require.Equal(t, 10, c.RateLimitBurst)
	require.False(t, c.SeedAdmin())
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("HTTP_ADDR", ":9000")
	t.Setenv("ACCESS_TOKEN_TTL", "15m")
	t.Setenv("ADMIN_EMAIL", "admin@example.com")
	t.Setenv("ADMIN_PASSWORD", "Admin@123")

	c, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	require.Equal(t, ":9000", c.HTTPAddr)
	require.Equal(t, 15*time.Minute, c.AccessTokenTTL)
	require.True(t, c.SeedAdmin())
}

func TestLoadDotenv(t *testing.T) {
	setRequired(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("LOG_FORMAT=text\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("LOG_FORMAT") })

	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "text", c.LogFormat)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing required", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")
		t.Setenv("REDIS_ADDR", "")
		t.Setenv("JWT_SECRET", "")
		os.Unsetenv("DATABASE_URL")
		_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
		require.Error(t, err)
	})

	t.Run("dotenv failure", func(t *testing.T) {
		setRequired(t)
		dotenvLoad = func(...string) error { return errors.New("parse") }
		t.Cleanup(func() { dotenvLoad = godotenv.Load })
		_, err := Load()
		require.EqualError(t, err, "parse")
	})
}
