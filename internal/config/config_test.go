package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	require.Equal(t, "8080", cfg.ServerPort)
	require.Equal(t, int64(1000), cfg.DrivePageSize)
	require.Equal(t, 12*time.Hour, cfg.JWTAccessTTL)
	require.False(t, cfg.AuthEnabled())
	require.False(t, cfg.HistoryEnabled())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DRIVE_PAGE_SIZE", "200")
	t.Setenv("DATABASE_URL", "postgres://localhost/copies")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, http://localhost:5173")

	cfg, err := Load()

	require.NoError(t, err)
	require.Equal(t, int64(200), cfg.DrivePageSize)
	require.True(t, cfg.HistoryEnabled())
	require.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.CORSOrigins)
}

func TestValidate(t *testing.T) {
	t.Run("rejects an out-of-range page size", func(t *testing.T) {
		t.Setenv("DRIVE_PAGE_SIZE", "5000")

		_, err := Load()
		require.Error(t, err)
		require.Contains(t, err.Error(), "DRIVE_PAGE_SIZE")
	})

	t.Run("passphrase and signing secret must come together", func(t *testing.T) {
		t.Setenv("API_PASSPHRASE_HASH", "$2a$10$abcdefghijklmnopqrstuv")

		_, err := Load()
		require.Error(t, err)
		require.Contains(t, err.Error(), "JWT_SECRET")
	})

	t.Run("auth enables when both are present", func(t *testing.T) {
		t.Setenv("API_PASSPHRASE_HASH", "$2a$10$abcdefghijklmnopqrstuv")
		t.Setenv("JWT_SECRET", "secret")

		cfg, err := Load()
		require.NoError(t, err)
		require.True(t, cfg.AuthEnabled())
	})
}
