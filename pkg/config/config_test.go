package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "GIN_MODE", "DATABASE_URL", "DATA_PATH", "DEFAULT_RATE_LIMIT", "TOKEN_TTL", "SCHEDULER_SEED", "LOG_LEVEL", "ADMIN_USERNAME"} {
		t.Setenv(k, "")
	}

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "release", cfg.GinMode)
	assert.Equal(t, "roster.db", cfg.DataPath)
	assert.Equal(t, "admin", cfg.AdminUsername)
	assert.Equal(t, 10000, cfg.DefaultRateLimit)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Nil(t, cfg.Seed)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DEFAULT_RATE_LIMIT", "25")
	t.Setenv("TOKEN_TTL", "90m")
	t.Setenv("SCHEDULER_SEED", "42")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 25, cfg.DefaultRateLimit)
	assert.Equal(t, 90*time.Minute, cfg.TokenTTL)
	require.NotNil(t, cfg.Seed)
	assert.Equal(t, int64(42), *cfg.Seed)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestFromEnv_Invalid(t *testing.T) {
	cases := map[string]string{
		"DEFAULT_RATE_LIMIT": "-1",
		"TOKEN_TTL":          "tomorrow",
		"SCHEDULER_SEED":     "abc",
		"LOG_LEVEL":          "loud",
	}
	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, val)
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DATA_PATH=from-dotenv.db\n"), 0o644))

	old := EnvPaths
	EnvPaths = []string{filepath.Join(dir, ".env")}
	t.Cleanup(func() { EnvPaths = old })

	t.Setenv("DATA_PATH", "")
	require.NoError(t, os.Unsetenv("DATA_PATH"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv.db", cfg.DataPath)
}

func TestRequireSecrets(t *testing.T) {
	cfg := &Config{}
	err := cfg.RequireSecrets()
	require.ErrorIs(t, err, ErrMissingSecret)
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "API_MASTER_SECRET")

	cfg.JWTSecret = "jwt"
	err = cfg.RequireSecrets()
	require.ErrorIs(t, err, ErrMissingSecret)
	assert.NotContains(t, err.Error(), "JWT_SECRET")

	cfg.APIMasterSecret = "  "
	assert.ErrorIs(t, cfg.RequireSecrets(), ErrMissingSecret)

	cfg.APIMasterSecret = "master"
	assert.NoError(t, cfg.RequireSecrets())
}
