package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// EnvPaths are tried in order; the first .env found is loaded
var EnvPaths = []string{".env", "../.env", "../../.env"}

// Config holds the runtime configuration read from the environment
type Config struct {
	Port             string
	GinMode          string
	DatabaseURL      string
	DataPath         string
	JWTSecret        string
	APIMasterSecret  string
	AdminUsername    string
	AdminPassword    string
	DefaultRateLimit int
	TokenTTL         time.Duration
	Seed             *int64
	LogLevel         slog.Level
}

// LoadDotEnv loads the first .env file found in EnvPaths. Variables already
// set in the environment win.
func LoadDotEnv() {
	for _, p := range EnvPaths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			return
		}
	}
}

// Load reads .env (if present) and the environment
func Load() (*Config, error) {
	LoadDotEnv()
	return FromEnv()
}

// FromEnv builds a Config from the current environment only
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:            getenv("PORT", "8000"),
		GinMode:         getenv("GIN_MODE", "release"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		DataPath:        getenv("DATA_PATH", "roster.db"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		APIMasterSecret: os.Getenv("API_MASTER_SECRET"),
		AdminUsername:   getenv("ADMIN_USERNAME", "admin"),
		AdminPassword:   getenv("ADMIN_PASSWORD", "admin123"),
	}

	var err error
	if cfg.DefaultRateLimit, err = strconv.Atoi(getenv("DEFAULT_RATE_LIMIT", "10000")); err != nil || cfg.DefaultRateLimit <= 0 {
		return nil, fmt.Errorf("config: DEFAULT_RATE_LIMIT must be a positive integer")
	}
	if cfg.TokenTTL, err = time.ParseDuration(getenv("TOKEN_TTL", "24h")); err != nil {
		return nil, fmt.Errorf("config: TOKEN_TTL: %w", err)
	}
	if v := os.Getenv("SCHEDULER_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("config: SCHEDULER_SEED: %w", err)
		}
		cfg.Seed = &seed
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(getenv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("config: LOG_LEVEL: %w", err)
	}
	return cfg, nil
}

// ErrMissingSecret is returned by RequireSecrets
var ErrMissingSecret = errors.New("config: secret is not set")

// RequireSecrets reports an error when a signing secret the HTTP server
// depends on is empty.
func (c *Config) RequireSecrets() error {
	var missing []string
	if strings.TrimSpace(c.JWTSecret) == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if strings.TrimSpace(c.APIMasterSecret) == "" {
		missing = append(missing, "API_MASTER_SECRET")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingSecret, strings.Join(missing, ", "))
	}
	return nil
}

// Logger returns a text logger writing to stderr at the configured level
func (c *Config) Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: c.LogLevel}))
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
