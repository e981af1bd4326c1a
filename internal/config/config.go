package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	// AppEnv is "dev" (colored logs) or "prod" (JSON logs).
	AppEnv   string
	LogLevel slog.Level
	Port     string

	// APIBaseURL is the base of the remote get-properties endpoint.
	APIBaseURL string

	// HTTPTimeout bounds a single outbound attempt; FetchTimeout bounds a
	// whole query including retries.
	HTTPTimeout  time.Duration
	FetchTimeout time.Duration
	MaxRetries   int // automatic retries of a failed fetch (0 = manual retry only)

	// Query result cache.
	CacheTTL        time.Duration // results younger than this are reused
	CacheMaxEntries int           // 0 = unlimited

	SessionTTL    time.Duration // idle sessions older than this are dropped
	SweepInterval time.Duration

	// AutoApply re-queries after every filter edit instead of only on
	// search and apply.
	AutoApply bool
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}
	cfg := &AppConfig{}

	cfg.AppEnv = getenvDefault("APP_ENV", "dev")
	switch cfg.AppEnv {
	case "dev", "prod":
	default:
		return nil, fmt.Errorf("invalid APP_ENV %q (allowed: dev, prod)", cfg.AppEnv)
	}

	level, err := parseLogLevel(getenvDefault("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.APIBaseURL = strings.TrimRight(getenvDefault("PROPERTIES_API_BASE_URL", "http://localhost:5000"), "/")

	durations := []struct {
		key string
		def string
		dst *time.Duration
	}{
		{"HTTP_TIMEOUT", "10s", &cfg.HTTPTimeout},
		{"FETCH_TIMEOUT", "15s", &cfg.FetchTimeout},
		{"CACHE_TTL", "1m", &cfg.CacheTTL},
		{"SESSION_TTL", "30m", &cfg.SessionTTL},
		{"SWEEP_INTERVAL", "1m", &cfg.SweepInterval},
	}
	for _, d := range durations {
		v, err := time.ParseDuration(getenvDefault(d.key, d.def))
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", d.key, err)
		}
		*d.dst = v
	}

	cfg.MaxRetries = getenvInt("FETCH_MAX_RETRIES", 0)
	if cfg.MaxRetries < 0 {
		return nil, fmt.Errorf("invalid FETCH_MAX_RETRIES %d: must not be negative", cfg.MaxRetries)
	}
	cfg.CacheMaxEntries = getenvInt("CACHE_MAX_ENTRIES", 256)
	cfg.AutoApply = getenvBool("SEARCH_AUTO_APPLY", false)

	return cfg, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", s)
	}
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}
