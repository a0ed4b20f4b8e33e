package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime settings, read once at startup from the
// environment. The .env file (if any) is loaded by main before Load runs.
type Config struct {
	Port        string
	DatabaseURL string

	// AIRequestTimeout bounds every single vendor call.
	AIRequestTimeout time.Duration
	// AIMaxRetries is the number of additional attempts after the first
	// failure when the vendor returns a transient error (429/5xx).
	AIMaxRetries int
	// AIRetryBaseDelay is the delay before the first retry, doubled on each
	// subsequent retry.
	AIRetryBaseDelay time.Duration

	CORSAllowOrigins []string
}

// Load reads configuration from the environment, applying defaults for
// anything unset.
func Load() *Config {
	return &Config{
		Port:             getenv("PORT", "8080"),
		DatabaseURL:      getenv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=jobdraft port=5432 sslmode=disable"),
		AIRequestTimeout: getduration("AI_REQUEST_TIMEOUT", 60*time.Second),
		AIMaxRetries:     getint("AI_MAX_RETRIES", 2),
		AIRetryBaseDelay: getduration("AI_RETRY_BASE_DELAY", 2*time.Second),
		CORSAllowOrigins: getlist("CORS_ALLOW_ORIGINS", []string{"*"}),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getint(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getduration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func getlist(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
