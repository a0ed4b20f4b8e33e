package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "AI_REQUEST_TIMEOUT", "AI_MAX_RETRIES", "AI_RETRY_BASE_DELAY", "CORS_ALLOW_ORIGINS"} {
		t.Setenv(key, "")
	}
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.NotEmpty(t, cfg.DatabaseURL)
	assert.Equal(t, 60*time.Second, cfg.AIRequestTimeout)
	assert.Equal(t, 2, cfg.AIMaxRetries)
	assert.Equal(t, 2*time.Second, cfg.AIRetryBaseDelay)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowOrigins)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("AI_REQUEST_TIMEOUT", "30s")
	t.Setenv("AI_MAX_RETRIES", "5")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://app.example.com, https://staging.example.com")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.AIRequestTimeout)
	assert.Equal(t, 5, cfg.AIMaxRetries)
	assert.Equal(t, []string{"https://app.example.com", "https://staging.example.com"}, cfg.CORSAllowOrigins)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("AI_MAX_RETRIES", "many")
	t.Setenv("AI_REQUEST_TIMEOUT", "soon")

	cfg := Load()
	assert.Equal(t, 2, cfg.AIMaxRetries)
	assert.Equal(t, 60*time.Second, cfg.AIRequestTimeout)
}
