package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "0.0.0.0", cfg.ServerHost)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 10*time.Hour, cfg.AuthTokenLifetime)
	assert.Equal(t, 10, cfg.LockoutMaxAttempts)
	assert.Equal(t, 30*time.Minute, cfg.LockoutDuration)
	assert.Equal(t, "devsync", cfg.MetricsNamespace)
	assert.True(t, cfg.RateLimitEnabled)
	assert.True(t, cfg.RateLimitAuthEnabled)
	assert.False(t, cfg.CORSEnabled)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("AUTH_TOKEN_SECRET", "test-secret")
	t.Setenv("AUTH_TOKEN_LIFETIME_SECONDS", "60")
	t.Setenv("LOCKOUT_MAX_ATTEMPTS", "3")

	cfg := Load()

	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, "test-secret", cfg.AuthTokenSecret)
	assert.Equal(t, time.Minute, cfg.AuthTokenLifetime)
	assert.Equal(t, 3, cfg.LockoutMaxAttempts)
}

func TestGetGinMode(t *testing.T) {
	tests := []struct {
		logLevel string
		expected string
	}{
		{"debug", "debug"},
		{"info", "release"},
		{"warn", "release"},
		{"error", "release"},
		{"unknown", "release"},
	}

	for _, tt := range tests {
		t.Run(tt.logLevel, func(t *testing.T) {
			cfg := &Config{LogLevel: tt.logLevel}
			assert.Equal(t, tt.expected, cfg.GetGinMode())
		})
	}
}
