package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DATABASE_URL", "DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS", "PORT", "HOST", "SHUTDOWN_TIMEOUT",
		"JWT_SECRET", "TOKEN_TTL", "ADMIN_USERNAME", "ADMIN_PASSWORD",
		"CORS_ALLOWED_ORIGINS", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultDatabaseURL, cfg.Database.URL)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, ":8000", cfg.Server.Addr())
	assert.Equal(t, 24*time.Hour, cfg.Security.TokenTTL)
	assert.True(t, cfg.UsesDefaultSecret())
	assert.False(t, cfg.Admin.Enabled())
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.NotEmpty(t, cfg.CORS.AllowedOrigins)
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/shows")
	t.Setenv("PORT", "9100")
	t.Setenv("JWT_SECRET", "a-much-longer-production-secret")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("ADMIN_USERNAME", " root ")
	t.Setenv("ADMIN_PASSWORD", "changeme123")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("LOG_FORMAT", "TEXT")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://u:p@db:5432/shows", cfg.Database.URL)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, 2*time.Hour, cfg.Security.TokenTTL)
	assert.False(t, cfg.UsesDefaultSecret())
	assert.True(t, cfg.Admin.Enabled())
	assert.Equal(t, "root", cfg.Admin.Username)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "port not a number", key: "PORT", val: "eighty"},
		{name: "port out of range", key: "PORT", val: "70000"},
		{name: "short secret", key: "JWT_SECRET", val: "tiny"},
		{name: "bad ttl", key: "TOKEN_TTL", val: "forever"},
		{name: "negative ttl", key: "TOKEN_TTL", val: "-1h"},
		{name: "log level", key: "LOG_LEVEL", val: "verbose"},
		{name: "half admin", key: "ADMIN_USERNAME", val: "root"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.val)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	cfg := &Config{}

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"DATABASE_URL", "JWT_SECRET", "TOKEN_TTL", "PORT", "LOG_LEVEL", "LOG_FORMAT"} {
		assert.Contains(t, err.Error(), want)
	}
}
