package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	keys := []string{
		"PORT", "CORS_ORIGIN", "ANALYTICS_ENDPOINT", "GO_ENV", "LOG_LEVEL",
		"RATE_LIMIT_JOIN_LIMIT", "RATE_LIMIT_JOIN_WINDOW", "TABLEHOST_CONFIG_FILE",
	}
	saved := make(map[string]string, len(keys))
	for _, k := range keys {
		saved[k] = os.Getenv(k)
		os.Unsetenv(k)
	}
	t.Cleanup(func() {
		for k, v := range saved {
			if v != "" {
				os.Setenv(k, v)
			} else {
				os.Unsetenv(k)
			}
		}
	})
}

func TestValidateEnvDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := ValidateEnv()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "", cfg.AnalyticsEndpoint)
	assert.Equal(t, "production", cfg.GoEnv)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 10, cfg.RateLimitJoinLimit)
	assert.Equal(t, 60, cfg.RateLimitJoinWindow)
}

func TestValidateEnvOverrides(t *testing.T) {
	clearEnv(t)
	os.Setenv("PORT", "8080")
	os.Setenv("CORS_ORIGIN", "https://example.com")
	os.Setenv("ANALYTICS_ENDPOINT", "https://analytics.example.com/events")
	os.Setenv("LOG_LEVEL", "debug")

	cfg, err := ValidateEnv()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "https://example.com", cfg.CORSOrigin)
	assert.Equal(t, "https://analytics.example.com/events", cfg.AnalyticsEndpoint)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestValidateEnvInvalidPort(t *testing.T) {
	clearEnv(t)
	os.Setenv("PORT", "99999")

	_, err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT must be a valid port number")
}

func TestValidateEnvInvalidRateLimit(t *testing.T) {
	clearEnv(t)
	os.Setenv("RATE_LIMIT_JOIN_LIMIT", "not-a-number")

	_, err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RATE_LIMIT_JOIN_LIMIT must be a positive integer")
}

func TestValidateEnvTOMLFileOverride(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "tablehost.toml")
	contents := "port = 4500\ncors_origin = \"https://from-file.example.com\"\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	os.Setenv("TABLEHOST_CONFIG_FILE", path)

	cfg, err := ValidateEnv()
	require.NoError(t, err)
	assert.Equal(t, 4500, cfg.Port)
	assert.Equal(t, "https://from-file.example.com", cfg.CORSOrigin)
}

func TestValidateEnvEnvWinsOverFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "tablehost.toml")
	require.NoError(t, os.WriteFile(path, []byte("port = 4500\n"), 0o644))
	os.Setenv("TABLEHOST_CONFIG_FILE", path)
	os.Setenv("PORT", "9000")

	cfg, err := ValidateEnv()
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Port)
}

func TestValidateEnvMissingFileIsIgnored(t *testing.T) {
	clearEnv(t)
	os.Setenv("TABLEHOST_CONFIG_FILE", "/nonexistent/tablehost.toml")

	cfg, err := ValidateEnv()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Port)
}
