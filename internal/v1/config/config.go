// Package config validates and loads the process environment. It follows
// the collect-all-errors-then-report shape: every variable is checked, and
// a single combined error names every failure at once rather than bailing
// out on the first bad value.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds validated runtime configuration.
type Config struct {
	Port int

	CORSOrigin string

	// AnalyticsEndpoint is optional; empty disables the analytics sink.
	AnalyticsEndpoint string

	GoEnv    string
	LogLevel string

	RateLimitJoinLimit  int
	RateLimitJoinWindow int // seconds
}

// fileOverrides mirrors the subset of Config an optional on-disk TOML file
// may seed. Environment variables are validated afterward and always win.
type fileOverrides struct {
	Port                int    `toml:"port"`
	CORSOrigin          string `toml:"cors_origin"`
	AnalyticsEndpoint   string `toml:"analytics_endpoint"`
	GoEnv               string `toml:"go_env"`
	LogLevel            string `toml:"log_level"`
	RateLimitJoinLimit  int    `toml:"rate_limit_join_limit"`
	RateLimitJoinWindow int    `toml:"rate_limit_join_window"`
}

// ValidateEnv validates environment variables, optionally seeded by a TOML
// file named by TABLEHOST_CONFIG_FILE, and returns a Config. Returns an
// error if any value present is malformed.
func ValidateEnv() (*Config, error) {
	cfg := &Config{
		Port:                3000,
		GoEnv:               "production",
		LogLevel:            "info",
		RateLimitJoinLimit:  10,
		RateLimitJoinWindow: 60,
	}
	applyFileOverrides(cfg)

	var errs []string

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port < 1 || port > 65535 {
			errs = append(errs, fmt.Sprintf("PORT must be a valid port number between 1 and 65535 (got '%s')", v))
		} else {
			cfg.Port = port
		}
	}

	cfg.CORSOrigin = getEnvOrDefault("CORS_ORIGIN", cfg.CORSOrigin)

	if v, ok := os.LookupEnv("ANALYTICS_ENDPOINT"); ok {
		cfg.AnalyticsEndpoint = v
	}

	cfg.GoEnv = getEnvOrDefault("GO_ENV", cfg.GoEnv)
	cfg.LogLevel = getEnvOrDefault("LOG_LEVEL", cfg.LogLevel)

	if v := os.Getenv("RATE_LIMIT_JOIN_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			errs = append(errs, fmt.Sprintf("RATE_LIMIT_JOIN_LIMIT must be a positive integer (got '%s')", v))
		} else {
			cfg.RateLimitJoinLimit = n
		}
	}
	if v := os.Getenv("RATE_LIMIT_JOIN_WINDOW"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			errs = append(errs, fmt.Sprintf("RATE_LIMIT_JOIN_WINDOW must be a positive number of seconds (got '%s')", v))
		} else {
			cfg.RateLimitJoinWindow = n
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("environment validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	logValidatedConfig(cfg)
	return cfg, nil
}

// applyFileOverrides loads TABLEHOST_CONFIG_FILE, if set, into cfg. A
// missing or unreadable file is not fatal: it is a local-development
// convenience, and env validation still runs afterward either way.
func applyFileOverrides(cfg *Config) {
	path := os.Getenv("TABLEHOST_CONFIG_FILE")
	if path == "" {
		return
	}
	var f fileOverrides
	if _, err := toml.DecodeFile(path, &f); err != nil {
		slog.Warn("ignoring unreadable config file", "path", path, "error", err)
		return
	}
	if f.Port != 0 {
		cfg.Port = f.Port
	}
	if f.CORSOrigin != "" {
		cfg.CORSOrigin = f.CORSOrigin
	}
	if f.AnalyticsEndpoint != "" {
		cfg.AnalyticsEndpoint = f.AnalyticsEndpoint
	}
	if f.GoEnv != "" {
		cfg.GoEnv = f.GoEnv
	}
	if f.LogLevel != "" {
		cfg.LogLevel = f.LogLevel
	}
	if f.RateLimitJoinLimit != 0 {
		cfg.RateLimitJoinLimit = f.RateLimitJoinLimit
	}
	if f.RateLimitJoinWindow != 0 {
		cfg.RateLimitJoinWindow = f.RateLimitJoinWindow
	}
}

func logValidatedConfig(cfg *Config) {
	slog.Info("configuration validated",
		"port", cfg.Port,
		"cors_origin", cfg.CORSOrigin,
		"analytics_enabled", cfg.AnalyticsEndpoint != "",
		"go_env", cfg.GoEnv,
		"log_level", cfg.LogLevel,
		"rate_limit_join_limit", cfg.RateLimitJoinLimit,
		"rate_limit_join_window", cfg.RateLimitJoinWindow,
	)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
