// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BoardKeep Contributors

// Package config loads server configuration from defaults, an optional
// YAML file, environment variables, and command-line flags, in that order
// of precedence. The result is passed explicitly into constructors; there
// is no ambient global configuration.
package config

import (
	"os"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"
)

// Environment variables for values that should not appear on a command
// line. DATABASE_URL is accepted as a conventional fallback.
const (
	EnvDatabaseURL         = "BOARDKEEP_DATABASE_URL"
	EnvDatabaseURLFallback = "DATABASE_URL"
	EnvTokenSecret         = "BOARDKEEP_TOKEN_SECRET"
)

// Config holds all server settings.
type Config struct {
	// Addr is the API listen address.
	Addr string `koanf:"addr"`

	// MetricsAddr is the metrics/health listen address. Empty disables
	// the observability server.
	MetricsAddr string `koanf:"metrics-addr"`

	// DatabaseURL is the PostgreSQL connection string.
	DatabaseURL string `koanf:"database-url"`

	// TokenSecret signs bearer tokens. Process-wide; rotating it
	// invalidates all outstanding tokens.
	TokenSecret string `koanf:"token-secret"`

	// LogFormat is "json" or "text".
	LogFormat string `koanf:"log-format"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `koanf:"shutdown-timeout"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		Addr:            ":8080",
		MetricsAddr:     "127.0.0.1:9100",
		LogFormat:       "json",
		ShutdownTimeout: 10 * time.Second,
	}
}

// Load builds a Config. path is an optional YAML file; flags is an
// optional already-parsed flag set whose changed flags override the file.
// Secrets (database URL, token secret) come from the environment and
// override everything.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, oops.Code("CONFIG_FILE_FAILED").
				With("path", path).
				Wrap(err)
		}
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return Config{}, oops.Code("CONFIG_FLAGS_FAILED").Wrap(err)
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, oops.Code("CONFIG_INVALID").Wrap(err)
	}

	if v := os.Getenv(EnvDatabaseURL); v != "" {
		cfg.DatabaseURL = v
	} else if v := os.Getenv(EnvDatabaseURLFallback); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv(EnvTokenSecret); v != "" {
		cfg.TokenSecret = v
	}

	return cfg, nil
}

// Validate checks that the configuration is complete.
func (c Config) Validate() error {
	if c.Addr == "" {
		return oops.Code("CONFIG_INVALID").Errorf("addr is required")
	}
	if c.DatabaseURL == "" {
		return oops.Code("CONFIG_INVALID").
			Errorf("database-url is required (set %s)", EnvDatabaseURL)
	}
	if c.TokenSecret == "" {
		return oops.Code("CONFIG_INVALID").
			Errorf("token-secret is required (set %s)", EnvTokenSecret)
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return oops.Code("CONFIG_INVALID").
			With("log_format", c.LogFormat).
			Errorf("log-format must be 'json' or 'text'")
	}
	if c.ShutdownTimeout <= 0 {
		return oops.Code("CONFIG_INVALID").Errorf("shutdown-timeout must be positive")
	}
	return nil
}
