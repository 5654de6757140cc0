// Copyright 2026 The Taskdesk Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the Taskdesk service configuration.
type Config struct {
	// Listen is the TCP address the HTTP API binds to.
	Listen string `yaml:"listen"`

	// Database is the path to the SQLite database file. The parent
	// directory must exist.
	Database string `yaml:"database"`

	// StateDir holds service state that is not the database: the
	// session signing key lives at StateDir/session-signing-key.
	StateDir string `yaml:"state_dir"`

	// AdminSocket is the path of the unix socket serving the admin
	// protocol (status, export). Empty disables the socket.
	AdminSocket string `yaml:"admin_socket"`

	// SessionTTL is how long a minted session token stays valid.
	SessionTTL Duration `yaml:"session_ttl"`

	// PoolSize is the SQLite connection pool size. Zero means the
	// sqlitepool default.
	PoolSize int `yaml:"pool_size"`
}

// Duration wraps time.Duration with YAML decoding from strings like
// "24h" or "90m".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("config: invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Default returns a development configuration: API on localhost:8080,
// all state under ./taskdesk-data, 24-hour sessions.
func Default() *Config {
	return &Config{
		Listen:      "127.0.0.1:8080",
		Database:    "taskdesk-data/taskdesk.db",
		StateDir:    "taskdesk-data",
		AdminSocket: "taskdesk-data/admin.sock",
		SessionTTL:  Duration(24 * time.Hour),
	}
}

// LoadFile reads and validates a config file. Missing fields keep
// their Default values; path fields are variable-expanded after
// loading.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	cfg.Database = expandVars(cfg.Database)
	cfg.StateDir = expandVars(cfg.StateDir)
	cfg.AdminSocket = expandVars(cfg.AdminSocket)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if c.Listen == "" {
		return fmt.Errorf("listen address is required")
	}
	if c.Database == "" {
		return fmt.Errorf("database path is required")
	}
	if c.StateDir == "" {
		return fmt.Errorf("state_dir is required")
	}
	if time.Duration(c.SessionTTL) <= 0 {
		return fmt.Errorf("session_ttl must be positive")
	}
	return nil
}

// varPattern matches ${VAR} and ${VAR:-default}.
var varPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} against the process
// environment. Unset variables without a default expand to the empty
// string, which Validate will catch for required paths.
func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		groups := varPattern.FindStringSubmatch(match)
		if value, ok := os.LookupEnv(groups[1]); ok {
			return value
		}
		return groups[2]
	})
}
