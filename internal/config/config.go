// Package config holds runtime settings for the teamboard CLI and their
// layered loading: defaults, then JSON file, then environment, then flags,
// with later sources taking precedence.
package config

import (
	"os"
	"path/filepath"
)

// Config holds runtime settings.
//
// Fields:
//   - VaultPath: SQLite file with the durable credential store.
//   - SessionPath: SQLite file with the session slot. It defaults to the
//     OS temp directory, which is wiped between OS sessions — that scoping
//     is what limits a recovered login to the current session.
//   - LogLevel: "debug", "info", "warn" or "error".
type Config struct {
	VaultPath   string `env:"TEAMBOARD_VAULT_PATH"`
	SessionPath string `env:"TEAMBOARD_SESSION_PATH"`
	LogLevel    string `env:"TEAMBOARD_LOG_LEVEL"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.VaultPath = "teamboard.db"
	c.SessionPath = filepath.Join(os.TempDir(), "teamboard-session.db")
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if a config file was given), the environment, and
// command-line flags. Later sources take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
