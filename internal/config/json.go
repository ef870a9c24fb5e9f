package config

import (
	"encoding/json"
	"os"

	"github.com/lexazver/teamboard/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent
// fields stay empty and do not override earlier layers.
type JsonConfig struct {
	VaultPath   string `json:"vault_path"`
	SessionPath string `json:"session_path"`
	LogLevel    string `json:"log_level"`
}

// parseJson overlays cfg with values from the JSON file given via -c or
// -config. Without that flag nothing is loaded. Read or unmarshal errors
// panic; a broken explicit config file should not be silently ignored.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.VaultPath != "" {
		cfg.VaultPath = jc.VaultPath
	}
	if jc.SessionPath != "" {
		cfg.SessionPath = jc.SessionPath
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
