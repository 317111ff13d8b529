package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Environment variables that override loaded values.
const (
	EnvDB          = "PONG_DB"
	EnvSSHAddr     = "PONG_SSH_ADDR"
	EnvLogLevel    = "PONG_LOG_LEVEL"
	EnvMetricsAddr = "PONG_METRICS_ADDR"
)

// Load loads configuration and applies environment overrides.
// Search order: customPath -> ~/.pong/config.yaml -> ./configs/pong.yaml -> embedded default
//
// Only a custom path reports errors; an unreadable or malformed file
// anywhere else is skipped.
func Load(customPath string) (Config, error) {
	cfg, err := load(customPath)
	if err != nil {
		return cfg, err
	}
	ApplyEnv(&cfg, os.Getenv)
	cfg.fillDefaults()
	return cfg, nil
}

func load(customPath string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "pong.yaml")); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultPongYAML)
	if err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parse decodes YAML on top of the hardcoded defaults, so a file only
// needs the keys it changes.
func parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from environment variables read through getenv.
func ApplyEnv(cfg *Config, getenv func(string) string) {
	if v := getenv(EnvDB); v != "" {
		cfg.Storage.Path = v
	}
	if v := getenv(EnvSSHAddr); v != "" {
		cfg.Server.Address = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := getenv(EnvMetricsAddr); v != "" {
		cfg.Server.MetricsAddress = v
	}
}

// fillDefaults replaces unusable zero or negative values.
func (c *Config) fillDefaults() {
	def := Default()
	if c.Display.TickRate <= 0 {
		c.Display.TickRate = def.Display.TickRate
	}
	if c.Display.CellWidth <= 0 {
		c.Display.CellWidth = def.Display.CellWidth
	}
	if c.Display.CellHeight <= 0 {
		c.Display.CellHeight = def.Display.CellHeight
	}
	if c.Display.KeyHold <= 0 {
		c.Display.KeyHold = def.Display.KeyHold
	}
	if c.Server.SessionsPerMinute <= 0 {
		c.Server.SessionsPerMinute = def.Server.SessionsPerMinute
	}
	if c.Server.SessionBurst <= 0 {
		c.Server.SessionBurst = def.Server.SessionBurst
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
}

// Dir returns ~/.pong, or empty if home is unavailable.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".pong")
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, filename)
}
