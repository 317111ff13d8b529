// Package config provides YAML-based configuration loading for the pong
// terminal client and SSH server.
package config

import "time"

// Config contains all runtime configuration. Game rules (speeds, sizes,
// the serve countdown) are fixed and deliberately absent.
type Config struct {
	Display DisplayConfig `yaml:"display"`
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// DisplayConfig defines how the simulation is shown in a terminal.
type DisplayConfig struct {
	TickRate   int     `yaml:"tick_rate"`
	CellWidth  float64 `yaml:"cell_width"`  // world units per column
	CellHeight float64 `yaml:"cell_height"` // world units per row
	// KeyHold is how long a key counts as held after its last key event.
	// Terminals report presses and repeats but never releases.
	KeyHold time.Duration `yaml:"key_hold"`
}

// ServerConfig defines the SSH server and its metrics listener.
type ServerConfig struct {
	Address           string        `yaml:"address"`
	HostKeyPath       string        `yaml:"host_key_path"`
	IdleTimeout       time.Duration `yaml:"idle_timeout"`
	MetricsAddress    string        `yaml:"metrics_address"` // empty disables metrics
	SessionsPerMinute float64       `yaml:"sessions_per_minute"`
	SessionBurst      int           `yaml:"session_burst"`
}

// StorageConfig defines where match history is kept.
type StorageConfig struct {
	Path string `yaml:"path"` // empty means ~/.pong/pong.db
}

// LogConfig defines logging.
type LogConfig struct {
	Level string `yaml:"level"`
}
