package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/pong.yaml
var defaultPongYAML []byte

// Default returns the hardcoded default configuration.
func Default() Config {
	return Config{
		Display: DisplayConfig{
			TickRate:   60,
			CellWidth:  16,
			CellHeight: 32,
			KeyHold:    200 * time.Millisecond,
		},
		Server: ServerConfig{
			Address:           ":2222",
			HostKeyPath:       ".ssh/pong_ed25519",
			IdleTimeout:       10 * time.Minute,
			MetricsAddress:    "",
			SessionsPerMinute: 6,
			SessionBurst:      3,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultPongYAML
}
