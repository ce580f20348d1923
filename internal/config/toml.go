package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Storage StorageConfig `toml:"storage"`
	Log     LogConfig     `toml:"log"`
	Player  PlayerConfig  `toml:"player"`
}

type StorageConfig struct {
	DBPath *string `toml:"db-path"`
}

type LogConfig struct {
	Level *string `toml:"level"`
	File  *string `toml:"file"`
}

// PlayerConfig tunes headless playback. A tick shorter than a second plays
// sessions faster than real time.
type PlayerConfig struct {
	TickMS *int `toml:"tick-ms"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	if cfg.Player.TickMS != nil && *cfg.Player.TickMS <= 0 {
		return FileConfig{}, fmt.Errorf("player.tick-ms must be greater than 0")
	}
	return cfg, nil
}

// ParseLevel maps a config level name to a slog level.
func ParseLevel(name string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", name)
	}
	return lvl, nil
}

// TickInterval returns the playback tick, one second unless configured.
func (c FileConfig) TickInterval() time.Duration {
	if c.Player.TickMS == nil {
		return time.Second
	}
	return time.Duration(*c.Player.TickMS) * time.Millisecond
}

// DefaultTemplate is written by `kegelcoach config` when no file exists.
func DefaultTemplate() string {
	return fmt.Sprintf(`# kegelcoach configuration
# Uncomment a value to enable it. CLI flags override config values.

[storage]
# db-path = %q

[log]
# level = "info"          # debug, info, warn or error
# file = %q

[player]
# tick-ms = 1000          # playback tick for the play command
`, DefaultDBPath(), DefaultLogPath())
}
