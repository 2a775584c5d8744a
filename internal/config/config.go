// Package config loads splitqueued's TOML configuration, mirroring the
// queue's own Config plus the ambient server and logging settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/tutu-network/splitqueue/internal/queue"
)

// Config holds all daemon configuration.
type Config struct {
	Queue   QueueConfig   `toml:"queue"`
	API     APIConfig     `toml:"api"`
	Logging LoggingConfig `toml:"logging"`
}

// QueueConfig mirrors queue.Config in a TOML-friendly shape.
type QueueConfig struct {
	LevelAbsolutePriority bool    `toml:"level_absolute_priority" json:"level_absolute_priority"`
	LevelTimeMultiplier   float64 `toml:"level_time_multiplier" json:"level_time_multiplier"`
	LevelThresholdSeconds []int64 `toml:"level_threshold_seconds" json:"level_threshold_seconds"`
}

// APIConfig controls the HTTP introspection server.
type APIConfig struct {
	Host          string `toml:"host" json:"host"`
	Port          int    `toml:"port" json:"port"`
	EnableMetrics bool   `toml:"enable_metrics" json:"enable_metrics"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level string `toml:"level" json:"level"`
}

// ToQueueConfig converts the TOML-shaped queue settings into queue.Config.
func (c Config) ToQueueConfig() queue.Config {
	return queue.Config{
		LevelAbsolutePriority: c.Queue.LevelAbsolutePriority,
		LevelTimeMultiplier:   c.Queue.LevelTimeMultiplier,
		LevelThresholdSeconds: append([]int64(nil), c.Queue.LevelThresholdSeconds...),
	}
}

// DefaultConfig returns the canonical configuration: a 5-level time-balanced
// queue, an API bound to loopback, and info-level logging.
func DefaultConfig() Config {
	return Config{
		Queue: QueueConfig{
			LevelAbsolutePriority: false,
			LevelTimeMultiplier:   2.0,
			LevelThresholdSeconds: append([]int64(nil), queue.DefaultLevelThresholdSeconds...),
		},
		API: APIConfig{
			Host:          "127.0.0.1",
			Port:          7350,
			EnableMetrics: false,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig reads config from $SPLITQUEUE_HOME/config.toml, falling back to
// defaults when no file exists.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(splitqueueHome(), "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// SaveConfig writes cfg to $SPLITQUEUE_HOME/config.toml.
func SaveConfig(cfg Config) error {
	path := filepath.Join(splitqueueHome(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}

// splitqueueHome returns the directory holding splitqueued's config file.
func splitqueueHome() string {
	if env := os.Getenv("SPLITQUEUE_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".splitqueue")
}
