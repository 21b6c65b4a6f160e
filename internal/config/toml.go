// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Practice PracticeConfig `toml:"practice"`
	Tracking TrackingConfig `toml:"tracking"`
}

// PracticeConfig maps default practice metadata.
type PracticeConfig struct {
	Club     *string `toml:"club"`
	Team     *string `toml:"team"`
	Coach    *string `toml:"coach"`
	Athletes *int    `toml:"athletes"`
	Coaches  *int    `toml:"coaches"`
	Drills   *int    `toml:"drills"`
}

// TrackingConfig maps live-tracking settings.
type TrackingConfig struct {
	TickMs *int `toml:"tick-ms"`
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
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
