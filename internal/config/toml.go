// Package config loads the TOML settings file and resolves XDG paths.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Quiz QuizConfig `toml:"quiz"`
}

// QuizConfig maps quiz settings. Nil fields were not set in the file.
type QuizConfig struct {
	Modes      []string `toml:"modes"`
	Chem20     *bool    `toml:"chem20"`
	MainGroup  *bool    `toml:"main-group"`
	Transition *bool    `toml:"transition"`
	RareEarths *bool    `toml:"rare-earths"`
	MaxRow     *int     `toml:"max-row"`
	Seed       *int64   `toml:"seed"`
	History    *bool    `toml:"history"`
	Catalog    *string  `toml:"catalog"`
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
	return cfg, nil
}
