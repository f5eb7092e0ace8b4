package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// envKeys can be overridden with TASKBOARD_<KEY> environment variables
var envKeys = []string{"model", "max_tokens", "temperature", "seed_file", "debug"}

// Load builds the configuration from defaults, config files and the environment.
//
// With an explicit path only that file is read and it must exist. Otherwise the
// global file (~/.taskboard/config.yaml) is read first and the project file
// (./.taskboard.yaml) overrides it; missing files are skipped.
// Load returns the files that were actually read.
func Load(path string) (*Config, []string, error) {
	cfg := DefaultConfig()
	var sources []string

	if path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, nil, fmt.Errorf("failed to load config %s: %w", path, err)
		}
		sources = append(sources, path)
	} else {
		for _, p := range []string{GlobalConfigPath(), ProjectConfigPath()} {
			if p == "" {
				continue
			}
			err := loadFile(p, cfg)
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			if err != nil {
				return nil, nil, fmt.Errorf("failed to load config %s: %w", p, err)
			}
			sources = append(sources, p)
		}
	}

	if err := loadEnv(cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to read environment: %w", err)
	}

	return cfg, sources, nil
}

func loadFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return err
	}

	return v.Unmarshal(cfg)
}

func loadEnv(cfg *Config) error {
	v := viper.New()
	v.SetEnvPrefix("TASKBOARD")
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return err
		}
	}

	return v.Unmarshal(cfg)
}

// GlobalConfigPath returns the path to the global config file
func GlobalConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".taskboard", "config.yaml")
}

// ProjectConfigPath returns the path to the project config file
func ProjectConfigPath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return filepath.Join(cwd, ".taskboard.yaml")
}
