// Package config loads the local client configuration. This is the machine's
// own config (API endpoint, credentials, file paths) — the timer settings
// live server-side and are fetched through the recorder.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	appDirName     = "focusloop"
	configFileName = "config.yaml"
)

// Config represents the full focusloop client configuration
type Config struct {
	API   APIConfig   `yaml:"api"`
	Log   LogConfig   `yaml:"log"`
	Spool SpoolConfig `yaml:"spool"`
}

// APIConfig contains recorder API settings
type APIConfig struct {
	BaseURL string `yaml:"baseUrl"`
	Token   string `yaml:"token"`
}

// LogConfig contains debug logging settings
type LogConfig struct {
	File string `yaml:"file"`
}

// SpoolConfig contains retry-spool settings
type SpoolConfig struct {
	Path string `yaml:"path"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	dataDir, _ := os.UserCacheDir()

	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:8000",
		},
		Log: LogConfig{
			File: filepath.Join(dataDir, appDirName, "debug.log"),
		},
		Spool: SpoolConfig{
			Path: filepath.Join(dataDir, appDirName, "spool.db"),
		},
	}
}

// Path returns the location of the client config file
func Path() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appDirName, configFileName), nil
}

// Load reads the client config, falling back to defaults when the file does
// not exist. Missing fields are merged with defaults.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads the client config from an explicit path
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config yaml: %w", err)
	}
	return MergeWithDefaults(&cfg), nil
}

// Save writes the client config to its standard location
func Save(cfg *Config) error {
	path, err := Path()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config yaml: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// MergeWithDefaults fills in missing values with defaults
func MergeWithDefaults(cfg *Config) *Config {
	defaults := DefaultConfig()

	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = defaults.API.BaseURL
	}
	if cfg.Log.File == "" {
		cfg.Log.File = defaults.Log.File
	}
	if cfg.Spool.Path == "" {
		cfg.Spool.Path = defaults.Spool.Path
	}

	return cfg
}
