// Package config loads rangecut settings from a YAML file.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type contextKey string

const configKey contextKey = "config"

// Config holds all application configuration
type Config struct {
	// External programs
	FFmpegPath string `yaml:"ffmpeg_path"`
	MpvPath    string `yaml:"mpv_path"`
	MpvSocket  string `yaml:"mpv_socket"`

	// Storage
	DatabasePath string `yaml:"database_path"`
	OutputDir    string `yaml:"output_dir"`

	// Logging
	LogFile  string `yaml:"log_file"`
	LogLevel string `yaml:"log_level"`
}

// Load reads configuration from path, or from the first candidate file when path
// is empty. Missing files yield defaults. Keys absent from the file keep their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = findConfigFile()
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes configuration to path, creating its directory.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Default returns the built-in configuration.
func Default() *Config {
	home, _ := os.UserHomeDir()
	dataDir := filepath.Join(home, ".local", "share", "rangecut")

	return &Config{
		FFmpegPath:   "ffmpeg",
		MpvPath:      "mpv",
		MpvSocket:    "/tmp/rangecut-mpv.sock",
		DatabasePath: filepath.Join(dataDir, "data.db"),
		LogFile:      filepath.Join(dataDir, "rangecut.log"),
		LogLevel:     "info",
	}
}

// DefaultPath is where `rangecut config --save` writes when no --config is given.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "rangecut", "config.yaml")
}

func findConfigFile() string {
	candidates := []string{
		"./rangecut.yaml",
		"./rangecut.yml",
		DefaultPath(),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// WithConfig stores config in context
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// FromContext retrieves config from context
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(configKey).(*Config); ok {
		return cfg
	}
	return Default()
}
