/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/ssargent/serdebench/pkg/codec"
	"github.com/ssargent/serdebench/pkg/generator"
	"github.com/ssargent/serdebench/pkg/stream"
)

// Config represents the serdebench configuration
type Config struct {
	Benchmark Benchmark `yaml:"benchmark"`
	Logging   Logging   `yaml:"logging"`
	Metrics   Metrics   `yaml:"metrics"`
}

// Benchmark selects what a run measures
type Benchmark struct {
	Codec     string `yaml:"codec"`
	Records   int    `yaml:"records"`
	Attempts  int    `yaml:"attempts"`
	ChunkSize int    `yaml:"chunk_size"`
	Dataset   string `yaml:"dataset"`
	Seed      int64  `yaml:"seed"`
}

// Logging contains logging configuration
type Logging struct {
	Level string `yaml:"level"`
}

// Metrics controls the optional scrape endpoint. An empty Addr disables it.
type Metrics struct {
	Addr string `yaml:"addr"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Benchmark: Benchmark{
			Codec:     string(codec.KindMsgpack),
			Records:   10000,
			Attempts:  1,
			ChunkSize: stream.DefaultChunkSize,
			Dataset:   string(generator.DatasetFixed),
			Seed:      1,
		},
		Logging: Logging{
			Level: "info",
		},
	}
}

// Validate reports every invalid setting at once
func (c *Config) Validate() error {
	var result *multierror.Error

	if _, err := codec.ParseKind(c.Benchmark.Codec); err != nil {
		result = multierror.Append(result, fmt.Errorf("benchmark.codec: %w", err))
	}
	if c.Benchmark.Records < 0 {
		result = multierror.Append(result, fmt.Errorf("benchmark.records must not be negative, got %d", c.Benchmark.Records))
	}
	if c.Benchmark.Attempts < 1 {
		result = multierror.Append(result, fmt.Errorf("benchmark.attempts must be at least 1, got %d", c.Benchmark.Attempts))
	}
	if c.Benchmark.ChunkSize < 1 {
		result = multierror.Append(result, fmt.Errorf("benchmark.chunk_size: %w, got %d", stream.ErrInvalidChunkSize, c.Benchmark.ChunkSize))
	}
	if _, err := generator.New(generator.Dataset(c.Benchmark.Dataset), c.Benchmark.Seed); err != nil {
		result = multierror.Append(result, fmt.Errorf("benchmark.dataset: %w", err))
	}
	if _, err := logrus.ParseLevel(c.Logging.Level); err != nil {
		result = multierror.Append(result, fmt.Errorf("logging.level: %w", err))
	}

	return result.ErrorOrNil()
}

// LoadConfig loads configuration from the specified path. Settings missing
// from the file keep their defaults.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves the configuration to the specified path
func SaveConfig(config *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetDefaultConfigPath returns the default configuration path for the current platform
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./serdebench.yaml"
	}

	// For Linux/macOS, use ~/.config/serdebench/config.yaml
	configDir := filepath.Join(homeDir, ".config", "serdebench")
	return filepath.Join(configDir, "config.yaml")
}

// ConfigExists checks if a configuration file exists
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
