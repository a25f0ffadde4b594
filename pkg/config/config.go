// Package config provides configuration loading and management for findroi.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"findroi/internal/models"
	"findroi/pkg/roi"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Processing parameters
	Processing struct {
		// Margin is the padding in voxels added around the discovered ROI
		Margin uint `yaml:"margin"`

		// Threshold is the background level; voxels above it are foreground
		Threshold uint16 `yaml:"threshold"`

		// Workers is how many goroutines scan the volume
		Workers int `yaml:"workers"`

		// SymmetricClamp bounds every axis by its own extent instead of
		// the historical cross-axis mapping
		SymmetricClamp bool `yaml:"symmetricClamp"`
	} `yaml:"processing"`

	// Volume decoding parameters
	Volume struct {
		// VoxelSize is the physical voxel spacing in mm, zero when unknown
		VoxelSize struct {
			X float64 `yaml:"x"`
			Y float64 `yaml:"y"`
			Z float64 `yaml:"z"`
		} `yaml:"voxelSize"`

		// ByteOrder is the default byte order of raw volumes: little or big
		ByteOrder string `yaml:"byteOrder"`
	} `yaml:"volume"`

	// Output parameters
	Output struct {
		// Verbose logs progress to stderr
		Verbose bool `yaml:"verbose"`

		// Stats adds foreground intensity statistics to the human report
		Stats bool `yaml:"stats"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Processing.Margin = roi.DefaultMargin
	cfg.Processing.Threshold = roi.BackgroundThreshold
	cfg.Processing.Workers = runtime.NumCPU()
	cfg.Processing.SymmetricClamp = false

	cfg.Volume.ByteOrder = "little"

	cfg.Output.Verbose = false
	cfg.Output.Stats = false

	return cfg
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}

	return cfg, nil
}

// LoadFile is LoadConfig for a file the user named explicitly: a missing
// file is an error rather than a silent fallback to defaults.
func LoadFile(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("error opening config file: %w", err)
	}
	return LoadConfig(configPath)
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// Validate checks values that YAML types cannot rule out. A worker count
// of zero or less means one worker per CPU.
func (c *Config) Validate() error {
	if c.Processing.Workers < 1 {
		c.Processing.Workers = runtime.NumCPU()
	}
	switch c.Volume.ByteOrder {
	case "", "little", "big":
	default:
		return fmt.Errorf("volume.byteOrder must be little or big, got %q", c.Volume.ByteOrder)
	}
	vs := c.Volume.VoxelSize
	if vs.X < 0 || vs.Y < 0 || vs.Z < 0 {
		return fmt.Errorf("volume.voxelSize must not be negative")
	}
	return nil
}

// ClampMode maps SymmetricClamp to the expander's clamp mode.
func (c *Config) ClampMode() roi.ClampMode {
	if c.Processing.SymmetricClamp {
		return roi.ClampOwnAxis
	}
	return roi.ClampCrossAxis
}

// VoxelSize returns the configured spacing.
func (c *Config) VoxelSize() models.VoxelSize {
	vs := c.Volume.VoxelSize
	return models.VoxelSize{X: vs.X, Y: vs.Y, Z: vs.Z}
}
