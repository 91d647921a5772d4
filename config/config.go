// Package config loads preprocessing settings from YAML or TOML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/neurlang/ttsprep/mel"
)

// Config holds all preprocessing configuration.
type Config struct {
	// Dataset names the corpus directory under the base directory.
	Dataset string `yaml:"dataset" toml:"dataset"`
	// Prefix starts every artifact file name.
	Prefix string `yaml:"prefix" toml:"prefix"`
	// Output names the artifact directory under the base directory.
	Output  string `yaml:"output" toml:"output"`
	Workers int    `yaml:"workers" toml:"workers"`
	// FFTWorkers sets the FFT library's internal parallelism. Utterances
	// already run in parallel, so 1 is the default.
	FFTWorkers int    `yaml:"fft_workers" toml:"fft_workers"`
	LogLevel   string `yaml:"log_level" toml:"log_level"`
	LogFormat  string `yaml:"log_format" toml:"log_format"`

	Audio mel.Mel `yaml:"audio" toml:"audio"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Dataset:    "ptbr",
		Prefix:     "ptbr",
		Output:     "training",
		Workers:    runtime.NumCPU(),
		FFTWorkers: 1,
		LogLevel:   "info",
		LogFormat:  "console",
		Audio:      *mel.NewMel(),
	}
}

// Load reads a config file and decodes it over the defaults. The format is
// chosen by extension: .yaml/.yml or .toml.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("config file %s: unsupported extension %q", path, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Validate checks the config for invalid values.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Dataset) == "" {
		return errors.New("dataset must not be empty")
	}
	if strings.TrimSpace(c.Output) == "" {
		return errors.New("output must not be empty")
	}
	if c.Prefix == "" || strings.ContainsAny(c.Prefix, `/\`) {
		return fmt.Errorf("prefix must be a non-empty file name fragment, got %q", c.Prefix)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be >= 1, got %d", c.Workers)
	}
	if c.FFTWorkers < 0 {
		return fmt.Errorf("fft_workers must be >= 0, got %d", c.FFTWorkers)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn, or error, got %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("log_format must be \"console\" or \"json\", got %q", c.LogFormat)
	}

	if err := c.Audio.Validate(); err != nil {
		return fmt.Errorf("audio: %w", err)
	}
	return nil
}
