// Package config loads the promptbuilder YAML configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"promptbuilder/pkg/prompt"
)

// Config mirrors config.yaml.
type Config struct {
	Whitelist     string   `yaml:"whitelist"`        // Comma-separated extensions, empty allows all
	Recursive     bool     `yaml:"recursive"`        // Descend into subdirectories when adding folders
	Ignore        []string `yaml:"ignore"`           // Glob patterns skipped during traversal
	IgnoreFile    string   `yaml:"ignore_file"`      // Line-based ignore file
	MaxFileSizeKB int      `yaml:"max_file_size_kb"` // 0 disables the limit
	Output        string   `yaml:"output"`           // Prompt destination, empty writes to stdout
	Censor        struct {
		Marker      string `yaml:"marker"`      // Segment whose successor is hidden
		Placeholder string `yaml:"placeholder"` // Replacement text
	} `yaml:"censor"`
}

// DefaultPath returns $HOME/.config/promptbuilder/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "promptbuilder", "config.yaml"), nil
}

// LoadConfig loads configuration from the default location.
func LoadConfig() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(path)
}

// LoadConfigFile loads configuration from path. A missing file yields the defaults.
func LoadConfigFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Unmarshalling over the defaults keeps values for keys the file omits.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.Censor.Marker = prompt.DefaultMarker
	cfg.Censor.Placeholder = prompt.DefaultPlaceholder
	return cfg
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.MaxFileSizeKB < 0 {
		return fmt.Errorf("max_file_size_kb must not be negative, got %d", c.MaxFileSizeKB)
	}
	for name, v := range map[string]string{"censor.marker": c.Censor.Marker, "censor.placeholder": c.Censor.Placeholder} {
		if v == "" {
			return fmt.Errorf("%s must not be empty", name)
		}
		if strings.ContainsAny(v, `/\`) {
			return fmt.Errorf("%s must be a single path segment, got %q", name, v)
		}
	}
	return nil
}

// CensorConfig converts the censor section for the prompt package.
func (c *Config) CensorConfig() prompt.Censor {
	return prompt.Censor{Marker: c.Censor.Marker, Placeholder: c.Censor.Placeholder}
}

// Save writes the configuration as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
