// Package config loads the silk.yaml project configuration.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the silk.yaml configuration.
type Config struct {
	// SourceDir holds the .slk source units.
	SourceDir string `yaml:"sourceDir,omitempty"`

	// OutDir receives the compiled artifacts.
	OutDir string `yaml:"outDir,omitempty"`

	// Page is the host page template compiled fragments are embedded into.
	// Empty means artifacts are written standalone.
	Page string `yaml:"page,omitempty"`

	// Target is the id of the default markup container on the page.
	Target string `yaml:"target,omitempty"`

	// Dev configures the development server.
	Dev *DevConfig `yaml:"dev,omitempty"`
}

// DevConfig contains development server configuration.
type DevConfig struct {
	Host string `yaml:"host,omitempty"`
	Port int    `yaml:"port,omitempty"`
}

// DefaultConfig returns the configuration used when silk.yaml is absent.
func DefaultConfig() *Config {
	return &Config{
		SourceDir: "ui",
		OutDir:    "dist",
		Target:    "silk-root",
		Dev: &DevConfig{
			Host: "localhost",
			Port: 4311,
		},
	}
}

// Load reads silk.yaml from the given directory. A missing file yields the
// defaults rather than an error; a malformed file is an error.
func Load(dir string) (*Config, error) {
	data, err := os.ReadFile(filepath.Join(dir, "silk.yaml"))
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.Dev == nil {
		cfg.Dev = DefaultConfig().Dev
	}
	return cfg, nil
}

// Save writes the configuration to silk.yaml in the given directory.
func (c *Config) Save(dir string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "silk.yaml"), data, 0644)
}
