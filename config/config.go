// Package config loads the command line tool's YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/cocosip/go-bmp-lzw/lzw"
	"gopkg.in/yaml.v2"
)

// Config is the contents of the configuration file.
type Config struct {
	// Codec holds LZW parameters by their parameter names,
	// e.g. codeword_width and parallel.
	Codec map[string]interface{} `yaml:"codec,omitempty"`

	// Accept is a boolean expression over compression statistics that a
	// compressed file must satisfy; empty accepts everything.
	Accept string `yaml:"accept,omitempty"`

	// Verify decompresses each file after compressing it and compares
	// the pixels.
	Verify bool `yaml:"verify"`

	// OutputDir receives output files; empty writes next to the input.
	OutputDir string `yaml:"output_dir,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Codec:  map[string]interface{}{},
		Verify: true,
	}
}

// Load reads the configuration file at path. A missing file yields the
// defaults; keys absent from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read configuration file '%s': %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file '%s': %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration file '%s': %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write configuration file '%s': %w", path, err)
	}
	return nil
}

// Validate checks the codec parameters and compiles the accept rule.
func (c *Config) Validate() error {
	if _, err := c.Parameters(); err != nil {
		return err
	}
	_, err := c.Rule()
	return err
}

// Parameters decodes the codec section.
func (c *Config) Parameters() (*lzw.Parameters, error) {
	return lzw.ParametersFromMap(c.Codec)
}

// Rule compiles the accept expression.
func (c *Config) Rule() (*Rule, error) {
	return NewRule(c.Accept)
}
