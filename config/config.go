// Package config loads the optional YAML configuration file. Values given
// on the command line take precedence over the file.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hubertkaluzny/weight-exporter/fetcher"
	"github.com/hubertkaluzny/weight-exporter/formatter"
)

type Config struct {
	ClientSecrets string `yaml:"client_secrets"`
	TokenFile     string `yaml:"token_file"`
	DataSourceID  string `yaml:"data_source_id"`
	Format        string `yaml:"format"`
	OutputDir     string `yaml:"output_dir"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.ClientSecrets == "" {
		c.ClientSecrets = "client_secrets.json"
	}
	if c.TokenFile == "" {
		c.TokenFile = "weight-exporter-token.json"
	}
	if c.DataSourceID == "" {
		c.DataSourceID = fetcher.MergedWeightStream
	}
	if c.Format == "" {
		c.Format = string(formatter.Default)
	}
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
}

func (c *Config) validate() error {
	if _, err := formatter.ToFormat(c.Format); err != nil {
		return fmt.Errorf("format: %w", err)
	}
	if c.ClientSecrets == c.TokenFile {
		return errors.New("client_secrets and token_file must be different files")
	}
	return nil
}
