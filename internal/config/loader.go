package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadSniffer reads a sniffer YAML config file, expands ${VAR} environment
// variables, applies defaults, and validates.
func LoadSniffer(path string) (*SnifferConfig, error) {
	var cfg SnifferConfig
	if err := load(path, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

// LoadAnalyzer does the same for the analyzer API config.
func LoadAnalyzer(path string) (*AnalyzerConfig, error) {
	var cfg AnalyzerConfig
	if err := load(path, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

func load(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	// Expand ${VAR} environment variables
	expanded := os.ExpandEnv(string(data))

	if err := yaml.Unmarshal([]byte(expanded), out); err != nil {
		return fmt.Errorf("parse config yaml: %w", err)
	}
	return nil
}
