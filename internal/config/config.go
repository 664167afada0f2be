// Package config loads rulematch settings from YAML with environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all rulematch configuration.
type Config struct {
	// Engine selects the matcher: backtrack or thompson.
	Engine string `yaml:"engine"`

	// Workers bounds parallel matching. 0 uses GOMAXPROCS.
	Workers int `yaml:"workers"`

	// Strict makes references to undefined rules a compile error.
	Strict bool `yaml:"strict"`

	// MaxStates rejects grammars whose automaton would be larger. 0 = unlimited.
	MaxStates int `yaml:"max_states"`

	// TransitionsFile receives the transition dump when set.
	TransitionsFile string `yaml:"transitions_file"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures log output.
type LoggingConfig struct {
	Level   string `yaml:"level"`   // debug, info, warn, error
	Verbose bool   `yaml:"verbose"` // compiler analysis log
}

// ValidEngines lists the accepted Engine values.
var ValidEngines = []string{"backtrack", "thompson"}

// ValidLevels lists the accepted Logging.Level values.
var ValidLevels = []string{"debug", "info", "warn", "error"}

// Environment variables that override file settings.
const (
	EnvEngine  = "RULEMATCH_ENGINE"
	EnvWorkers = "RULEMATCH_WORKERS"
	EnvStrict  = "RULEMATCH_STRICT"
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Engine:  "backtrack",
		Workers: 0,
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv(EnvEngine); v != "" {
		c.Engine = strings.ToLower(v)
	}
	if v := os.Getenv(EnvWorkers); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvWorkers, err)
		}
		c.Workers = n
	}
	if v := os.Getenv(EnvStrict); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvStrict, err)
		}
		c.Strict = b
	}
	return nil
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if !contains(ValidEngines, c.Engine) {
		return fmt.Errorf("invalid engine: %s (valid: %v)", c.Engine, ValidEngines)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.MaxStates < 0 {
		return fmt.Errorf("max_states must not be negative, got %d", c.MaxStates)
	}
	if !contains(ValidLevels, c.Logging.Level) {
		return fmt.Errorf("invalid logging level: %s (valid: %v)", c.Logging.Level, ValidLevels)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
