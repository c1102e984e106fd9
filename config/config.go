// Package config provides configuration loading and management for domsel.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/domsel/domsel/builtin"
	"github.com/domsel/domsel/selector"
)

// Config represents the complete domsel configuration
type Config struct {
	// DefaultSelector is the selector used when the caller names none
	// and auto-detection finds no match (default: "css")
	DefaultSelector string `yaml:"default_selector"`
	// IgnoreHiddenElements makes queries match visible elements only
	// unless a selector or call overrides visibility (default: true)
	IgnoreHiddenElements bool `yaml:"ignore_hidden_elements"`
	// EnableAriaLabel lets field-like selectors match on aria-label
	EnableAriaLabel bool `yaml:"enable_aria_label"`
	// TestIDAttribute, when set, lets field-like selectors match on this
	// attribute (e.g. "data-testid")
	TestIDAttribute string `yaml:"test_id_attribute"`
}

var attrName = regexp.MustCompile(`^[a-zA-Z][\w-]*$`)

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		DefaultSelector:      "css",
		IgnoreHiddenElements: true,
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.DefaultSelector == "" {
		return fmt.Errorf("default_selector is required")
	}
	if c.TestIDAttribute != "" && !attrName.MatchString(c.TestIDAttribute) {
		return fmt.Errorf("test_id_attribute %q is not a valid attribute name", c.TestIDAttribute)
	}
	return nil
}

// DefaultVisibility maps the ignore-hidden flag to the process-wide
// visibility fallback queries resolve against.
func (c *Config) DefaultVisibility() selector.Visibility {
	if c.IgnoreHiddenElements {
		return selector.VisibilityVisible
	}
	return selector.VisibilityAll
}

// Builtin returns the toggles the built-in selectors take at registration.
func (c *Config) Builtin() builtin.Config {
	return builtin.Config{
		EnableAriaLabel: c.EnableAriaLabel,
		TestIDAttribute: c.TestIDAttribute,
	}
}

// LoadFromFile loads configuration from a YAML file, layered over defaults
func LoadFromFile(path string) (*Config, error) {
	config := DefaultConfig()
	if err := config.applyFile(path); err != nil {
		return nil, err
	}
	return config, nil
}

// applyFile unmarshals a YAML file over the current values; keys absent
// from the file keep their current values
func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
