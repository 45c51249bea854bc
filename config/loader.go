// Package config loads loom's YAML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Validator lets configuration types carry their own validation, invoked
// after unmarshalling.
type Validator interface {
	Validate() error
}

// LoadYAML unmarshals the YAML file at path into target. When target
// implements Validator, validation runs before returning.
func LoadYAML[T any](path string, target *T) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve path %q: %w", path, err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return fmt.Errorf("failed to read configuration file %q: %w", absPath, err)
	}

	if err := yaml.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to parse YAML configuration: %w", err)
	}

	if v, ok := any(target).(Validator); ok {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("configuration validation failed: %w", err)
		}
	}
	return nil
}
