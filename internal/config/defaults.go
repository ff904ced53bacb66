package config

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Defaults returns the built-in settings as a fresh mapping.
func Defaults() (map[string]any, error) {
	var m map[string]any
	if err := yaml.Unmarshal(defaultsYAML, &m); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	return m, nil
}
