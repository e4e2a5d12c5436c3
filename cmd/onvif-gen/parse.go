package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RawCatalog represents an action catalog loaded from YAML.
type RawCatalog struct {
	Namespace string         `yaml:"namespace"`
	Actions   []RawActionDef `yaml:"actions"`
}

// RawActionDef represents one cataloged operation.
type RawActionDef struct {
	Name        string `yaml:"name"`
	Implemented bool   `yaml:"implemented"`
}

// ParseCatalog parses an action catalog from YAML bytes.
func ParseCatalog(data []byte) (*RawCatalog, error) {
	var catalog RawCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if catalog.Namespace == "" {
		return nil, fmt.Errorf("catalog missing namespace")
	}
	if len(catalog.Actions) == 0 {
		return nil, fmt.Errorf("catalog lists no actions")
	}
	seen := make(map[string]bool, len(catalog.Actions))
	for i, action := range catalog.Actions {
		if action.Name == "" {
			return nil, fmt.Errorf("action %d missing name", i)
		}
		if seen[action.Name] {
			return nil, fmt.Errorf("duplicate action %q", action.Name)
		}
		seen[action.Name] = true
	}
	return &catalog, nil
}

// LoadCatalog loads and parses an action catalog from a file.
func LoadCatalog(path string) (*RawCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return ParseCatalog(data)
}
