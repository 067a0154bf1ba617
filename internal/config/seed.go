package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SeedPermission declares one entry of the permission catalog.
type SeedPermission struct {
	Resource    string `yaml:"resource"`
	Action      string `yaml:"action"`
	Description string `yaml:"description"`
}

// SeedRole declares a role and the subset of the catalog it is granted.
// A grant of ["*"] means every catalog entry.
type SeedRole struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Grants      []string `yaml:"grants"` // "resource:action" pairs
}

// RBACSeed is the declarative startup state of the role/permission matrix.
type RBACSeed struct {
	Permissions []SeedPermission `yaml:"permissions"`
	Roles       []SeedRole       `yaml:"roles"`
}

// LoadRBACSeed reads the seed matrix from the given YAML file.
func LoadRBACSeed(path string) (*RBACSeed, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read rbac seed file at %s: %w", path, err)
	}

	var seed RBACSeed
	if err := yaml.Unmarshal(bytes, &seed); err != nil {
		return nil, fmt.Errorf("could not parse rbac seed yaml: %w", err)
	}
	return &seed, nil
}
