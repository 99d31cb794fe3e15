// Package config holds the shared name constants and the tsdecl.yaml
// configuration file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Index signature policies for a container that receives a second index signature.
const (
	IndexLastWins = "last-wins"
	IndexError    = "error"
)

// Config represents the top-level tsdecl.yaml configuration.
type Config struct {
	// LogLevel is one of debug, info, warn, error. Empty means info.
	LogLevel string `yaml:"log_level,omitempty"`

	// DuplicateIndex decides what a second index signature on one container does.
	// "last-wins" (default) overwrites; "error" fails the declaration.
	DuplicateIndex string `yaml:"duplicate_index,omitempty"`

	// PatchForwardRefs re-targets references to an Undef placeholder once the
	// real declaration of that name is compiled in the same scope.
	PatchForwardRefs *bool `yaml:"patch_forward_refs,omitempty"`

	// StrictKinds makes conflicting declaration kinds a fatal error during the
	// pre-pass. When false the first kind is kept and a warning is logged.
	StrictKinds *bool `yaml:"strict_kinds,omitempty"`

	// Builtins are extra global names pre-declared as empty interfaces.
	Builtins []string `yaml:"builtins,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{DuplicateIndex: IndexLastWins}
}

// PatchesForwardRefs reports the effective PatchForwardRefs value.
func (c *Config) PatchesForwardRefs() bool {
	return c == nil || c.PatchForwardRefs == nil || *c.PatchForwardRefs
}

// IsStrictKinds reports the effective StrictKinds value.
func (c *Config) IsStrictKinds() bool {
	return c == nil || c.StrictKinds == nil || *c.StrictKinds
}

// IndexPolicy reports the effective DuplicateIndex value.
func (c *Config) IndexPolicy() string {
	if c == nil || c.DuplicateIndex == "" {
		return IndexLastWins
	}
	return c.DuplicateIndex
}

// LoadConfig reads and parses a tsdecl.yaml file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses tsdecl.yaml content from bytes.
// The path argument is used only for error messages.
func ParseConfig(data []byte, path string) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field values that yaml decoding cannot.
func (c *Config) Validate() error {
	switch c.DuplicateIndex {
	case "", IndexLastWins, IndexError:
	default:
		return fmt.Errorf("duplicate_index must be %q or %q, got %q", IndexLastWins, IndexError, c.DuplicateIndex)
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn or error, got %q", c.LogLevel)
	}
	for _, name := range c.Builtins {
		if name == "" {
			return fmt.Errorf("builtins entries must not be empty")
		}
	}
	return nil
}
