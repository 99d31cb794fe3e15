// Package ext produces declaration records from sources other than
// declaration files: Go packages (via go/packages and go/types) and protobuf
// schemas (via protoparse).
//
// The ext package handles:
//   - Parsing and validating tsdecl-ext.yaml configuration
//   - Introspecting Go packages into interface and function declarations
//   - Introspecting .proto files into message and service interfaces
package ext

import (
	"os"
	"path/filepath"

	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"

	"github.com/julianjensen/inference/internal/decl"
)

// ConfigFileName is the file FindConfig looks for.
const ConfigFileName = "tsdecl-ext.yaml"

// Config represents the top-level tsdecl-ext.yaml configuration.
type Config struct {
	// Sources lists what to inspect, in output order.
	Sources []Source `yaml:"sources"`
}

// Source is one Go package pattern or one set of .proto files.
type Source struct {
	// Go is a go/packages pattern (e.g. "./internal/api" or "net/http").
	// Mutually exclusive with Proto.
	Go string `yaml:"go,omitempty"`

	// Dir is the directory the Go pattern is resolved from (relative to the
	// config file). Defaults to the config file's directory.
	Dir string `yaml:"dir,omitempty"`

	// Proto lists .proto files, relative to one of ImportPaths.
	Proto []string `yaml:"proto,omitempty"`

	// ImportPaths are the proto include directories (relative to the config
	// file). Defaults to the config file's directory.
	ImportPaths []string `yaml:"import_paths,omitempty"`

	// Only is an optional whitelist of declaration names to keep.
	Only []string `yaml:"only,omitempty"`

	// Exclude is an optional blacklist of declaration names to drop.
	Exclude []string `yaml:"exclude,omitempty"`
}

// LoadConfig reads and parses a tsdecl-ext.yaml file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses tsdecl-ext.yaml content from bytes. Relative paths are
// resolved against the directory of path.
func ParseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	cfg.setDefaults(filepath.Dir(path))
	return &cfg, nil
}

// FindConfig searches for tsdecl-ext.yaml starting from dir and walking up
// to parent directories. It returns "" and a nil error when there is none.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Errorf("resolving directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func (c *Config) validate(path string) error {
	if len(c.Sources) == 0 {
		return errors.Errorf("%s: no sources defined", path)
	}
	for i, src := range c.Sources {
		switch {
		case src.Go != "" && len(src.Proto) > 0:
			return errors.Errorf("%s: sources[%d]: go and proto are mutually exclusive", path, i)
		case src.Go == "" && len(src.Proto) == 0:
			return errors.Errorf("%s: sources[%d]: either go or proto is required", path, i)
		case len(src.Only) > 0 && len(src.Exclude) > 0:
			return errors.Errorf("%s: sources[%d]: only and exclude are mutually exclusive", path, i)
		case src.Go != "" && len(src.ImportPaths) > 0:
			return errors.Errorf("%s: sources[%d] (%s): import_paths is only valid with proto", path, i, src.Go)
		}
	}
	return nil
}

// setDefaults anchors relative directories at configDir.
func (c *Config) setDefaults(configDir string) {
	for i := range c.Sources {
		src := &c.Sources[i]
		if src.Go != "" {
			src.Dir = anchor(configDir, src.Dir)
			continue
		}
		if len(src.ImportPaths) == 0 {
			src.ImportPaths = []string{configDir}
			continue
		}
		for j, p := range src.ImportPaths {
			src.ImportPaths[j] = anchor(configDir, p)
		}
	}
}

func anchor(base, p string) string {
	if p == "" {
		return base
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// Keep reports whether the declaration called name passes the source's
// only/exclude filters.
func (s *Source) Keep(name string) bool {
	if len(s.Only) > 0 {
		for _, n := range s.Only {
			if n == name {
				return true
			}
		}
		return false
	}
	for _, n := range s.Exclude {
		if n == name {
			return false
		}
	}
	return true
}

// Inspect runs every source of cfg in order and concatenates the
// declarations that pass each source's filters.
func Inspect(cfg *Config) ([]*decl.Declaration, error) {
	var out []*decl.Declaration
	for i := range cfg.Sources {
		src := &cfg.Sources[i]
		var defs []*decl.Declaration
		if src.Go != "" {
			pkgs, err := LoadGoPackages(src.Dir, src.Go)
			if err != nil {
				return nil, errors.Errorf("source %s: %w", src.Go, err)
			}
			for _, pkg := range pkgs {
				d, err := InspectGoPackage(pkg.Types)
				if err != nil {
					return nil, errors.Errorf("source %s: %w", src.Go, err)
				}
				defs = append(defs, d...)
			}
		} else {
			fds, err := ParseProtoFiles(src.ImportPaths, src.Proto...)
			if err != nil {
				return nil, err
			}
			if defs, err = InspectProto(fds...); err != nil {
				return nil, err
			}
		}
		for _, d := range defs {
			if src.Keep(d.Name) {
				out = append(out, d)
			}
		}
	}
	return out, nil
}
