package decl

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"

	"github.com/julianjensen/inference/internal/config"
)

// Format is the serialization of a declaration file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", errors.Errorf("unsupported declaration file %q (want one of %s)", path, strings.Join(config.DeclFileExtensions, ", "))
}

// Load reads and decodes a declaration file.
func Load(path string) ([]*Declaration, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading declarations")
	}
	defs, err := Decode(data, format)
	if err != nil {
		return nil, errors.Errorf("%s: %w", path, err)
	}
	return defs, nil
}

// Decode accepts one declaration, an array of declarations, or an object
// keyed by declaration name. Keyed input keeps its key order.
func Decode(data []byte, format Format) ([]*Declaration, error) {
	switch format {
	case FormatJSON:
		return decodeJSON(data)
	case FormatYAML:
		return decodeYAML(data)
	}
	return nil, errors.Errorf("unknown format %q", format)
}

func decodeJSON(data []byte) ([]*Declaration, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}
	switch trimmed[0] {
	case '[':
		var defs []*Declaration
		if err := json.Unmarshal(trimmed, &defs); err != nil {
			return nil, errors.Wrap(err, "decoding declaration array")
		}
		return defs, nil
	case '{':
	default:
		return nil, errors.New("declaration input must be an object or an array")
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &probe); err != nil {
		return nil, errors.Wrap(err, "decoding declaration object")
	}
	if isSingle(func(k string) bool { _, ok := probe[k]; return ok }) {
		var d Declaration
		if err := json.Unmarshal(trimmed, &d); err != nil {
			return nil, errors.Wrap(err, "decoding declaration")
		}
		return []*Declaration{&d}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	if _, err := dec.Token(); err != nil {
		return nil, errors.Wrap(err, "decoding keyed declarations")
	}
	var defs []*Declaration
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, errors.Wrap(err, "decoding keyed declarations")
		}
		name, _ := tok.(string)
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, errors.Errorf("declaration %q: %w", name, err)
		}
		d, err := keyedJSON(name, raw)
		if err != nil {
			return nil, errors.Errorf("declaration %q: %w", name, err)
		}
		defs = append(defs, d)
	}
	return defs, nil
}

func keyedJSON(name string, raw json.RawMessage) (*Declaration, error) {
	d := &Declaration{}
	if t := bytes.TrimSpace(raw); len(t) > 0 && t[0] == '[' {
		if err := json.Unmarshal(t, &d.Decls); err != nil {
			return nil, err
		}
	} else if err := json.Unmarshal(raw, d); err != nil {
		return nil, err
	}
	if d.Name == "" {
		d.Name = name
	}
	return d, nil
}

func decodeYAML(data []byte) ([]*Declaration, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "decoding yaml declarations")
	}
	if doc.Kind == 0 {
		return nil, nil
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}

	switch root.Kind {
	case yaml.SequenceNode:
		var defs []*Declaration
		if err := root.Decode(&defs); err != nil {
			return nil, errors.Wrap(err, "decoding declaration list")
		}
		return defs, nil
	case yaml.MappingNode:
	default:
		return nil, errors.New("declaration input must be a mapping or a sequence")
	}

	keys := make(map[string]bool, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		keys[root.Content[i].Value] = true
	}
	if isSingle(func(k string) bool { return keys[k] }) {
		var d Declaration
		if err := root.Decode(&d); err != nil {
			return nil, errors.Wrap(err, "decoding declaration")
		}
		return []*Declaration{&d}, nil
	}

	var defs []*Declaration
	for i := 0; i+1 < len(root.Content); i += 2 {
		name := root.Content[i].Value
		value := root.Content[i+1]
		d := &Declaration{}
		var err error
		if value.Kind == yaml.SequenceNode {
			err = value.Decode(&d.Decls)
		} else {
			err = value.Decode(d)
		}
		if err != nil {
			return nil, errors.Errorf("declaration %q: %w", name, err)
		}
		if d.Name == "" {
			d.Name = name
		}
		defs = append(defs, d)
	}
	return defs, nil
}

// isSingle decides whether a top-level object is one declaration rather than
// a name-keyed collection.
func isSingle(has func(string) bool) bool {
	return has("decls") || (has("name") && (has("kind") || has("flags")))
}
