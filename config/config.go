// Package config loads configuration files into ordered swalk documents and
// resolves dotted-path lookups through the swalk toolkit. Its surface is
// deliberately narrow: given a file path, return a parsed configuration
// mapping, then read or write values by path.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-json-experiment/json"
	"gopkg.in/yaml.v3"

	"github.com/averhof/swalk"
)

// Config is a loaded configuration mapping. Key order matches the source
// file.
type Config struct {
	root swalk.Document
	sep  string
}

// Load reads a YAML file and returns its top-level mapping. The file's key
// order is preserved; a file whose root is not a mapping is an error. An
// empty file yields an empty configuration.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML bytes into a configuration. See Load.
func Parse(data []byte) (*Config, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}
	root := &node
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return &Config{root: swalk.Document{}, sep: swalk.DefaultSeparator}, nil
		}
		root = root.Content[0]
	}
	if root.Kind == 0 { // empty input
		return &Config{root: swalk.Document{}, sep: swalk.DefaultSeparator}, nil
	}
	v, err := fromYAMLNode(root)
	if err != nil {
		return nil, err
	}
	doc, ok := v.(swalk.Document)
	if !ok {
		return nil, fmt.Errorf("config: root must be a mapping, got %T", v)
	}
	return &Config{root: doc, sep: swalk.DefaultSeparator}, nil
}

// LoadJSON reads a JSON file and returns its top-level object, decoding
// through swalk's unmarshalers so key order survives.
func LoadJSON(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	var doc swalk.Document
	if err := json.Unmarshal(data, &doc, json.WithUnmarshalers(swalk.Unmarshalers())); err != nil {
		return nil, fmt.Errorf("config: parse json: %w", err)
	}
	return &Config{root: doc, sep: swalk.DefaultSeparator}, nil
}

// fromYAMLNode converts a yaml.Node tree into swalk's value model, keeping
// mapping key order (plain yaml.Unmarshal into map[string]any would lose it).
func fromYAMLNode(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.MappingNode:
		doc := swalk.Document{}
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			val, err := fromYAMLNode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			doc = append(doc, swalk.Entry{Key: key, Value: val})
		}
		return doc, nil
	case yaml.SequenceNode:
		arr := swalk.Array{}
		for _, c := range n.Content {
			val, err := fromYAMLNode(c)
			if err != nil {
				return nil, err
			}
			arr = append(arr, val)
		}
		return arr, nil
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("config: decode scalar at line %d: %w", n.Line, err)
		}
		return v, nil
	case yaml.AliasNode:
		return fromYAMLNode(n.Alias)
	}
	return nil, fmt.Errorf("config: unsupported yaml node kind %d at line %d", n.Kind, n.Line)
}

// Document returns the underlying ordered mapping.
func (c *Config) Document() swalk.Document {
	return c.root
}

// Get resolves a dotted path ("server.ports.0" style) against the
// configuration. The second result is false when the path does not resolve.
func (c *Config) Get(key string) (any, bool) {
	return swalk.Get(c.root, swalk.Path(strings.Split(key, c.sep)))
}

// Set writes newValue at the dotted path, following swalk.Set's rules
// (including its silent no-op on a kind mismatch).
func (c *Config) Set(key string, newValue any) {
	out := swalk.Set(c.root, swalk.Path(strings.Split(key, c.sep)), newValue)
	if doc, ok := out.(swalk.Document); ok {
		c.root = doc
	}
}

// Flatten returns the configuration as a single-level document keyed by
// dotted paths, handy for diffing and logging.
func (c *Config) Flatten() swalk.Document {
	return swalk.Flatten(c.root)
}
