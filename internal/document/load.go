package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads and parses one workflow document. Files ending in .yaml/.yml are
// decoded as YAML; everything else is treated as JSON. The returned tree uses
// *Object for mappings, []interface{} for sequences and scalars otherwise.
func Load(path string) (interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, path)
}

// Parse decodes raw document bytes. The name is only used to pick the
// YAML decoder for .yaml/.yml inputs and to label parse errors.
func Parse(data []byte, name string) (interface{}, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		value, err := parseYAML(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return value, nil
	default:
		value, err := DecodeJSON(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return value, nil
	}
}

// Encode writes the document as 2-space indented JSON with a trailing
// newline. HTML-significant and non-ASCII characters are preserved.
func Encode(w io.Writer, doc interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// Write serializes the document to path, creating or truncating the file.
func Write(doc interface{}, path string) error {
	var buf bytes.Buffer
	if err := Encode(&buf, doc); err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

func parseYAML(data []byte) (interface{}, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return nil, nil
	}
	return yamlValue(root.Content[0])
}

// yamlValue converts a yaml.Node into the same tree shape DecodeJSON
// produces, keeping mapping order and rendering numbers as json.Number.
func yamlValue(node *yaml.Node) (interface{}, error) {
	switch node.Kind {
	case yaml.MappingNode:
		obj := NewObject()
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode := node.Content[i]
			if keyNode.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping key is not a scalar", keyNode.Line)
			}
			value, err := yamlValue(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj.Set(keyNode.Value, value)
		}
		return obj, nil
	case yaml.SequenceNode:
		arr := make([]interface{}, 0, len(node.Content))
		for _, child := range node.Content {
			value, err := yamlValue(child)
			if err != nil {
				return nil, err
			}
			arr = append(arr, value)
		}
		return arr, nil
	case yaml.ScalarNode:
		return yamlScalar(node)
	case yaml.AliasNode:
		return yamlValue(node.Alias)
	default:
		return nil, fmt.Errorf("line %d: unsupported node kind %d", node.Line, node.Kind)
	}
}

func yamlScalar(node *yaml.Node) (interface{}, error) {
	switch node.Tag {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return nil, err
		}
		return b, nil
	case "!!int", "!!float":
		return json.Number(node.Value), nil
	default:
		return node.Value, nil
	}
}
