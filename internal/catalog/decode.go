package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a catalog document encoding.
type Format string

const (
	FormatAuto Format = ""
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath guesses a format from a file name or URL path.
func FormatFromPath(path string) Format {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	}
	return FormatAuto
}

// tomlTableHeader matches [items] and [[items]] style headers; a JSON array
// like [1, 2] or [{"grd": ...}] never does.
var tomlTableHeader = regexp.MustCompile(`^\s*\[{1,2}[A-Za-z_][A-Za-z0-9_.-]*\]{1,2}\s*$`)

var tomlKeyValue = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.-]*\s*=\s*\S`)

// Sniff guesses the format of a document from its content.
func Sniff(data []byte) Format {
	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if tomlTableHeader.MatchString(trimmed) || tomlKeyValue.MatchString(trimmed) {
			return FormatTOML
		}
		if strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "{") {
			return FormatJSON
		}
		return FormatYAML
	}
	return FormatJSON
}

// document is the keyed form accepted by every format: {items: [...]}.
type document struct {
	Items []Item `json:"items" yaml:"items" toml:"items"`
}

// Decode parses data in the given format into items and validates them.
func Decode(data []byte, format Format) ([]Item, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("empty catalog document")
	}
	if format == FormatAuto {
		format = Sniff(data)
	}

	var items []Item
	var err error
	switch format {
	case FormatJSON:
		items, err = decodeJSON(data)
	case FormatYAML:
		items, err = decodeYAML(data)
	case FormatTOML:
		var doc document
		if err = toml.Unmarshal(data, &doc); err != nil {
			err = fmt.Errorf("invalid TOML: %w", err)
		}
		items = doc.Items
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", format)
	}
	if err != nil {
		return nil, err
	}

	for i, it := range items {
		if err := it.validate(i); err != nil {
			return nil, err
		}
	}
	return items, nil
}

func decodeJSON(data []byte) ([]Item, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var doc document
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
		return doc.Items, nil
	}
	var items []Item
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return items, nil
}

func decodeYAML(data []byte) ([]Item, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	if len(node.Content) == 0 {
		return nil, fmt.Errorf("invalid YAML: empty document")
	}
	root := node.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		var items []Item
		if err := root.Decode(&items); err != nil {
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
		return items, nil
	case yaml.MappingNode:
		var doc document
		if err := root.Decode(&doc); err != nil {
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
		return doc.Items, nil
	default:
		return nil, fmt.Errorf("invalid YAML: expected a list of items or an items: key")
	}
}
