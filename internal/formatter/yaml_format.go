package formatter

import (
	"bytes"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAMLFormatOptions control YAML rendering.
type YAMLFormatOptions struct {
	Indent int
	// LiteralBlockStrings emits multi-line strings (long notes) as "|"
	// blocks.
	LiteralBlockStrings bool
}

// formatYAML renders v as YAML.
func formatYAML(v any, opts YAMLFormatOptions) (string, error) {
	var node yaml.Node
	if err := node.Encode(v); err != nil {
		return "", err
	}
	if opts.LiteralBlockStrings {
		walkScalars(&node, func(n *yaml.Node) {
			if n.Tag == "!!str" && strings.Contains(n.Value, "\n") {
				n.Style = yaml.LiteralStyle
			}
		})
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(max(opts.Indent, 2))
	if err := enc.Encode(&node); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func walkScalars(n *yaml.Node, fn func(*yaml.Node)) {
	if n == nil {
		return
	}
	if n.Kind == yaml.ScalarNode {
		fn(n)
	}
	for _, c := range n.Content {
		walkScalars(c, fn)
	}
}
