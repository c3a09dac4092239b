package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/erraggy/oasplit/oaserrors"
	"go.yaml.in/yaml/v4"
)

// outputIndent is the indentation width used for both YAML and JSON output.
const outputIndent = 2

// Clone returns a deep copy of n suitable for serialization.
//
// Aliases are replaced by copies of their anchored nodes, anchors and
// comments are dropped, and flow and quoting styles are cleared so the
// encoder chooses block style and only quotes where the value requires it.
// Literal and folded scalars keep their style. An alias that contains itself
// returns a *oaserrors.ReferenceError with IsCircular set.
func Clone(n *yaml.Node) (*yaml.Node, error) {
	return cloneNode(n, make(map[*yaml.Node]bool))
}

func cloneNode(n *yaml.Node, active map[*yaml.Node]bool) (*yaml.Node, error) {
	if n == nil {
		return nil, nil
	}
	if n.Kind == yaml.AliasNode {
		if n.Alias == nil {
			return nil, &oaserrors.ReferenceError{Ref: "*" + n.Value, Message: "alias has no anchor"}
		}
		n = n.Alias
	}
	if active[n] {
		return nil, &oaserrors.ReferenceError{Ref: "&" + n.Anchor, IsCircular: true, Message: "anchored node contains itself"}
	}
	active[n] = true
	defer delete(active, n)

	out := &yaml.Node{
		Kind:  n.Kind,
		Tag:   n.Tag,
		Value: n.Value,
		Style: n.Style &^ (yaml.FlowStyle | yaml.DoubleQuotedStyle | yaml.SingleQuotedStyle | yaml.TaggedStyle),
	}
	if len(n.Content) > 0 {
		out.Content = make([]*yaml.Node, 0, len(n.Content))
		for _, child := range n.Content {
			c, err := cloneNode(child, active)
			if err != nil {
				return nil, err
			}
			out.Content = append(out.Content, c)
		}
	}
	return out, nil
}

// MarshalYAML renders n as block-style YAML with 2-space indentation,
// keeping mapping keys in node order. Non-ASCII text is written literally.
func MarshalYAML(n *yaml.Node) ([]byte, error) {
	c, err := Clone(n)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(outputIndent)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("parser: failed to marshal YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("parser: failed to marshal YAML: %w", err)
	}
	return buf.Bytes(), nil
}

// MarshalJSON renders n as indented JSON, keeping mapping keys in node order.
// JSON has no infinity or NaN, so .inf, -.inf and .nan scalars are written as
// strings holding their YAML text.
func MarshalJSON(n *yaml.Node) ([]byte, error) {
	c, err := Clone(n)
	if err != nil {
		return nil, err
	}

	var compact bytes.Buffer
	if err := marshalNodeAsJSON(&compact, c); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
		return nil, fmt.Errorf("parser: failed to indent JSON: %w", err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// marshalNodeAsJSON writes an alias-free node tree to buf as compact JSON.
func marshalNodeAsJSON(buf *bytes.Buffer, n *yaml.Node) error {
	if n == nil {
		buf.WriteString("null")
		return nil
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			buf.WriteString("null")
			return nil
		}
		return marshalNodeAsJSON(buf, n.Content[0])

	case yaml.MappingNode:
		buf.WriteByte('{')
		for i, p := range Pairs(n) {
			if i > 0 {
				buf.WriteByte(',')
			}
			if p.Key.Kind != yaml.ScalarNode {
				return fmt.Errorf("parser: JSON output requires scalar mapping keys (line %d)", p.Key.Line)
			}
			if err := writeJSON(buf, p.Key.Value); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := marshalNodeAsJSON(buf, p.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil

	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, child := range n.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := marshalNodeAsJSON(buf, child); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil

	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return fmt.Errorf("parser: failed to decode scalar at line %d: %w", n.Line, err)
		}
		if f, ok := v.(float64); ok && (math.IsInf(f, 0) || math.IsNaN(f)) {
			return writeJSON(buf, n.Value)
		}
		return writeJSON(buf, v)

	default:
		return fmt.Errorf("parser: unexpected node kind %v in JSON output", n.Kind)
	}
}

// writeJSON encodes a single value without HTML escaping so non-ASCII and
// markup characters stay literal.
func writeJSON(buf *bytes.Buffer, v any) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("parser: failed to marshal JSON value: %w", err)
	}
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}
