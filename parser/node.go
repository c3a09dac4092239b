package parser

import (
	"go.yaml.in/yaml/v4"
)

// Pair is one key/value entry of a mapping node.
type Pair struct {
	Key   *yaml.Node
	Value *yaml.Node
}

// Resolve follows alias nodes to the node they point at.
// A nil node or an alias chain that loops back on itself yields nil.
func Resolve(n *yaml.Node) *yaml.Node {
	seen := 0
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
		seen++
		if seen > 64 {
			return nil
		}
	}
	return n
}

// Pairs returns the entries of a mapping node in source order.
// Non-mapping nodes yield nil.
func Pairs(n *yaml.Node) []Pair {
	n = Resolve(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	pairs := make([]Pair, 0, len(n.Content)/2)
	// Content alternates: key, value, key, value...
	for i := 0; i+1 < len(n.Content); i += 2 {
		pairs = append(pairs, Pair{Key: n.Content[i], Value: n.Content[i+1]})
	}
	return pairs
}

// Lookup returns the value node stored under key in mapping n, or nil.
// When a key is repeated the last occurrence wins.
func Lookup(n *yaml.Node, key string) *yaml.Node {
	var found *yaml.Node
	for _, p := range Pairs(n) {
		if k, ok := ScalarValue(p.Key); ok && k == key {
			found = p.Value
		}
	}
	return found
}

// ScalarValue returns the text of a scalar node.
// The boolean is false for nil, non-scalar and null nodes.
func ScalarValue(n *yaml.Node) (string, bool) {
	n = Resolve(n)
	if n == nil || n.Kind != yaml.ScalarNode || n.Tag == "!!null" {
		return "", false
	}
	return n.Value, true
}

// IsMapping reports whether n (after alias resolution) is a mapping node.
func IsMapping(n *yaml.Node) bool {
	n = Resolve(n)
	return n != nil && n.Kind == yaml.MappingNode
}

// NewMapping returns an empty mapping node.
func NewMapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

// NewString returns a string scalar node.
func NewString(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

// AppendPair appends key: value to mapping m.
func AppendPair(m *yaml.Node, key string, value *yaml.Node) {
	m.Content = append(m.Content, NewString(key), value)
}

// AppendNodePair appends a key/value pair reusing an existing key node.
func AppendNodePair(m *yaml.Node, key, value *yaml.Node) {
	m.Content = append(m.Content, key, value)
}
