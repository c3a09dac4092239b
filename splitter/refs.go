package splitter

import (
	"cmp"
	"regexp"
	"slices"

	"github.com/erraggy/oasplit/parser"
	"go.yaml.in/yaml/v4"
)

const kindSchemas = "schemas"

// allComponentKinds lists every components section that holds referenceable
// definitions, in the order they are written. securitySchemes is handled
// separately and is never part of the closure.
var allComponentKinds = []string{
	kindSchemas,
	"responses",
	"parameters",
	"examples",
	"requestBodies",
	"headers",
	"links",
	"callbacks",
	"pathItems",
}

// componentRefPattern matches local component references. Only the prefix
// must match, so "#/components/schemas/Pet/properties/id" yields Pet.
var componentRefPattern = regexp.MustCompile(`^#/components/([A-Za-z]+)/([\p{L}\p{N}_]+)`)

// ComponentRef names one entry of a components section.
type ComponentRef struct {
	Kind string
	Name string
}

// String returns the reference in $ref form.
func (r ComponentRef) String() string {
	return "#/components/" + r.Kind + "/" + r.Name
}

func compareRefs(a, b ComponentRef) int {
	return cmp.Or(cmp.Compare(a.Kind, b.Kind), cmp.Compare(a.Name, b.Name))
}

// ParseComponentRef extracts the section and name from a local component
// reference such as "#/components/responses/NotFound".
func ParseComponentRef(ref string) (ComponentRef, bool) {
	m := componentRefPattern.FindStringSubmatch(ref)
	if m == nil {
		return ComponentRef{}, false
	}
	return ComponentRef{Kind: m[1], Name: m[2]}, true
}

// SchemaRefName returns the schema name of a "#/components/schemas/<Name>"
// reference. Names are made of letters, digits and underscores; anything
// after them is ignored.
func SchemaRefName(ref string) (string, bool) {
	r, ok := ParseComponentRef(ref)
	if !ok || r.Kind != kindSchemas {
		return "", false
	}
	return r.Name, true
}

// CollectSchemaRefs returns the names of all schemas referenced anywhere
// under n. The walk follows aliases and visits each node once.
func CollectSchemaRefs(n *yaml.Node) map[string]struct{} {
	names := make(map[string]struct{})
	for r := range collectRefs(n, kindSet([]string{kindSchemas})) {
		names[r.Name] = struct{}{}
	}
	return names
}

func kindSet(kinds []string) map[string]bool {
	set := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		set[k] = true
	}
	return set
}

// collectRefs gathers the component references under n whose section is in kinds.
func collectRefs(n *yaml.Node, kinds map[string]bool) map[ComponentRef]struct{} {
	c := &refCollector{
		kinds:   kinds,
		refs:    make(map[ComponentRef]struct{}),
		visited: make(map[*yaml.Node]bool),
	}
	c.walk(n)
	return c.refs
}

type refCollector struct {
	kinds   map[string]bool
	refs    map[ComponentRef]struct{}
	visited map[*yaml.Node]bool
}

func (c *refCollector) walk(n *yaml.Node) {
	if n == nil || c.visited[n] {
		return
	}
	c.visited[n] = true

	switch n.Kind {
	case yaml.DocumentNode, yaml.SequenceNode:
		for _, child := range n.Content {
			c.walk(child)
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, value := n.Content[i], n.Content[i+1]
			if k, ok := parser.ScalarValue(key); ok && k == "$ref" {
				c.record(value)
			}
			c.walk(value)
		}
	case yaml.AliasNode:
		c.walk(n.Alias)
	}
}

func (c *refCollector) record(value *yaml.Node) {
	ref, ok := parser.ScalarValue(value)
	if !ok {
		return
	}
	r, ok := ParseComponentRef(ref)
	if ok && c.kinds[r.Kind] {
		c.refs[r] = struct{}{}
	}
}

// sortedRefs returns the keys of set ordered by section, then name.
func sortedRefs(set map[ComponentRef]struct{}) []ComponentRef {
	out := make([]ComponentRef, 0, len(set))
	for r := range set {
		out = append(out, r)
	}
	slices.SortFunc(out, compareRefs)
	return out
}
