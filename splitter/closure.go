package splitter

import (
	"github.com/erraggy/oasplit/parser"
	"go.yaml.in/yaml/v4"
)

// componentGraph holds the definitions of a document and, for each one, the
// definitions it references directly. It is built once per run and only read
// afterwards, so categories can share it.
type componentGraph struct {
	defs  map[ComponentRef]*yaml.Node
	edges map[ComponentRef][]ComponentRef
}

// indexComponents maps every definition in the given components sections to
// its node. A repeated name keeps the last definition.
func indexComponents(components *yaml.Node, kinds []string) map[ComponentRef]*yaml.Node {
	defs := make(map[ComponentRef]*yaml.Node)
	for _, kind := range kinds {
		for _, p := range parser.Pairs(parser.Lookup(components, kind)) {
			if name, ok := parser.ScalarValue(p.Key); ok {
				defs[ComponentRef{Kind: kind, Name: name}] = p.Value
			}
		}
	}
	return defs
}

func newComponentGraph(defs map[ComponentRef]*yaml.Node, kinds map[string]bool) *componentGraph {
	g := &componentGraph{
		defs:  defs,
		edges: make(map[ComponentRef][]ComponentRef, len(defs)),
	}
	for ref, def := range defs {
		g.edges[ref] = sortedRefs(collectRefs(def, kinds))
	}
	return g
}

// closure returns every definition reachable from seed, and the seed or
// reachable references that have no definition. Both are sorted.
func (g *componentGraph) closure(seed map[ComponentRef]struct{}) (resolved, dangling []ComponentRef) {
	done := make(map[ComponentRef]struct{}, len(seed))
	missing := make(map[ComponentRef]struct{})
	pending := sortedRefs(seed)

	for len(pending) > 0 {
		ref := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		if _, ok := done[ref]; ok {
			continue
		}
		if _, ok := g.defs[ref]; !ok {
			missing[ref] = struct{}{}
			continue
		}
		done[ref] = struct{}{}

		for _, next := range g.edges[ref] {
			if _, ok := done[next]; !ok {
				pending = append(pending, next)
			}
		}
	}
	return sortedRefs(done), sortedRefs(missing)
}

// ResolveSchemaClosure returns the sorted names of every schema in defs that
// is reachable from seed through $ref links. Seed names without a definition
// are dropped, along with anything only they would have pulled in.
func ResolveSchemaClosure(defs map[string]*yaml.Node, seed map[string]struct{}) []string {
	refs := make(map[ComponentRef]*yaml.Node, len(defs))
	for name, def := range defs {
		refs[ComponentRef{Kind: kindSchemas, Name: name}] = def
	}
	start := make(map[ComponentRef]struct{}, len(seed))
	for name := range seed {
		start[ComponentRef{Kind: kindSchemas, Name: name}] = struct{}{}
	}

	g := newComponentGraph(refs, map[string]bool{kindSchemas: true})
	resolved, _ := g.closure(start)

	names := make([]string, len(resolved))
	for i, r := range resolved {
		names[i] = r.Name
	}
	return names
}
