package splitter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.yaml.in/yaml/v4"
)

func set(names ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

func schemaDefs(t *testing.T, src string) map[string]*yaml.Node {
	t.Helper()
	defs := indexComponents(mustNode(t, src), []string{kindSchemas})
	out := make(map[string]*yaml.Node, len(defs))
	for r, n := range defs {
		out[r.Name] = n
	}
	return out
}

const closureSchemas = `
schemas:
  User:
    properties:
      address: {$ref: "#/components/schemas/Address"}
      manager: {$ref: "#/components/schemas/User"}
  Address:
    properties:
      country: {$ref: "#/components/schemas/Country"}
  Country:
    type: string
  Foo:
    properties:
      bar: {$ref: "#/components/schemas/Bar"}
  A:
    $ref: "#/components/schemas/B"
  B:
    $ref: "#/components/schemas/A"
  Lonely:
    type: string
`

func TestResolveSchemaClosure(t *testing.T) {
	defs := schemaDefs(t, closureSchemas)

	tests := []struct {
		name string
		seed map[string]struct{}
		want []string
	}{
		{name: "transitive", seed: set("User"), want: []string{"Address", "Country", "User"}},
		{name: "leaf", seed: set("Country"), want: []string{"Country"}},
		{name: "dangling target dropped", seed: set("Foo"), want: []string{"Foo"}},
		{name: "dangling seed dropped", seed: set("Bar", "Lonely"), want: []string{"Lonely"}},
		{name: "cycle", seed: set("A"), want: []string{"A", "B"}},
		{name: "empty seed", seed: set(), want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveSchemaClosure(defs, tt.seed))
		})
	}
}

func TestComponentGraph_Dangling(t *testing.T) {
	defs := indexComponents(mustNode(t, closureSchemas), []string{kindSchemas})
	g := newComponentGraph(defs, kindSet([]string{kindSchemas}))

	resolved, dangling := g.closure(map[ComponentRef]struct{}{
		{Kind: kindSchemas, Name: "Foo"}:     {},
		{Kind: kindSchemas, Name: "Missing"}: {},
	})
	assert.Equal(t, []ComponentRef{{Kind: kindSchemas, Name: "Foo"}}, resolved)
	assert.Equal(t, []ComponentRef{
		{Kind: kindSchemas, Name: "Bar"},
		{Kind: kindSchemas, Name: "Missing"},
	}, dangling)
}

func TestComponentGraph_AcrossKinds(t *testing.T) {
	root := mustNode(t, `
responses:
  Listing:
    content:
      application/json:
        schema: {$ref: "#/components/schemas/Item"}
    headers:
      X-Rate: {$ref: "#/components/headers/Rate"}
headers:
  Rate:
    schema: {$ref: "#/components/schemas/Limit"}
schemas:
  Item: {type: object}
  Limit: {type: integer}
`)
	kinds := []string{kindSchemas, "responses", "headers"}
	g := newComponentGraph(indexComponents(root, kinds), kindSet(kinds))

	resolved, dangling := g.closure(map[ComponentRef]struct{}{{Kind: "responses", Name: "Listing"}: {}})
	assert.Empty(t, dangling)
	assert.Equal(t, []ComponentRef{
		{Kind: "headers", Name: "Rate"},
		{Kind: "responses", Name: "Listing"},
		{Kind: kindSchemas, Name: "Item"},
		{Kind: kindSchemas, Name: "Limit"},
	}, resolved)
}

func TestIndexComponents_LastDuplicateWins(t *testing.T) {
	defs := indexComponents(mustNode(t, "schemas:\n  A: {type: string}\n  A: {type: integer}\n"), []string{kindSchemas})
	v := defs[ComponentRef{Kind: kindSchemas, Name: "A"}]
	assert.Equal(t, "integer", v.Content[1].Value)
}
