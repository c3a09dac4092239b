package splitter

import (
	"testing"

	"github.com/erraggy/oasplit/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"
)

func mustNode(t *testing.T, src string) *yaml.Node {
	t.Helper()
	res, err := parser.New().ParseBytes([]byte(src))
	require.NoError(t, err)
	return res.Root
}

func TestSchemaRefName(t *testing.T) {
	tests := []struct {
		ref    string
		want   string
		wantOK bool
	}{
		{ref: "#/components/schemas/User", want: "User", wantOK: true},
		{ref: "#/components/schemas/User_v2", want: "User_v2", wantOK: true},
		{ref: "#/components/schemas/Pet/properties/id", want: "Pet", wantOK: true},
		{ref: "#/components/schemas/Größe", want: "Größe", wantOK: true},
		{ref: "#/components/schemas/my-schema", want: "my", wantOK: true},
		{ref: "#/components/schemas/", wantOK: false},
		{ref: "#/components/responses/NotFound", wantOK: false},
		{ref: "other.yaml#/components/schemas/User", wantOK: false},
		{ref: " #/components/schemas/User", wantOK: false},
		{ref: "#/definitions/User", wantOK: false},
		{ref: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, ok := SchemaRefName(tt.ref)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseComponentRef(t *testing.T) {
	r, ok := ParseComponentRef("#/components/responses/NotFound")
	require.True(t, ok)
	assert.Equal(t, ComponentRef{Kind: "responses", Name: "NotFound"}, r)
	assert.Equal(t, "#/components/responses/NotFound", r.String())

	_, ok = ParseComponentRef("#/paths/~1users")
	assert.False(t, ok)
}

func TestCollectSchemaRefs(t *testing.T) {
	n := mustNode(t, `
a:
  $ref: "#/components/schemas/A"
list:
  - $ref: "#/components/schemas/B"
  - nested:
      deeper:
        allOf:
          - $ref: "#/components/schemas/C/properties/x"
ignored:
  $ref: "#/components/responses/R"
external:
  $ref: "other.yaml#/components/schemas/D"
notAString:
  $ref: {x: "#/components/schemas/E"}
nullRef:
  $ref: null
"#/components/schemas/F": key text is never a reference
description: "#/components/schemas/G"
`)

	refs := CollectSchemaRefs(n)
	assert.Equal(t, map[string]struct{}{"A": {}, "B": {}, "C": {}}, refs)
}

func TestCollectSchemaRefs_Aliases(t *testing.T) {
	n := mustNode(t, `
shared: &s
  $ref: "#/components/schemas/Shared"
one: *s
two: *s
`)
	assert.Equal(t, map[string]struct{}{"Shared": {}}, CollectSchemaRefs(n))
}

func TestCollectSchemaRefs_SelfContainingAlias(t *testing.T) {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Anchor: "loop"}
	ref := mustNode(t, `$ref: "#/components/schemas/Loop"`)
	seq.Content = []*yaml.Node{ref, {Kind: yaml.AliasNode, Value: "loop", Alias: seq}}

	assert.Equal(t, map[string]struct{}{"Loop": {}}, CollectSchemaRefs(seq))
}

func TestCollectSchemaRefs_Empty(t *testing.T) {
	assert.Empty(t, CollectSchemaRefs(nil))
	assert.Empty(t, CollectSchemaRefs(mustNode(t, "a: b\n")))
}

func TestCollectRefs_Kinds(t *testing.T) {
	n := mustNode(t, `
refs:
  - $ref: "#/components/schemas/A"
  - $ref: "#/components/parameters/P"
  - $ref: "#/components/headers/H"
`)
	got := collectRefs(parser.Lookup(n, "refs"), kindSet([]string{kindSchemas, "parameters"}))
	assert.Equal(t, []ComponentRef{
		{Kind: "parameters", Name: "P"},
		{Kind: "schemas", Name: "A"},
	}, sortedRefs(got))
}
