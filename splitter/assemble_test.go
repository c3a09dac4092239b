package splitter

import (
	"testing"

	"github.com/erraggy/oasplit/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssemble(t *testing.T) {
	src, err := parser.New().ParseBytes([]byte(`openapi: 3.0.2
info:
  title: Zoo
  version: 7
components:
  schemas:
    Zebra: {type: object}
    Ant: {type: object}
    Unused: {type: string}
paths:
  /zebras:
    get:
      tags: [Animals]
`))
	require.NoError(t, err)

	categories, _ := Classify(src.Paths())
	require.Len(t, categories, 1)
	c := categories[0]
	c.Schemas = []string{"Ant", "Zebra"}

	doc := Assemble(src, c, DefaultConfig())
	assert.Equal(t, []string{"openapi", "info", "paths", "components"}, keysOf(doc))
	assert.Equal(t, "3.0.2", scalar(t, doc, "openapi"))
	assert.Equal(t, "Zoo - Animals", scalar(t, doc, "info", "title"))
	assert.Equal(t, "7", scalar(t, doc, "info", "version"))
	assert.Same(t, c.Paths, parser.Lookup(doc, "paths"))

	schemas := parser.Lookup(parser.Lookup(doc, "components"), "schemas")
	assert.Equal(t, []string{"Ant", "Zebra"}, keysOf(schemas))
	assert.Same(t, parser.SchemaMap(src.Root)["Ant"], parser.Lookup(schemas, "Ant"))
}

func TestAssemble_NoSchemas(t *testing.T) {
	src, err := parser.New().ParseBytes([]byte("openapi: null\ninfo: {title: \"\"}\npaths:\n  /a:\n    get: {tags: [A]}\n"))
	require.NoError(t, err)

	categories, _ := Classify(src.Paths())
	cfg := DefaultConfig()
	cfg.DefaultOpenAPIVersion = "3.0.0"

	doc := Assemble(src, categories[0], cfg)
	assert.Equal(t, []string{"openapi", "info", "paths"}, keysOf(doc))
	assert.Equal(t, "3.0.0", scalar(t, doc, "openapi"))
	assert.Equal(t, "API - A", scalar(t, doc, "info", "title"), "empty source title falls back")
}

func TestAssemble_SecuritySchemesStatic(t *testing.T) {
	src := loadFixture(t, "mixed.yaml")
	categories, _ := Classify(src.Paths())
	c := categories[0]
	c.Schemas = []string{"Foo"}

	doc := Assemble(src, c, DefaultConfig())
	schemes := parser.Lookup(parser.Lookup(doc, "components"), "securitySchemes")
	assert.Equal(t, []string{"BasicAuth"}, keysOf(schemes), "source schemes are ignored in basic mode")
}
