// Package testutil provides document builders and fixtures for unit tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasplit/parser"
)

// DocBuilder assembles a small OpenAPI 3.0 document node by node.
// Paths and schemas keep the order they were added in.
type DocBuilder struct {
	root      *yaml.Node
	paths     *yaml.Node
	schemas   *yaml.Node
	pathItems map[string]*yaml.Node
}

// NewDocument starts a document with the given info.title and info.version.
func NewDocument(title, version string) *DocBuilder {
	root := parser.NewMapping()
	parser.AppendPair(root, parser.KeyOpenAPI, parser.NewString("3.0.3"))

	info := parser.NewMapping()
	parser.AppendPair(info, parser.KeyTitle, parser.NewString(title))
	parser.AppendPair(info, parser.KeyVersion, parser.NewString(version))
	parser.AppendPair(root, parser.KeyInfo, info)

	paths := parser.NewMapping()
	parser.AppendPair(root, parser.KeyPaths, paths)

	schemas := parser.NewMapping()
	components := parser.NewMapping()
	parser.AppendPair(components, parser.KeySchemas, schemas)
	parser.AppendPair(root, parser.KeyComponents, components)

	return &DocBuilder{
		root:      root,
		paths:     paths,
		schemas:   schemas,
		pathItems: make(map[string]*yaml.Node),
	}
}

// AddOperation adds an operation with the given tags whose 200 response
// references each named schema. A nil tags slice leaves the operation
// untagged.
func (b *DocBuilder) AddOperation(path, method string, tags []string, schemaRefs ...string) *DocBuilder {
	item := b.pathItems[path]
	if item == nil {
		item = parser.NewMapping()
		b.pathItems[path] = item
		parser.AppendPair(b.paths, path, item)
	}

	op := parser.NewMapping()
	if tags != nil {
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, t := range tags {
			seq.Content = append(seq.Content, parser.NewString(t))
		}
		parser.AppendPair(op, "tags", seq)
	}

	response := parser.NewMapping()
	parser.AppendPair(response, "description", parser.NewString("OK"))
	if len(schemaRefs) > 0 {
		parser.AppendPair(response, "content", jsonContent(refList(schemaRefs)))
	}
	responses := parser.NewMapping()
	parser.AppendPair(responses, "200", response)
	parser.AppendPair(op, "responses", responses)

	parser.AppendPair(item, method, op)
	return b
}

// AddSchema adds an object schema with one property per referenced schema.
func (b *DocBuilder) AddSchema(name string, refs ...string) *DocBuilder {
	schema := parser.NewMapping()
	parser.AppendPair(schema, "type", parser.NewString("object"))
	if len(refs) > 0 {
		props := parser.NewMapping()
		for i, ref := range refs {
			parser.AppendPair(props, fmt.Sprintf("p%d", i), schemaRef(ref))
		}
		parser.AppendPair(schema, "properties", props)
	}
	parser.AppendPair(b.schemas, name, schema)
	return b
}

// Node returns the document's root mapping node.
func (b *DocBuilder) Node() *yaml.Node {
	return b.root
}

// YAML serializes the document.
func (b *DocBuilder) YAML(t *testing.T) []byte {
	t.Helper()
	data, err := parser.MarshalYAML(b.root)
	require.NoError(t, err)
	return data
}

// Parse serializes and re-reads the document, as a loader would see it.
func (b *DocBuilder) Parse(t *testing.T) *parser.ParseResult {
	t.Helper()
	res, err := parser.New().ParseBytes(b.YAML(t))
	require.NoError(t, err)
	return res
}

// WriteTemp writes the document to a file in a fresh temporary directory
// and returns its path.
func (b *DocBuilder) WriteTemp(t *testing.T, name string) string {
	t.Helper()
	return WriteTempFile(t, name, b.YAML(t))
}

// WriteTempFile writes data to name inside a fresh temporary directory.
func WriteTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

// RandomSpec sizes a random document.
type RandomSpec struct {
	Schemas    int
	Operations int
	Tags       int
	// MaxRefs caps the references per schema and per operation
	MaxRefs int
}

// RandomDocument builds a reproducible document from seed. Schemas reference
// each other freely (cycles included), some references dangle, some
// operations are untagged and some carry several tags.
func RandomDocument(seed int64, spec RandomSpec) *DocBuilder {
	f := gofakeit.New(seed)

	tags := make([]string, spec.Tags)
	for i := range tags {
		tags[i] = fmt.Sprintf("Group%dItems", i)
	}
	names := make([]string, spec.Schemas)
	for i := range names {
		names[i] = fmt.Sprintf("Model%d", i)
	}

	pickRefs := func() []string {
		if spec.MaxRefs == 0 {
			return nil
		}
		refs := make([]string, f.Number(0, spec.MaxRefs))
		for i := range refs {
			if len(names) == 0 || f.Number(0, 9) == 0 {
				refs[i] = fmt.Sprintf("Missing%d", f.Number(0, 99))
				continue
			}
			refs[i] = f.RandomString(names)
		}
		return refs
	}

	b := NewDocument(f.AppName(), f.AppVersion())
	for _, name := range names {
		b.AddSchema(name, pickRefs()...)
	}

	methods := []string{"get", "post", "put"}
	for i := 0; i < spec.Operations; i++ {
		var opTags []string
		switch {
		case len(tags) == 0 || f.Number(0, 7) == 0:
			// untagged
		case f.Bool():
			opTags = []string{f.RandomString(tags), f.RandomString(tags)}
		default:
			opTags = []string{f.RandomString(tags)}
		}
		// three operations per path keeps every (path, method) pair unique
		path := fmt.Sprintf("/r%d", i/3)
		b.AddOperation(path, methods[i%3], opTags, pickRefs()...)
	}
	return b
}

func schemaRef(name string) *yaml.Node {
	ref := parser.NewMapping()
	parser.AppendPair(ref, "$ref", parser.NewString("#/components/schemas/"+name))
	return ref
}

func refList(names []string) *yaml.Node {
	if len(names) == 1 {
		return schemaRef(names[0])
	}
	schema := parser.NewMapping()
	all := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, n := range names {
		all.Content = append(all.Content, schemaRef(n))
	}
	parser.AppendPair(schema, "allOf", all)
	return schema
}

func jsonContent(schema *yaml.Node) *yaml.Node {
	media := parser.NewMapping()
	parser.AppendPair(media, "schema", schema)
	content := parser.NewMapping()
	parser.AppendPair(content, "application/json", media)
	return content
}
