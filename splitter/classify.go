package splitter

import (
	"github.com/erraggy/oasplit/parser"
	"go.yaml.in/yaml/v4"
)

// pathItemFields are the path-level keys copied into each category when
// Config.PathItemFields is set.
var pathItemFields = map[string]bool{
	"summary":     true,
	"description": true,
	"servers":     true,
	"parameters":  true,
}

// OperationRef identifies an operation by path and method.
type OperationRef struct {
	Path   string
	Method string
}

// Category is one partition of the source document: every operation whose
// first tag is Name, plus what Split derives for it.
type Category struct {
	// Name is the tag shared by the category's operations
	Name string
	// FileName is the output file name, set by Split
	FileName string
	// Paths is a mapping of path -> method -> operation in source order.
	// Operation nodes are shared with the source document.
	Paths *yaml.Node
	// PathCount is the number of distinct paths in Paths
	PathCount int
	// OperationCount is the number of operations in Paths
	OperationCount int
	// Schemas lists the sorted names of every schema the category needs
	Schemas []string
	// Components lists the other component definitions the category needs,
	// by section. Only populated when Config.AllComponents is set.
	Components map[string][]string
	// Dangling lists references that had no definition in the source
	Dangling []string
	// Document is the assembled standalone document, set by Split
	Document *yaml.Node
}

// ComponentCount returns the number of schemas and other component
// definitions carried by the category.
func (c *Category) ComponentCount() int {
	n := len(c.Schemas)
	for _, names := range c.Components {
		n += len(names)
	}
	return n
}

// Classify groups the operations of a paths mapping by their first tag.
//
// Categories are returned in the order their first operation appears; within
// a category, paths and methods keep their source order. Operations whose
// tags are missing, empty or not a list of strings are returned as unlabeled
// and belong to no category.
func Classify(paths *yaml.Node) ([]*Category, []OperationRef) {
	return classify(paths, false)
}

func classify(paths *yaml.Node, withPathItemFields bool) ([]*Category, []OperationRef) {
	var (
		categories []*Category
		unlabeled  []OperationRef
		byName     = make(map[string]*Category)
	)

	for _, entry := range parser.Pairs(paths) {
		path, ok := parser.ScalarValue(entry.Key)
		if !ok {
			continue
		}
		// path item built for each category that uses this path
		items := make(map[*Category]*yaml.Node)

		for _, field := range parser.Pairs(entry.Value) {
			method, ok := parser.ScalarValue(field.Key)
			if !ok || !parser.IsMapping(field.Value) {
				continue
			}
			tag, ok := primaryTag(field.Value)
			if !ok {
				if parser.IsHTTPMethod(method) {
					unlabeled = append(unlabeled, OperationRef{Path: path, Method: method})
				}
				continue
			}

			c := byName[tag]
			if c == nil {
				c = &Category{Name: tag, Paths: parser.NewMapping()}
				byName[tag] = c
				categories = append(categories, c)
			}

			item := items[c]
			if item == nil {
				item = parser.NewMapping()
				if withPathItemFields {
					copyPathItemFields(item, entry.Value)
				}
				items[c] = item
				parser.AppendNodePair(c.Paths, entry.Key, item)
				c.PathCount++
			}
			parser.AppendNodePair(item, field.Key, field.Value)
			c.OperationCount++
		}
	}
	return categories, unlabeled
}

// primaryTag returns the first entry of an operation's tags list.
func primaryTag(op *yaml.Node) (string, bool) {
	tags := parser.Resolve(parser.Lookup(op, "tags"))
	if tags == nil || tags.Kind != yaml.SequenceNode || len(tags.Content) == 0 {
		return "", false
	}
	tag, ok := parser.ScalarValue(tags.Content[0])
	if !ok || tag == "" {
		return "", false
	}
	return tag, true
}

func copyPathItemFields(dst, pathItem *yaml.Node) {
	for _, field := range parser.Pairs(pathItem) {
		if k, ok := parser.ScalarValue(field.Key); ok && pathItemFields[k] {
			parser.AppendNodePair(dst, field.Key, field.Value)
		}
	}
}
