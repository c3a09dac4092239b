package splitter

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/erraggy/oasplit/oaserrors"
	"github.com/erraggy/oasplit/parser"
)

// Splitter partitions OpenAPI documents by operation tag.
//
// A Splitter only reads its inputs, so one instance may split several
// documents concurrently.
type Splitter struct {
	config Config
}

// New creates a Splitter with the given configuration
func New(config Config) *Splitter {
	return &Splitter{config: config}
}

// SplitResult holds the categories derived from one source document.
type SplitResult struct {
	// SourcePath is the path or synthetic name of the source document
	SourcePath string
	// SourceFormat is the format the source was read in
	SourceFormat parser.SourceFormat
	// Version is the source's openapi field ("" when absent)
	Version string
	// Format is the serialization the categories' file names were derived for
	Format Format
	// SchemaCount is the number of schemas defined in the source
	SchemaCount int
	// Stats summarizes the source document
	Stats parser.DocumentStats
	// Categories in the order their first operation appears in the source
	Categories []*Category
	// Unlabeled lists the operations left out because they have no tag
	Unlabeled []OperationRef
	// Written lists the files written by SplitWithOptions when an output
	// directory was given
	Written []WrittenFile
	// SplitTime is how long Split took
	SplitTime time.Duration
}

// CategoriesBySize returns the categories ordered by operation count,
// largest first. Ties keep source order.
func (r *SplitResult) CategoriesBySize() []*Category {
	sorted := slices.Clone(r.Categories)
	slices.SortStableFunc(sorted, func(a, b *Category) int {
		return cmp.Compare(b.OperationCount, a.OperationCount)
	})
	return sorted
}

// Category returns the category with the given name, or nil.
func (r *SplitResult) Category(name string) *Category {
	for _, c := range r.Categories {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Split classifies the operations of src, resolves the definitions each
// category needs and assembles one standalone document per category.
// Nothing is written; see WriteResult.
func (s *Splitter) Split(src *parser.ParseResult) (*SplitResult, error) {
	if src == nil || src.Root == nil {
		return nil, fmt.Errorf("splitter: no source document")
	}
	if err := s.config.validate(); err != nil {
		return nil, fmt.Errorf("splitter: %w", err)
	}
	if src.IsOAS2() {
		return nil, &oaserrors.ConfigError{
			Option:  "input",
			Value:   src.SourcePath,
			Message: "OpenAPI 2.0 (swagger) documents are not supported, convert to OpenAPI 3.x first",
		}
	}

	start := time.Now()
	log := s.config.logger().With("source", src.SourcePath)

	kinds := s.config.componentKinds()
	defs := indexComponents(src.Field(parser.KeyComponents), kinds)
	graph := newComponentGraph(defs, kindSet(kinds))

	categories, unlabeled := classify(src.Paths(), s.config.PathItemFields)
	for _, op := range unlabeled {
		log.Debug("skipping operation without tags", "path", op.Path, "method", op.Method)
	}

	ext := s.config.extension()
	owners := make(map[string]string, len(categories))
	for _, c := range categories {
		name, err := FileName(c.Name, ext)
		if err != nil {
			return nil, fmt.Errorf("splitter: %w", err)
		}
		if other, taken := owners[name]; taken {
			return nil, &oaserrors.ConfigError{
				Option:  "category",
				Value:   c.Name,
				Message: fmt.Sprintf("categories %q and %q both map to file name %s; rename one of the tags", other, c.Name, name),
			}
		}
		owners[name] = c.Name
		c.FileName = name

		resolved, dangling := graph.closure(collectRefs(c.Paths, kindSet(kinds)))
		c.setComponents(resolved)
		for _, ref := range dangling {
			c.Dangling = append(c.Dangling, ref.String())
			log.Debug("dropping reference without definition", "category", c.Name, "ref", ref.String())
		}

		c.Document = assemble(src, c, defs, s.config)
		log.Debug("assembled category",
			"category", c.Name,
			"paths", c.PathCount,
			"operations", c.OperationCount,
			"schemas", len(c.Schemas))
	}

	return &SplitResult{
		SourcePath:   src.SourcePath,
		SourceFormat: src.SourceFormat,
		Version:      src.Version,
		Format:       s.config.Format,
		SchemaCount:  src.Stats.SchemaCount,
		Stats:        src.Stats,
		Categories:   categories,
		Unlabeled:    unlabeled,
		SplitTime:    time.Since(start),
	}, nil
}

// setComponents records a sorted closure on the category.
func (c *Category) setComponents(resolved []ComponentRef) {
	c.Schemas = nil
	c.Components = nil
	for _, ref := range resolved {
		if ref.Kind == kindSchemas {
			c.Schemas = append(c.Schemas, ref.Name)
			continue
		}
		if c.Components == nil {
			c.Components = make(map[string][]string)
		}
		c.Components[ref.Kind] = append(c.Components[ref.Kind], ref.Name)
	}
}
