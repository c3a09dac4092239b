package splitter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/erraggy/oasplit/internal/fileutil"
	"github.com/erraggy/oasplit/internal/naming"
	"github.com/erraggy/oasplit/oaserrors"
	"github.com/erraggy/oasplit/parser"
	"golang.org/x/sync/errgroup"
)

// WrittenFile describes one document written by WriteResult.
type WrittenFile struct {
	Category       string
	Path           string
	Size           int
	PathCount      int
	OperationCount int
	SchemaCount    int
}

// FileName returns the output file name for a category: a hyphen between
// each lowercase-uppercase pair, lowercased, plus ext.
//
// Categories whose name would escape the output directory (path separators,
// "." or "..") are rejected with a path traversal error.
func FileName(category, ext string) (string, error) {
	base := naming.ToKebabCase(category)
	if base == "" || base == "." || base == ".." || strings.ContainsAny(base, "/\\\x00") {
		return "", &oaserrors.ReferenceError{
			Ref:             category,
			IsPathTraversal: true,
			Message:         "category does not map to a file name inside the output directory",
		}
	}
	return base + ext, nil
}

// Marshal serializes a category's assembled document.
func Marshal(c *Category, format Format) ([]byte, error) {
	if c.Document == nil {
		return nil, fmt.Errorf("splitter: category %q has no assembled document", c.Name)
	}
	if format == FormatJSON {
		return parser.MarshalJSON(c.Document)
	}
	return parser.MarshalYAML(c.Document)
}

// WriteResult writes one file per category into outputDir, creating the
// directory if needed and overwriting existing files.
//
// Files are written independently: when one fails, files already written
// stay on disk and the first error is returned. With Config.Concurrency above
// one, categories are marshaled and written in parallel; the bytes of each
// file do not depend on it.
func (s *Splitter) WriteResult(ctx context.Context, result *SplitResult, outputDir string) ([]WrittenFile, error) {
	if err := s.config.validate(); err != nil {
		return nil, fmt.Errorf("splitter: %w", err)
	}
	if err := os.MkdirAll(outputDir, fileutil.DirMode); err != nil {
		return nil, &oaserrors.WriteError{Path: outputDir, Cause: err}
	}

	log := s.config.logger()
	written := make([]WrittenFile, len(result.Categories))
	var handlerMu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Concurrency)

	for i, c := range result.Categories {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			wf, err := s.writeCategory(ctx, result, c, outputDir)
			if err != nil {
				return err
			}
			written[i] = wf
			log.Debug("wrote category", "category", c.Name, "path", wf.Path, "bytes", wf.Size)

			if s.config.WriteHandler != nil {
				handlerMu.Lock()
				s.config.WriteHandler(wf)
				handlerMu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return written, nil
}

func (s *Splitter) writeCategory(ctx context.Context, result *SplitResult, c *Category, outputDir string) (WrittenFile, error) {
	data, err := Marshal(c, result.Format)
	if err != nil {
		return WrittenFile{}, &oaserrors.WriteError{Path: c.FileName, Category: c.Name, Cause: err}
	}
	if s.config.ValidateOutput {
		if err := ValidateDocument(ctx, c.FileName, data); err != nil {
			return WrittenFile{}, err
		}
	}

	path := filepath.Join(outputDir, c.FileName)
	if err := fileutil.WriteFile(path, data, fileutil.OwnerReadWrite); err != nil {
		return WrittenFile{}, &oaserrors.WriteError{Path: path, Category: c.Name, Cause: err}
	}
	return WrittenFile{
		Category:       c.Name,
		Path:           path,
		Size:           len(data),
		PathCount:      c.PathCount,
		OperationCount: c.OperationCount,
		SchemaCount:    len(c.Schemas),
	}, nil
}
