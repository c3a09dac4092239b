package parser

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/erraggy/oasplit/oaserrors"
	"go.yaml.in/yaml/v4"
)

// Top-level document keys.
const (
	KeyOpenAPI    = "openapi"
	KeySwagger    = "swagger"
	KeyInfo       = "info"
	KeyPaths      = "paths"
	KeyComponents = "components"
	KeySchemas    = "schemas"
	KeyTitle      = "title"
	KeyVersion    = "version"
)

// Parser loads OpenAPI documents.
type Parser struct {
	// MaxFileSize rejects inputs larger than this many bytes. 0 disables the limit.
	MaxFileSize int64
}

// New creates a new Parser with default settings
func New() *Parser {
	return &Parser{}
}

// ParseResult contains a loaded document and metadata about its source.
//
// Root is shared by everything derived from the result and must be treated
// as read-only; use [Clone] before modifying any part of it.
type ParseResult struct {
	// SourcePath is the path the document was read from. For in-memory
	// sources it is a synthetic name ending in .yaml or .json.
	SourcePath string
	// SourceFormat is the detected format of the source
	SourceFormat SourceFormat
	// Version is the value of the top-level openapi field ("" if absent)
	Version string
	// Root is the document's top-level mapping node
	Root *yaml.Node
	// LoadTime is the time taken to read and parse the source
	LoadTime time.Duration
	// SourceSize is the size of the source data in bytes
	SourceSize int64
	// Stats contains counts of paths, operations and schemas
	Stats DocumentStats
}

// Field returns the value node for a top-level key, or nil.
func (pr *ParseResult) Field(key string) *yaml.Node {
	return Lookup(pr.Root, key)
}

// Paths returns the paths mapping node, or nil.
func (pr *ParseResult) Paths() *yaml.Node {
	return pr.Field(KeyPaths)
}

// Info returns the info mapping node, or nil.
func (pr *ParseResult) Info() *yaml.Node {
	return pr.Field(KeyInfo)
}

// Schemas returns the components.schemas mapping node, or nil.
func (pr *ParseResult) Schemas() *yaml.Node {
	return Lookup(pr.Field(KeyComponents), KeySchemas)
}

// IsOAS2 reports whether the document declares swagger 2.0 instead of openapi 3.x.
func (pr *ParseResult) IsOAS2() bool {
	return pr.Version == "" && pr.Field(KeySwagger) != nil
}

// Parse reads and parses the document at path.
// A missing file yields a *oaserrors.ParseError that unwraps to fs.ErrNotExist.
func (p *Parser) Parse(path string) (*ParseResult, error) {
	start := time.Now()

	info, err := os.Stat(path)
	if err != nil {
		return nil, &oaserrors.ParseError{Path: path, Message: "failed to read file", Cause: err}
	}
	if err := p.checkSize(path, info.Size()); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path) //nolint:gosec // G304 - reading the user-supplied input is the point
	if err != nil {
		return nil, &oaserrors.ParseError{Path: path, Message: "failed to read file", Cause: err}
	}

	res, err := p.parseBytes(data, path)
	if err != nil {
		return nil, err
	}
	if format := detectFormatFromPath(path); format != SourceFormatUnknown {
		res.SourceFormat = format
	}
	res.LoadTime = time.Since(start)
	return res, nil
}

// ParseReader parses a document from r.
func (p *Parser) ParseReader(r io.Reader) (*ParseResult, error) {
	start := time.Now()
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &oaserrors.ParseError{Path: "ParseReader", Message: "failed to read data", Cause: err}
	}
	res, err := p.ParseBytes(data)
	if err != nil {
		return nil, err
	}
	res.SourcePath = syntheticName("ParseReader", res.SourceFormat)
	res.LoadTime = time.Since(start)
	return res, nil
}

// ParseBytes parses a document held in memory.
func (p *Parser) ParseBytes(data []byte) (*ParseResult, error) {
	res, err := p.parseBytes(data, "ParseBytes")
	if err != nil {
		return nil, err
	}
	res.SourcePath = syntheticName("ParseBytes", res.SourceFormat)
	return res, nil
}

func (p *Parser) parseBytes(data []byte, sourcePath string) (*ParseResult, error) {
	if err := p.checkSize(sourcePath, int64(len(data))); err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &oaserrors.ParseError{Path: sourcePath, Message: "document is empty"}
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &oaserrors.ParseError{Path: sourcePath, Message: "failed to parse YAML/JSON", Cause: err}
	}

	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil, &oaserrors.ParseError{Path: sourcePath, Message: "document is empty"}
		}
		root = root.Content[0]
	}
	root = Resolve(root)
	if root == nil || root.Kind != yaml.MappingNode {
		line, col := 0, 0
		if root != nil {
			line, col = root.Line, root.Column
		}
		return nil, &oaserrors.ParseError{
			Path:    sourcePath,
			Line:    line,
			Column:  col,
			Message: "top-level value must be a mapping",
		}
	}

	res := &ParseResult{
		SourcePath:   sourcePath,
		SourceFormat: detectFormatFromContent(data),
		Root:         root,
		SourceSize:   int64(len(data)),
	}
	if v, ok := ScalarValue(Lookup(root, KeyOpenAPI)); ok {
		res.Version = v
	}
	res.Stats = GetDocumentStats(root)
	return res, nil
}

func (p *Parser) checkSize(path string, size int64) error {
	if p.MaxFileSize > 0 && size > p.MaxFileSize {
		return &oaserrors.ParseError{
			Path:    path,
			Message: fmt.Sprintf("file size %d exceeds limit of %d bytes", size, p.MaxFileSize),
		}
	}
	return nil
}

func syntheticName(method string, format SourceFormat) string {
	if format == SourceFormatJSON {
		return method + ".json"
	}
	return method + ".yaml"
}

// Parse is a convenience wrapper around New().Parse.
func Parse(path string) (*ParseResult, error) {
	return New().Parse(path)
}
