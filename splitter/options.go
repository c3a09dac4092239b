package splitter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/erraggy/oasplit/internal/options"
	"github.com/erraggy/oasplit/parser"
)

// Option is a function that configures a split operation
type Option func(*splitConfig) error

// splitConfig holds configuration for a split operation
type splitConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	parsed   *parser.ParseResult
	bytes    []byte

	// Output directory; nothing is written when nil
	outputDir *string

	// Configuration options (nil means use default from DefaultConfig)
	baseTitle             *string
	defaultOpenAPIVersion *string
	format                *Format
	extension             *string
	securitySchemes       *SecuritySchemes
	pathItemFields        *bool
	allComponents         *bool
	concurrency           *int
	validateOutput        *bool

	logger       *slog.Logger
	writeHandler WriteHandler
}

// SplitWithOptions splits an OpenAPI document using functional options.
// When WithOutputDir is given the categories are also written, and
// SplitResult.Written lists the files.
//
// Example:
//
//	result, err := splitter.SplitWithOptions(ctx,
//	    splitter.WithFilePath("openapi.yml"),
//	    splitter.WithOutputDir("openapi-split"),
//	    splitter.WithConcurrency(4),
//	)
func SplitWithOptions(ctx context.Context, opts ...Option) (*SplitResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("splitter: invalid options: %w", err)
	}

	s := New(cfg.toConfig())

	src := cfg.parsed
	switch {
	case cfg.filePath != nil:
		src, err = parser.ParseWithOptions(parser.WithFilePath(*cfg.filePath))
	case cfg.bytes != nil:
		src, err = parser.ParseWithOptions(parser.WithBytes(cfg.bytes))
	}
	if err != nil {
		return nil, err
	}

	result, err := s.Split(src)
	if err != nil {
		return nil, err
	}
	if cfg.outputDir != nil {
		result.Written, err = s.WriteResult(ctx, result, *cfg.outputDir)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

func applyOptions(opts ...Option) (*splitConfig, error) {
	cfg := &splitConfig{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ValidateSingleInputSource(
		"must specify an input source (use WithFilePath, WithParsed, or WithBytes)",
		"must specify exactly one input source",
		cfg.filePath != nil, cfg.parsed != nil, cfg.bytes != nil,
	); err != nil {
		return nil, err
	}
	return cfg, nil
}

// toConfig builds a Config from the options, using DefaultConfig for
// anything left unset.
func (cfg *splitConfig) toConfig() Config {
	c := DefaultConfig()
	if cfg.baseTitle != nil {
		c.BaseTitle = *cfg.baseTitle
	}
	if cfg.defaultOpenAPIVersion != nil {
		c.DefaultOpenAPIVersion = *cfg.defaultOpenAPIVersion
	}
	if cfg.format != nil {
		c.Format = *cfg.format
	}
	if cfg.extension != nil {
		c.Extension = *cfg.extension
	}
	if cfg.securitySchemes != nil {
		c.SecuritySchemes = *cfg.securitySchemes
	}
	if cfg.pathItemFields != nil {
		c.PathItemFields = *cfg.pathItemFields
	}
	if cfg.allComponents != nil {
		c.AllComponents = *cfg.allComponents
	}
	if cfg.concurrency != nil {
		c.Concurrency = *cfg.concurrency
	}
	if cfg.validateOutput != nil {
		c.ValidateOutput = *cfg.validateOutput
	}
	c.Logger = cfg.logger
	c.WriteHandler = cfg.writeHandler
	return c
}

// WithFilePath specifies a file path as the input source
func WithFilePath(path string) Option {
	return func(cfg *splitConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithParsed specifies an already parsed document as the input source
func WithParsed(result *parser.ParseResult) Option {
	return func(cfg *splitConfig) error {
		if result == nil {
			return fmt.Errorf("parsed result cannot be nil")
		}
		cfg.parsed = result
		return nil
	}
}

// WithBytes specifies raw YAML or JSON as the input source
func WithBytes(data []byte) Option {
	return func(cfg *splitConfig) error {
		if data == nil {
			return fmt.Errorf("bytes cannot be nil")
		}
		cfg.bytes = data
		return nil
	}
}

// WithOutputDir writes the categories into dir after splitting
func WithOutputDir(dir string) Option {
	return func(cfg *splitConfig) error {
		if dir == "" {
			return fmt.Errorf("output directory cannot be empty")
		}
		cfg.outputDir = &dir
		return nil
	}
}

// WithBaseTitle sets the prefix of every output title
func WithBaseTitle(title string) Option {
	return func(cfg *splitConfig) error {
		cfg.baseTitle = &title
		return nil
	}
}

// WithDefaultOpenAPIVersion sets the openapi value used when the source has none
func WithDefaultOpenAPIVersion(version string) Option {
	return func(cfg *splitConfig) error {
		if version == "" {
			return fmt.Errorf("default OpenAPI version cannot be empty")
		}
		cfg.defaultOpenAPIVersion = &version
		return nil
	}
}

// WithFormat sets the output serialization ("yaml" or "json")
func WithFormat(format Format) Option {
	return func(cfg *splitConfig) error {
		if err := options.ValidateOneOf("format", string(format), string(FormatYAML), string(FormatJSON)); err != nil {
			return err
		}
		cfg.format = &format
		return nil
	}
}

// WithExtension overrides the output file extension, e.g. ".yaml"
func WithExtension(ext string) Option {
	return func(cfg *splitConfig) error {
		cfg.extension = &ext
		return nil
	}
}

// WithSecuritySchemes selects the securitySchemes written with each document
func WithSecuritySchemes(mode SecuritySchemes) Option {
	return func(cfg *splitConfig) error {
		if err := options.ValidateOneOf("security-schemes", string(mode),
			string(SecuritySchemesBasic), string(SecuritySchemesSource)); err != nil {
			return err
		}
		cfg.securitySchemes = &mode
		return nil
	}
}

// WithPathItemFields copies path-level fields into each category's path items
func WithPathItemFields(enabled bool) Option {
	return func(cfg *splitConfig) error {
		cfg.pathItemFields = &enabled
		return nil
	}
}

// WithAllComponents carries every referenced component kind, not just schemas
func WithAllComponents(enabled bool) Option {
	return func(cfg *splitConfig) error {
		cfg.allComponents = &enabled
		return nil
	}
}

// WithConcurrency sets how many categories are written at once
func WithConcurrency(n int) Option {
	return func(cfg *splitConfig) error {
		if err := options.ValidatePositive("concurrency", n); err != nil {
			return err
		}
		cfg.concurrency = &n
		return nil
	}
}

// WithValidateOutput checks every emitted document before it is written
func WithValidateOutput(enabled bool) Option {
	return func(cfg *splitConfig) error {
		cfg.validateOutput = &enabled
		return nil
	}
}

// WithLogger sets the logger for debug events
func WithLogger(l *slog.Logger) Option {
	return func(cfg *splitConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithWriteHandler sets a callback invoked after each file is written
func WithWriteHandler(h WriteHandler) Option {
	return func(cfg *splitConfig) error {
		cfg.writeHandler = h
		return nil
	}
}
