package splitter

import (
	"log/slog"
	"strings"

	"github.com/erraggy/oasplit/internal/options"
	"github.com/erraggy/oasplit/oaserrors"
)

// Format selects how emitted documents are serialized.
type Format string

const (
	// FormatYAML writes block-style YAML (the default)
	FormatYAML Format = "yaml"
	// FormatJSON writes indented JSON
	FormatJSON Format = "json"
)

// SecuritySchemes selects the securitySchemes written next to the schemas
// of each emitted document.
type SecuritySchemes string

const (
	// SecuritySchemesBasic writes a fixed HTTP basic scheme named BasicAuth
	SecuritySchemesBasic SecuritySchemes = "basic"
	// SecuritySchemesSource copies components.securitySchemes from the source
	SecuritySchemesSource SecuritySchemes = "source"
)

const (
	// DefaultOpenAPIVersion is written when the source has no openapi field
	DefaultOpenAPIVersion = "3.0.1"
	// DefaultBaseTitle is used when neither the config nor the source names the API
	DefaultBaseTitle = "API"
)

// WriteHandler is called once for every file written by WriteResult.
// Calls are serialized, so handlers do not need their own locking.
type WriteHandler func(WrittenFile)

// Config holds the settings of a Splitter.
type Config struct {
	// BaseTitle prefixes every output title ("<BaseTitle> - <category>").
	// Empty means the source info.title, falling back to DefaultBaseTitle.
	BaseTitle string
	// DefaultOpenAPIVersion is used when the source has no openapi field
	DefaultOpenAPIVersion string
	// Format is the output serialization: "yaml" or "json"
	Format Format
	// Extension overrides the file extension. Empty derives it from Format
	// (".yml" for YAML, ".json" for JSON).
	Extension string
	// SecuritySchemes is "basic" or "source"
	SecuritySchemes SecuritySchemes
	// PathItemFields copies path-level parameters, summary, description and
	// servers into every category that uses the path
	PathItemFields bool
	// AllComponents carries referenced parameters, responses, request bodies
	// and the other component kinds alongside schemas
	AllComponents bool
	// Concurrency is the number of categories marshaled and written at once
	Concurrency int
	// ValidateOutput loads every emitted document with kin-openapi and
	// rejects documents that do not stand on their own
	ValidateOutput bool
	// Logger receives debug events. Nil discards them.
	Logger *slog.Logger
	// WriteHandler, if set, is notified after each file is written
	WriteHandler WriteHandler
}

// DefaultConfig returns the settings that reproduce the classic split:
// YAML output, the BasicAuth scheme, schemas only, one file at a time.
func DefaultConfig() Config {
	return Config{
		DefaultOpenAPIVersion: DefaultOpenAPIVersion,
		Format:                FormatYAML,
		SecuritySchemes:       SecuritySchemesBasic,
		Concurrency:           1,
	}
}

func (c Config) validate() error {
	if err := options.ValidateOneOf("format", string(c.Format), string(FormatYAML), string(FormatJSON)); err != nil {
		return err
	}
	if err := options.ValidateOneOf("security-schemes", string(c.SecuritySchemes),
		string(SecuritySchemesBasic), string(SecuritySchemesSource)); err != nil {
		return err
	}
	if c.Extension != "" && (!strings.HasPrefix(c.Extension, ".") || strings.ContainsAny(c.Extension, `/\`)) {
		return &oaserrors.ConfigError{Option: "extension", Value: c.Extension, Message: `must start with "." and contain no path separators`}
	}
	return options.ValidatePositive("concurrency", c.Concurrency)
}

func (c Config) extension() string {
	if c.Extension != "" {
		return c.Extension
	}
	if c.Format == FormatJSON {
		return ".json"
	}
	return ".yml"
}

func (c Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

// componentKinds returns the components sections that take part in the
// reference closure, in output order.
func (c Config) componentKinds() []string {
	if !c.AllComponents {
		return []string{kindSchemas}
	}
	return allComponentKinds
}
