package mcpserver

import (
	"fmt"
	"strings"

	"github.com/erraggy/oasplit/parser"
)

// maxInlineSize caps inline document content accepted from clients.
const maxInlineSize = 10 << 20

// specInput represents the ways an OAS document can be provided to a tool.
// Exactly one of File or Content must be set.
type specInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to an OAS file on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline OAS document content (JSON or YAML)"`
}

// resolve parses the document from whichever input was provided.
func (s specInput) resolve() (*parser.ParseResult, error) {
	switch {
	case s.File != "" && s.Content != "":
		return nil, fmt.Errorf("exactly one of file or content must be provided (got 2)")
	case s.File != "":
		return parser.ParseWithOptions(parser.WithFilePath(s.File))
	case s.Content != "":
		if len(s.Content) > maxInlineSize {
			return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead",
				len(s.Content), maxInlineSize)
		}
		return parser.ParseWithOptions(parser.WithReader(strings.NewReader(s.Content)))
	default:
		return nil, fmt.Errorf("exactly one of file or content must be provided (got 0)")
	}
}
