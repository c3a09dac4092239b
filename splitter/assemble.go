package splitter

import (
	"fmt"

	"github.com/erraggy/oasplit/parser"
	"go.yaml.in/yaml/v4"
)

const keySecuritySchemes = "securitySchemes"

// Assemble builds the standalone document for c from the source document.
//
// The result has the keys openapi, info, paths and, when the category needs
// any definitions, components. Unchanged subtrees are shared with src rather
// than copied; serialize the result with Marshal instead of editing it.
func Assemble(src *parser.ParseResult, c *Category, cfg Config) *yaml.Node {
	defs := indexComponents(src.Field(parser.KeyComponents), allComponentKinds)
	return assemble(src, c, defs, cfg)
}

func assemble(src *parser.ParseResult, c *Category, defs map[ComponentRef]*yaml.Node, cfg Config) *yaml.Node {
	doc := parser.NewMapping()

	openapi := src.Field(parser.KeyOpenAPI)
	if _, ok := parser.ScalarValue(openapi); !ok {
		version := cfg.DefaultOpenAPIVersion
		if version == "" {
			version = DefaultOpenAPIVersion
		}
		openapi = parser.NewString(version)
	}
	parser.AppendPair(doc, parser.KeyOpenAPI, openapi)

	info := parser.NewMapping()
	parser.AppendPair(info, parser.KeyTitle, parser.NewString(fmt.Sprintf("%s - %s", baseTitle(src, cfg), c.Name)))
	version := parser.Lookup(src.Info(), parser.KeyVersion)
	if _, ok := parser.ScalarValue(version); !ok {
		version = parser.NewString("")
	}
	parser.AppendPair(info, parser.KeyVersion, version)
	parser.AppendPair(info, "description", parser.NewString(fmt.Sprintf("API endpoints for %s category", c.Name)))
	parser.AppendPair(doc, parser.KeyInfo, info)

	parser.AppendPair(doc, parser.KeyPaths, c.Paths)

	if components := assembleComponents(src, c, defs, cfg); components != nil {
		parser.AppendPair(doc, parser.KeyComponents, components)
	}
	return doc
}

// assembleComponents returns the components mapping for c, or nil when the
// category needs no definitions.
func assembleComponents(src *parser.ParseResult, c *Category, defs map[ComponentRef]*yaml.Node, cfg Config) *yaml.Node {
	if c.ComponentCount() == 0 {
		return nil
	}

	components := parser.NewMapping()
	for _, kind := range allComponentKinds {
		names := c.Schemas
		if kind != kindSchemas {
			names = c.Components[kind]
		}
		if len(names) == 0 {
			continue
		}
		section := parser.NewMapping()
		for _, name := range names {
			parser.AppendPair(section, name, defs[ComponentRef{Kind: kind, Name: name}])
		}
		parser.AppendPair(components, kind, section)
	}

	if schemes := securitySchemes(src, cfg.SecuritySchemes); schemes != nil {
		parser.AppendPair(components, keySecuritySchemes, schemes)
	}
	return components
}

func baseTitle(src *parser.ParseResult, cfg Config) string {
	if cfg.BaseTitle != "" {
		return cfg.BaseTitle
	}
	if title, ok := parser.ScalarValue(parser.Lookup(src.Info(), parser.KeyTitle)); ok && title != "" {
		return title
	}
	return DefaultBaseTitle
}

// securitySchemes returns the securitySchemes mapping for an emitted
// document, or nil when the source has none to copy.
func securitySchemes(src *parser.ParseResult, mode SecuritySchemes) *yaml.Node {
	if mode == SecuritySchemesSource {
		schemes := parser.Lookup(src.Field(parser.KeyComponents), keySecuritySchemes)
		if len(parser.Pairs(schemes)) == 0 {
			return nil
		}
		return schemes
	}

	basic := parser.NewMapping()
	parser.AppendPair(basic, "type", parser.NewString("http"))
	parser.AppendPair(basic, "scheme", parser.NewString("basic"))
	schemes := parser.NewMapping()
	parser.AppendPair(schemes, "BasicAuth", basic)
	return schemes
}
