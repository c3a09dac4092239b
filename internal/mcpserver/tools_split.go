package mcpserver

import (
	"context"
	"fmt"

	"github.com/erraggy/oasplit/parser"
	"github.com/erraggy/oasplit/splitter"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// splitOptions are the settings shared by split and split_plan.
type splitOptions struct {
	format          string
	title           string
	securitySchemes string
	pathItemFields  bool
	allComponents   bool
}

func (o splitOptions) config() splitter.Config {
	cfg := splitter.DefaultConfig()
	if o.format != "" {
		cfg.Format = splitter.Format(o.format)
	}
	if o.securitySchemes != "" {
		cfg.SecuritySchemes = splitter.SecuritySchemes(o.securitySchemes)
	}
	cfg.BaseTitle = o.title
	cfg.PathItemFields = o.pathItemFields
	cfg.AllComponents = o.allComponents
	return cfg
}

type splitInput struct {
	Spec      specInput `json:"spec"                 jsonschema:"The OAS document to split"`
	OutputDir string    `json:"output_dir,omitempty" jsonschema:"Directory to write the category files into (created if missing)"`
	Inline    bool      `json:"inline,omitempty"     jsonschema:"Return the documents in the response instead of writing files"`
	Validate  bool      `json:"validate,omitempty"   jsonschema:"Check that every output document loads and validates on its own"`

	Format          string `json:"format,omitempty"           jsonschema:"Output format: yaml (default) or json"`
	Title           string `json:"title,omitempty"            jsonschema:"Base title for output documents (default: the source info.title)"`
	SecuritySchemes string `json:"security_schemes,omitempty" jsonschema:"basic (default) writes a BasicAuth scheme; source copies the source securitySchemes"`
	PathItemFields  bool   `json:"path_item_fields,omitempty" jsonschema:"Copy path-level parameters, summary, description and servers into each category"`
	AllComponents   bool   `json:"all_components,omitempty"   jsonschema:"Carry referenced parameters, responses, request bodies and other components, not just schemas"`
}

func (in splitInput) options() splitOptions {
	return splitOptions{
		format:          in.Format,
		title:           in.Title,
		securitySchemes: in.SecuritySchemes,
		pathItemFields:  in.PathItemFields,
		allComponents:   in.AllComponents,
	}
}

type splitFile struct {
	Category   string `json:"category"`
	File       string `json:"file"`
	Operations int    `json:"operations"`
	Schemas    int    `json:"schemas"`
	Bytes      int    `json:"bytes"`
	Content    string `json:"content,omitempty"`
}

type splitOutput struct {
	Version    string      `json:"version"`
	Schemas    int         `json:"schema_count"`
	Unlabeled  int         `json:"unlabeled_operations"`
	OutputDir  string      `json:"output_dir,omitempty"`
	Files      []splitFile `json:"files"`
	Categories int         `json:"category_count"`
}

func handleSplit(ctx context.Context, _ *mcp.CallToolRequest, input splitInput) (*mcp.CallToolResult, splitOutput, error) {
	if (input.OutputDir == "") == !input.Inline {
		return errResult(fmt.Errorf("set exactly one of output_dir or inline")), splitOutput{}, nil
	}

	src, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), splitOutput{}, nil
	}

	cfg := input.options().config()
	cfg.ValidateOutput = input.Validate
	s := splitter.New(cfg)

	result, err := s.Split(src)
	if err != nil {
		return errResult(err), splitOutput{}, nil
	}

	output := splitOutput{
		Version:    result.Version,
		Schemas:    result.SchemaCount,
		Unlabeled:  len(result.Unlabeled),
		Categories: len(result.Categories),
		Files:      make([]splitFile, 0, len(result.Categories)),
	}

	if input.Inline {
		for _, c := range result.Categories {
			f, err := inlineFile(ctx, c, result.Format, input.Validate)
			if err != nil {
				return errResult(err), splitOutput{}, nil
			}
			output.Files = append(output.Files, f)
		}
		return nil, output, nil
	}

	written, err := s.WriteResult(ctx, result, input.OutputDir)
	if err != nil {
		return errResult(err), splitOutput{}, nil
	}
	output.OutputDir = input.OutputDir
	for _, w := range written {
		output.Files = append(output.Files, splitFile{
			Category:   w.Category,
			File:       w.Path,
			Operations: w.OperationCount,
			Schemas:    w.SchemaCount,
			Bytes:      w.Size,
		})
	}
	return nil, output, nil
}

func inlineFile(ctx context.Context, c *splitter.Category, format splitter.Format, validate bool) (splitFile, error) {
	data, err := splitter.Marshal(c, format)
	if err != nil {
		return splitFile{}, err
	}
	if validate {
		if err := splitter.ValidateDocument(ctx, c.FileName, data); err != nil {
			return splitFile{}, err
		}
	}
	return splitFile{
		Category:   c.Name,
		File:       c.FileName,
		Operations: c.OperationCount,
		Schemas:    len(c.Schemas),
		Bytes:      len(data),
		Content:    string(data),
	}, nil
}

type splitPlanInput struct {
	Spec specInput `json:"spec" jsonschema:"The OAS document to plan a split for"`

	Format          string `json:"format,omitempty"           jsonschema:"Output format the file names are derived for: yaml (default) or json"`
	Title           string `json:"title,omitempty"            jsonschema:"Base title for output documents (default: the source info.title)"`
	SecuritySchemes string `json:"security_schemes,omitempty" jsonschema:"basic (default) or source"`
	PathItemFields  bool   `json:"path_item_fields,omitempty" jsonschema:"Count path-level parameters and their references toward each category"`
	AllComponents   bool   `json:"all_components,omitempty"   jsonschema:"Resolve referenced parameters, responses and other components as well as schemas"`
}

func (in splitPlanInput) options() splitOptions {
	return splitOptions{
		format:          in.Format,
		title:           in.Title,
		securitySchemes: in.SecuritySchemes,
		pathItemFields:  in.PathItemFields,
		allComponents:   in.AllComponents,
	}
}

type planCategory struct {
	Name       string              `json:"name"`
	File       string              `json:"file"`
	Paths      int                 `json:"paths"`
	Operations int                 `json:"operations"`
	Schemas    []string            `json:"schemas,omitempty"`
	Components map[string][]string `json:"components,omitempty"`
	Dangling   []string            `json:"dangling_refs,omitempty"`
}

type planOperation struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

type splitPlanOutput struct {
	Version    string          `json:"version"`
	Format     string          `json:"source_format"`
	Paths      int             `json:"path_count"`
	Operations int             `json:"operation_count"`
	Schemas    int             `json:"schema_count"`
	Categories []planCategory  `json:"categories"`
	Unlabeled  []planOperation `json:"unlabeled_operations,omitempty"`
}

func handleSplitPlan(_ context.Context, _ *mcp.CallToolRequest, input splitPlanInput) (*mcp.CallToolResult, splitPlanOutput, error) {
	src, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), splitPlanOutput{}, nil
	}

	result, err := splitter.New(input.options().config()).Split(src)
	if err != nil {
		return errResult(err), splitPlanOutput{}, nil
	}
	return nil, planFromResult(src, result), nil
}

func planFromResult(src *parser.ParseResult, result *splitter.SplitResult) splitPlanOutput {
	output := splitPlanOutput{
		Version:    result.Version,
		Format:     string(src.SourceFormat),
		Paths:      src.Stats.PathCount,
		Operations: src.Stats.OperationCount,
		Schemas:    result.SchemaCount,
		Categories: make([]planCategory, 0, len(result.Categories)),
	}
	for _, c := range result.CategoriesBySize() {
		output.Categories = append(output.Categories, planCategory{
			Name:       c.Name,
			File:       c.FileName,
			Paths:      c.PathCount,
			Operations: c.OperationCount,
			Schemas:    c.Schemas,
			Components: c.Components,
			Dangling:   c.Dangling,
		})
	}
	for _, op := range result.Unlabeled {
		output.Unlabeled = append(output.Unlabeled, planOperation{Method: op.Method, Path: op.Path})
	}
	return output
}
