// Package oasplit splits a single large OpenAPI document into smaller,
// self-contained documents, one per operation tag.
//
// # Overview
//
// Each operation is placed under the category named by its first tag. For
// every category the splitter collects the component schemas its operations
// reference, follows schema-to-schema references to a fixpoint, and emits a
// standalone document holding only those operations and schemas.
//
// The library consists of two packages:
//
//   - parser: Load an OpenAPI document (YAML or JSON) into an order-preserving node tree
//   - splitter: Classify operations, resolve schema closures, assemble and write category documents
//
// # Quick Start
//
//	result, err := splitter.SplitWithOptions(ctx,
//		splitter.WithFilePath("openapi.yml"),
//		splitter.WithOutputDir("openapi-split"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("wrote %d files\n", len(result.Written))
//
// A category tagged "TraceManagement" is written to trace-management.yml.
//
// # Command Line
//
// The oasplit command wraps the library:
//
//	oasplit split openapi.yml openapi-split
//	oasplit split --format json --concurrency 4 api.json out/
//	oasplit split --dry-run --all-components api.yaml
//	oasplit mcp
//
// Error types for errors.Is/errors.As live in the oaserrors package.
package oasplit
