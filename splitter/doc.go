// Package splitter partitions an OpenAPI 3.x document into one standalone
// document per operation tag.
//
// # Overview
//
// Every operation is assigned to the category named by the first entry of
// its tags list. For each category the splitter collects the schemas the
// category's operations reference, follows $ref links between schemas until
// nothing new is found, and assembles a document holding only the category's
// paths and that closure. Operations without tags are left out and reported
// in SplitResult.Unlabeled.
//
// # Usage with Functional Options
//
//	result, err := splitter.SplitWithOptions(ctx,
//	    splitter.WithFilePath("openapi.yml"),
//	    splitter.WithOutputDir("openapi-split"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, c := range result.CategoriesBySize() {
//	    fmt.Printf("%s: %d operations, %d schemas\n", c.Name, c.OperationCount, len(c.Schemas))
//	}
//
// # Usage with Struct-Based API
//
//	src, err := parser.Parse("openapi.yml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cfg := splitter.DefaultConfig()
//	cfg.Format = splitter.FormatJSON
//	s := splitter.New(cfg)
//	result, err := s.Split(src)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	files, err := s.WriteResult(ctx, result, "openapi-split")
//
// # Output Documents
//
// Each document has the top-level keys openapi, info, paths and, when the
// category references at least one schema, components. The title is
// "<base title> - <category>" and the description names the category.
// Components hold the resolved schemas sorted by name plus a securitySchemes
// entry (a fixed BasicAuth scheme by default, or the source's own schemes
// with SecuritySchemesSource). Operation bodies are copied as they are.
//
// References to schemas missing from the source are dropped from the
// closure without error and listed in Category.Dangling.
//
// File names are derived from the category: "TraceManagement" is written to
// trace-management.yml. Two categories that map to the same file name, or a
// category that would escape the output directory, fail the split before
// anything is written.
//
// # Concurrency
//
// Split runs on the calling goroutine. WriteResult writes one category at a
// time unless Config.Concurrency is raised; the content of every file is the
// same either way.
package splitter
