// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes the oasplit splitter as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/erraggy/oasplit"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `oasplit MCP server: splits one OpenAPI 3.x document into one standalone document per operation tag.

Each operation goes to the category named by its first tag; operations without tags are left out and counted. Every output document carries only the schemas its operations reach through $ref links.

Start with split_plan to see the categories, their file names and schema counts without writing anything. Then call split with output_dir to write the files, or with inline=true to get the documents back in the response (small specs only).`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	return newServer().Run(ctx, &mcp.StdioTransport{})
}

func newServer() *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasplit", Version: oasplit.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "split_plan",
		Description: "Show how an OpenAPI document would be split by operation tag without writing anything. Returns each category with its output file name, path/operation counts, the schemas it needs and any references that have no definition, plus the operations left out for lack of tags. Categories are sorted by operation count, largest first.",
	}, handleSplitPlan)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "split",
		Description: "Split an OpenAPI document into one standalone document per operation tag. Set output_dir to write the files (existing files are overwritten), or inline=true to return the documents in the response. Options: format (yaml or json), title (prefix for output titles), security_schemes (basic or source), path_item_fields (copy path-level parameters/summary/servers), all_components (carry referenced parameters/responses/etc. as well as schemas), validate (check each output loads on its own).",
	}, handleSplit)
}

// pathPattern matches absolute filesystem paths in error messages.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
