package main

import (
	"fmt"
	"os"

	"github.com/erraggy/oasplit"
	"github.com/erraggy/oasplit/cmd/oasplit/commands"
	"github.com/erraggy/oasplit/internal/cliutil"
)

// knownCommands lists the subcommands suggestCommand picks from.
var knownCommands = []string{"split", "mcp", "version", "help"}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("oasplit v%s\n", oasplit.Version())
		fmt.Println(oasplit.BuildInfo())
	case "help", "-h", "--help":
		printUsage()
	case "split":
		exitOnError(commands.HandleSplit(os.Args[2:]))
	case "mcp":
		exitOnError(commands.HandleMCP(os.Args[2:]))
	default:
		cliutil.Writef(os.Stderr, "Unknown command: %s\n", command)
		if s := suggestCommand(command); s != "" {
			cliutil.Writef(os.Stderr, "Did you mean: %s?\n", s)
		}
		cliutil.Writef(os.Stderr, "\n")
		printUsage()
		os.Exit(1)
	}
}

func exitOnError(err error) {
	if err == nil {
		return
	}
	cliutil.Writef(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// suggestCommand returns the known command closest to input, or "" when
// none is within two edits.
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, cmd := range knownCommands {
		if d := editDistance(input, cmd); d < bestDist {
			best, bestDist = cmd, d
		}
	}
	return best
}

// editDistance is the Levenshtein distance between a and b.
func editDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func printUsage() {
	cliutil.Writef(os.Stdout, `oasplit - split an OpenAPI document by operation tag

Usage:
  oasplit <command> [flags] [arguments]

Commands:
  split      Write one standalone document per operation tag
  mcp        Run an MCP server over stdio
  version    Show version and build information
  help       Show this help message

Run 'oasplit <command> -h' for more information on a command.

Examples:
  oasplit split openapi.yml openapi-split
  oasplit split --format json --dry-run api.yaml
`)
}
