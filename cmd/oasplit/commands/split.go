package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/erraggy/oasplit/internal/cliutil"
	"github.com/erraggy/oasplit/parser"
	"github.com/erraggy/oasplit/splitter"
	"github.com/lmittmann/tint"
)

// Defaults used when the positional arguments are omitted.
const (
	DefaultInput     = "openapi.yml"
	DefaultOutputDir = "openapi-split"
)

// InputNotFoundError reports a missing input document.
type InputNotFoundError struct {
	Path string
}

func (e *InputNotFoundError) Error() string {
	return fmt.Sprintf("Input file '%s' not found", e.Path)
}

func (e *InputNotFoundError) Unwrap() error {
	return fs.ErrNotExist
}

// SplitFlags contains flags for the split command
type SplitFlags struct {
	Format          string
	Title           string
	SecuritySchemes string
	PathItemFields  bool
	AllComponents   bool
	Concurrency     int
	Validate        bool
	DryRun          bool
	Quiet           bool
	Verbose         bool
}

// SetupSplitFlags creates and configures a FlagSet for the split command.
// Returns the FlagSet and a SplitFlags struct with bound flag variables.
func SetupSplitFlags() (*flag.FlagSet, *SplitFlags) {
	fs := flag.NewFlagSet("split", flag.ContinueOnError)
	flags := &SplitFlags{}

	fs.StringVar(&flags.Format, "format", string(splitter.FormatYAML), "output format (yaml, json)")
	fs.StringVar(&flags.Title, "title", "", "base title for output documents (default: source info.title)")
	fs.StringVar(&flags.SecuritySchemes, "security-schemes", string(splitter.SecuritySchemesBasic), "security schemes to emit (basic, source)")
	fs.BoolVar(&flags.PathItemFields, "path-item-fields", false, "copy path-level parameters, summary, description and servers")
	fs.BoolVar(&flags.AllComponents, "all-components", false, "carry referenced responses, parameters and other components, not only schemas")
	fs.IntVar(&flags.Concurrency, "j", 1, "number of files written in parallel")
	fs.IntVar(&flags.Concurrency, "concurrency", 1, "number of files written in parallel")
	fs.BoolVar(&flags.Validate, "validate", false, "check that every output document loads on its own before writing it")
	fs.BoolVar(&flags.DryRun, "dry-run", false, "report the categories without writing files")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: suppress progress output")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: suppress progress output")
	fs.BoolVar(&flags.Verbose, "v", false, "verbose mode: log debug events to stderr")
	fs.BoolVar(&flags.Verbose, "verbose", false, "verbose mode: log debug events to stderr")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oasplit split [flags] [input] [output-dir]\n\n")
		cliutil.Writef(fs.Output(), "Split an OpenAPI 3.x document into one document per operation tag.\n\n")
		cliutil.Writef(fs.Output(), "Arguments:\n")
		cliutil.Writef(fs.Output(), "  input       source document (default: %s)\n", DefaultInput)
		cliutil.Writef(fs.Output(), "  output-dir  directory for the category files (default: %s)\n\n", DefaultOutputDir)
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  oasplit split\n")
		cliutil.Writef(fs.Output(), "  oasplit split api.yaml out\n")
		cliutil.Writef(fs.Output(), "  oasplit split --format json --security-schemes source api.yaml out\n")
		cliutil.Writef(fs.Output(), "  oasplit split --dry-run api.yaml\n")
		cliutil.Writef(fs.Output(), "\nNotes:\n")
		cliutil.Writef(fs.Output(), "  - Each operation goes to the category named by its first tag\n")
		cliutil.Writef(fs.Output(), "  - Operations without tags are left out\n")
		cliutil.Writef(fs.Output(), "  - Existing files are overwritten with restrictive permissions (0600)\n")
	}

	return fs, flags
}

// config builds the splitter configuration selected by the flags.
func (f *SplitFlags) config(logger *slog.Logger) splitter.Config {
	cfg := splitter.DefaultConfig()
	cfg.Format = splitter.Format(f.Format)
	cfg.BaseTitle = f.Title
	cfg.SecuritySchemes = splitter.SecuritySchemes(f.SecuritySchemes)
	cfg.PathItemFields = f.PathItemFields
	cfg.AllComponents = f.AllComponents
	cfg.Concurrency = f.Concurrency
	cfg.ValidateOutput = f.Validate
	cfg.Logger = logger
	return cfg
}

// HandleSplit executes the split command
func HandleSplit(args []string) error {
	return runSplit(context.Background(), args, os.Stdout, os.Stderr)
}

func runSplit(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	set, flags := SetupSplitFlags()
	set.SetOutput(stderr)

	if err := set.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if set.NArg() > 2 {
		set.Usage()
		return fmt.Errorf("split command takes at most an input file and an output directory")
	}
	inputPath, outputDir := DefaultInput, DefaultOutputDir
	if set.NArg() > 0 {
		inputPath = set.Arg(0)
	}
	if set.NArg() > 1 {
		outputDir = set.Arg(1)
	}

	logger := slog.New(slog.DiscardHandler)
	if flags.Verbose {
		logger = slog.New(tint.NewHandler(stderr, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.TimeOnly,
		}))
	}
	out := cliutil.NewReporter(stdout, flags.Quiet)

	info, err := os.Stat(inputPath)
	if errors.Is(err, fs.ErrNotExist) {
		return &InputNotFoundError{Path: inputPath}
	}
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	out.Printf("Loading %s (%s)\n", inputPath, humanize.Bytes(uint64(info.Size())))

	src, err := parser.ParseWithOptions(parser.WithFilePath(inputPath))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &InputNotFoundError{Path: inputPath}
		}
		return fmt.Errorf("parsing input: %w", err)
	}

	cfg := flags.config(logger)
	cfg.WriteHandler = func(f splitter.WrittenFile) {
		out.Printf("  %s: %d paths, %d operations, %d schemas (%s)\n",
			filepath.Base(f.Path), f.PathCount, f.OperationCount, f.SchemaCount, humanize.Bytes(uint64(f.Size)))
	}
	s := splitter.New(cfg)

	result, err := s.Split(src)
	if err != nil {
		return err
	}
	reportPlan(out, result)

	if flags.DryRun {
		for _, c := range result.Categories {
			out.Printf("  would write %s/%s\n", outputDir, c.FileName)
		}
		out.Printf("Dry run: no files written\n")
		return nil
	}

	out.Printf("Writing to %s/...\n", outputDir)
	written, err := s.WriteResult(ctx, result, outputDir)
	if err != nil {
		return err
	}
	out.Printf("Done! Generated %d files in %s/\n", len(written), outputDir)
	return nil
}

func reportPlan(out *cliutil.Reporter, result *splitter.SplitResult) {
	out.Printf("Found %d schemas\n", result.SchemaCount)
	out.Printf("Found %d categories:\n", len(result.Categories))
	for _, c := range result.CategoriesBySize() {
		out.Printf("  - %s: %d paths, %d operations\n", c.Name, c.PathCount, c.OperationCount)
	}
	if n := len(result.Unlabeled); n > 0 {
		out.Printf("Skipped %d operations without tags\n", n)
	}
}
