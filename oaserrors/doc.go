// Package oaserrors provides structured error types for the oasplit library.
//
// Import path: github.com/erraggy/oasplit/oaserrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// so callers can tell a missing or unreadable input apart from a bad option
// or a failed write.
//
// # Error Types
//
//   - [ParseError]: the input could not be read or is not a YAML/JSON mapping
//   - [ReferenceError]: self-containing YAML aliases and unsafe category file names
//   - [ValidationError]: an emitted document failed standalone validation
//   - [ConfigError]: invalid options or conflicting output file names
//   - [WriteError]: a category document could not be written
//
// # Sentinel Errors
//
//   - [ErrParse]: Matches any [ParseError]
//   - [ErrReference]: Matches any [ReferenceError]
//   - [ErrCircularReference]: Matches [ReferenceError] with IsCircular=true
//   - [ErrPathTraversal]: Matches [ReferenceError] with IsPathTraversal=true
//   - [ErrValidation]: Matches any [ValidationError]
//   - [ErrConfig]: Matches any [ConfigError]
//   - [ErrWrite]: Matches any [WriteError]
//
// A missing input file is a [ParseError] whose cause is [io/fs.ErrNotExist]:
//
//	_, err := parser.Parse("openapi.yml")
//	if errors.Is(err, fs.ErrNotExist) {
//	    // report and exit before processing
//	}
package oaserrors
