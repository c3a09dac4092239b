// Package naming derives file names from category labels.
//
// A label such as "TraceManagement" becomes "trace-management": a hyphen is
// inserted wherever an ASCII lowercase letter is directly followed by an
// ASCII uppercase letter, and the result is lowercased with Unicode-aware
// casing. Labels that are already lowercase, or that use other separators,
// pass through unchanged apart from the lowercasing.
//
// As an internal package, these functions are not part of the public API
// and may change without notice.
package naming
