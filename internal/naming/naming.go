package naming

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ToKebabCase converts a camel-case label to lowercase with hyphens at each
// lower-to-upper boundary.
//
//	TraceManagement -> trace-management
//	APIKeys         -> apikeys
//	scoreConfigs    -> score-configs
//	Über            -> über
func ToKebabCase(s string) string {
	// A Caser keeps state, so each call gets its own.
	return cases.Lower(language.Und).String(SplitCamelBoundaries(s, '-'))
}

// SplitCamelBoundaries inserts sep between an ASCII lowercase letter and an
// immediately following ASCII uppercase letter. Nothing else is changed.
func SplitCamelBoundaries(s string, sep rune) string {
	var b strings.Builder
	b.Grow(len(s) + 4)

	var prev rune
	for i, r := range s {
		if i > 0 && isASCIILower(prev) && isASCIIUpper(r) {
			b.WriteRune(sep)
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}

func isASCIILower(r rune) bool { return r >= 'a' && r <= 'z' }

func isASCIIUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
