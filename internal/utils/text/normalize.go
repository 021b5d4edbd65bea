package text

import "strings"

// NormalizeSpace collapses every run of whitespace (spaces, tabs,
// newlines) into a single space and trims the result. Chunking operates
// on normalized text so that chunk boundaries never depend on the
// original formatting.
func NormalizeSpace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
