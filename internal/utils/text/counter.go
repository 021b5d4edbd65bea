// Package text provides utilities for text processing and analysis.
// This package includes reusable functions for character counting and
// whitespace normalization shared by the chunking pipeline, the model
// adapters and the HTTP handlers, so that every layer measures length
// the same way.
package text

import "strings"

// CountRunes counts the number of Unicode characters (runes) in the given text.
// This function correctly handles multi-byte characters including Japanese,
// Chinese, emoji, and other Unicode characters by counting runes instead of bytes.
//
// Examples:
//
//	CountRunes("hello")    // returns 5 (ASCII text)
//	CountRunes("こんにちは")  // returns 5 (Japanese text)
//	CountRunes("")         // returns 0 (empty string)
func CountRunes(text string) int {
	return len([]rune(text))
}

// CountWords counts whitespace-separated words in the given text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}
