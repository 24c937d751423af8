// Package parse holds text, date, and classification helpers shared by the
// source adapters.
package parse

import (
	"html"
	"strings"
)

// CleanText unescapes HTML entities and collapses all runs of whitespace to
// single spaces.
func CleanText(text string) string {
	if text == "" {
		return ""
	}
	text = html.UnescapeString(text)
	return strings.Join(strings.Fields(text), " ")
}

// Truncate shortens text to at most max characters, cutting at a word
// boundary and appending "..." when anything was removed.
func Truncate(text string, max int) string {
	if max <= 0 || len(text) <= max {
		return text
	}
	cut := text[:max]
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return cut + "..."
}
