package search

import (
	"strings"
)

// Query is a normalized search input. Trimmed is handed to the text
// index as-is (the index does its own case folding); Tokens feed the
// regex fallback stage.
type Query struct {
	Trimmed string
	Tokens  []string
}

// Normalize trims and tokenizes a raw query. ok is false when nothing
// remains after trimming.
func Normalize(raw string) (Query, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Query{}, false
	}
	return Query{
		Trimmed: trimmed,
		Tokens:  strings.Fields(trimmed),
	}, true
}
