package engine

import (
	"strings"
	"unicode/utf8"
)

// Truncate cuts text to at most max runes. A non-positive max returns text
// unchanged.
func Truncate(text string, max int) string {
	if max <= 0 || utf8.RuneCountInString(text) <= max {
		return text
	}
	i := 0
	for n := 0; n < max; n++ {
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
	}
	return text[:i]
}

// Preview collapses whitespace and shortens text to a snippet of at most
// length runes, ending in "..." when cut.
func Preview(text string, length int) string {
	flat := strings.Join(strings.Fields(text), " ")
	if length <= 0 || utf8.RuneCountInString(flat) <= length {
		return flat
	}
	if length <= 3 {
		return Truncate(flat, length)
	}
	return strings.TrimRight(Truncate(flat, length-3), " ") + "..."
}
