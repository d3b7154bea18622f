// Package cleaner normalizes extracted page text.
package cleaner

import (
	"strings"
	"unicode"
)

// Clean drops every rune outside the allow-list (letters, numbers, underscore,
// whitespace and . , ! ? ; : ( ) -), collapses whitespace runs to a single
// space and trims the result. Clean(Clean(s)) == Clean(s).
func Clean(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if allowed(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.FieldsFunc(b.String(), isSpace), " ")
}

func allowed(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsNumber(r) || isSpace(r) {
		return true
	}
	switch r {
	case '_', '.', ',', '!', '?', ';', ':', '(', ')', '-':
		return true
	}
	return false
}

// isSpace also accepts the ASCII file/group/record/unit separators.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}
