// Package normalize cleans user-supplied catalog text before it is stored.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Name normalizes a single-line label such as a title or artist name.
// The result is NFC composed, trimmed, and has inner whitespace runs
// collapsed to one space, so "Beyoncé  " and "Beyoncé" store the same.
func Name(s string) string {
	s = norm.NFC.String(s)

	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			space = true
			continue
		}
		if space && b.Len() > 0 {
			b.WriteByte(' ')
		}
		space = false
		b.WriteRune(r)
	}
	return b.String()
}

// Text normalizes free-form text such as a bio or description.
// Line breaks are kept; only the ends are trimmed.
func Text(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}

// Email lowercases and trims an address. Uniqueness checks compare the
// normalized form.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
