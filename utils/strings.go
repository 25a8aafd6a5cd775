package utils

import (
	"strings"
	"unicode"
)

// SlugTag lowercases a value and strips everything that is not a letter
// or digit, so filename segments never carry separators of their own.
func SlugTag(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ShortCodeTag uppercases a name, keeps only letters and digits, then
// truncates or right-pads with 'X' to exactly width characters.
func ShortCodeTag(s string, width int) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(strings.TrimSpace(s)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
		if b.Len() >= width {
			break
		}
	}
	out := b.String()
	for len(out) < width {
		out += "X"
	}
	return out
}
