package utils

import (
	"strings"
	"unicode"
)

// Slugify lowers free text to a lowercase ASCII hyphen-separated token safe
// for filename interpolation. "Math 101" becomes "math-101". Whitespace runs
// and hyphens collapse to a single hyphen, underscores survive, everything
// else is dropped.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	var b strings.Builder
	lastHyphen := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '_':
			b.WriteRune(r)
			lastHyphen = false
		case unicode.IsSpace(r) || r == '-':
			if !lastHyphen && b.Len() > 0 {
				b.WriteRune('-')
				lastHyphen = true
			}
		default:
			// Non-ASCII and punctuation are dropped.
		}
	}

	return strings.TrimRight(b.String(), "-")
}
