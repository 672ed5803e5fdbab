package domain

import (
	"strings"
	"unicode"
)

// Slugify derives a URL-safe slug from a title:
//   - lowercase
//   - whitespace and underscores collapse into single hyphens
//   - everything that is not a letter, digit, or hyphen is stripped
//   - runs of hyphens collapse, leading/trailing hyphens are trimmed
//
// Derivation is deterministic: equal titles always produce equal slugs.
func Slugify(title string) string {
	title = strings.ToLower(strings.TrimSpace(title))
	if title == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(title))
	prevHyphen := false
	for _, r := range title {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			prevHyphen = false
		case unicode.IsSpace(r) || r == '_' || r == '-':
			if prevHyphen {
				continue
			}
			b.WriteByte('-')
			prevHyphen = true
		}
		// Everything else is dropped.
	}

	return strings.Trim(b.String(), "-")
}

// NormalizeTitle prepares a title for case-insensitive uniqueness
// comparison: trimmed, lowercased, inner whitespace collapsed to single
// spaces.
func NormalizeTitle(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return ""
	}
	title = strings.ToLower(title)

	var b strings.Builder
	b.Grow(len(title))
	prevSpace := false
	for _, r := range title {
		if unicode.IsSpace(r) {
			if prevSpace {
				continue
			}
			b.WriteByte(' ')
			prevSpace = true
			continue
		}
		prevSpace = false
		b.WriteRune(r)
	}
	return b.String()
}
