package moderation

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var deaccenter = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func stripDiacritics(s string) string {
	out, _, err := transform.String(deaccenter, s)
	if err != nil {
		return s
	}
	return out
}

// Slugify derives a URL-safe identifier: lowercase, diacritics stripped,
// non-alphanumeric runs collapsed to a single hyphen, no leading or
// trailing hyphen. Deterministic; uniqueness is the store's problem.
func Slugify(s string) string {
	s = stripDiacritics(strings.ToLower(s))
	var b strings.Builder
	prevHyphen := true // swallow leading separators
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			prevHyphen = false
		} else if !prevHyphen {
			b.WriteByte('-')
			prevHyphen = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}
