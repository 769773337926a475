// Package normalize produces canonical comparison keys for place-name matching.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Key returns the canonical comparison form of raw: NFC-composed, with Thai
// tone/vowel combining marks and Latin combining diacritics stripped,
// lower-cased, and with whitespace runs collapsed to single spaces.
// Keys are for comparison only and are never displayed.
//
// Key is pure and total: empty input yields an empty key, and
// Key(Key(x)) == Key(x) for all x.
func Key(raw string) string {
	if raw == "" {
		return ""
	}

	// Compose first so input arriving in decomposed form is canonical, then
	// decompose to expose combining marks for the range filter.
	composed := norm.NFC.String(raw)
	decomposed := norm.NFD.String(composed)

	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if isStrippedMark(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}

	return collapseWhitespace(norm.NFC.String(b.String()))
}

// isStrippedMark reports whether r is a combining mark removed from keys.
// The filter is a fixed code-point-range check applied to every input; it is
// a no-op for characters outside these ranges, so no language detection is
// needed before normalizing. Above/below vowels (sara i..sara uu) are kept:
// they distinguish real words, while tone marks are the usual typo noise.
func isStrippedMark(r rune) bool {
	switch {
	case r >= 0x0E47 && r <= 0x0E4E: // maitaikhu, tone marks, thanthakhat, nikhahit, yamakkan
		return true
	case r >= 0x0300 && r <= 0x036F: // Latin combining diacritical marks
		return true
	}
	return false
}

func collapseWhitespace(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}
