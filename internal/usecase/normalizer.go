package usecase

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// minTokenLength is the shortest token that counts as significant for
// similarity scoring and keyword extraction. Shorter tokens are almost
// always articles or units ("el", "de", "cm") and only add noise.
const minTokenLength = 3

// Normalize canonicalizes a free-text product name for comparison:
// lower-case, diacritics stripped, punctuation removed, whitespace collapsed.
// It is total and idempotent; empty input yields an empty string.
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	// Decompose and drop combining marks so "Lápiz" and "Lapiz" compare equal.
	// The transformer is stateful, so build one per call.
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		out = s
	}

	var b strings.Builder
	b.Grow(len(out))
	for _, r := range strings.ToLower(out) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// significantTokens splits an already-normalized string into the set of
// tokens long enough to carry meaning.
func significantTokens(normalized string) map[string]bool {
	tokens := make(map[string]bool)
	for _, tok := range strings.Fields(normalized) {
		if len([]rune(tok)) >= minTokenLength {
			tokens[tok] = true
		}
	}
	return tokens
}
