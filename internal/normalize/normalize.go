// Package normalize prepares free-text answers for comparison.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Answer case-folds s, strips diacritics, trims it and collapses inner whitespace.
// Answer(Answer(s)) == Answer(s).
func Answer(s string) string {
	// Folding first: some folds emit combining marks (İ -> i + U+0307) that the
	// next step has to see.
	s = cases.Fold().String(s)

	// Transformers keep state, so the chain is built per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if stripped, _, err := transform.String(t, s); err == nil {
		s = stripped
	}

	return strings.Join(strings.Fields(s), " ")
}

// Equal reports whether a and b are the same answer after normalization.
func Equal(a, b string) bool {
	return Answer(a) == Answer(b)
}
