// Package textutil provides the text normalization and string distance
// primitives shared by the classifier and the catalog matcher.
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var diacriticsStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// StripDiacritics removes combining marks so "éco" and "eco" compare equal.
func StripDiacritics(s string) string {
	out, _, err := transform.String(diacriticsStripper, s)
	if err != nil {
		return s
	}
	return out
}

// Fold lowercases, strips diacritics and collapses whitespace. It is the
// normalization applied before keyword matching in the line classifier.
func Fold(s string) string {
	s = strings.ToLower(StripDiacritics(s))
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeName prepares a product name for catalog comparison: uppercase,
// diacritics stripped, every non-alphanumeric run replaced by a single space.
func NormalizeName(s string) string {
	s = strings.ToUpper(StripDiacritics(s))

	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
			continue
		}
		space = true
	}
	return b.String()
}

// Tokens splits a normalized name on whitespace, keeping only tokens longer
// than two characters. Short tokens add noise to overlap scoring.
func Tokens(s string) []string {
	fields := strings.Fields(s)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) > 2 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
