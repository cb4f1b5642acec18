package catalog

import "strings"

// brandKeywords lists host-brand name fragments and product-line prefixes,
// in the normalized (uppercase, accent-free) form used for matching.
func brandKeywords() []string {
	return []string{
		"SOPREMA",
		"SOPRALENE",
		"ELASTOPHENE",
		"SOPRADUR",
		"SOPRAVOILE",
		"SOPRASTICK",
		"SOPRAFIX",
		"SOPRACOLLE",
		"SOPRASOLAR",
		"ALSAN",
		"FLAGON",
		"MAMMOUTH",
		"EFYOS",
		"PAVATEX",
		"SOPRA",
	}
}

// findKeyword returns the first brand keyword contained in the normalized
// candidate, or "" when none is present.
func findKeyword(normalized string) string {
	for _, kw := range brandKeywords() {
		if strings.Contains(normalized, kw) {
			return kw
		}
	}
	return ""
}
