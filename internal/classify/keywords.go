package classify

import "github.com/Ybranco/soprema-reconquest/internal/model"

// keywordRule maps a non-product category to the designation keywords that
// select it. Rules are evaluated in order; the first hit wins.
type keywordRule struct {
	Category model.LineCategory
	Keywords []string
}

// All keywords below are stored pre-folded: lowercase, no diacritics.

// exclusionRules returns the ordered non-product keyword rules.
func exclusionRules() []keywordRule {
	return []keywordRule{
		{
			Category: model.CategoryTransport,
			Keywords: []string{
				"transport",
				"port et emballage",
				"frais de port",
				"livraison",
				"acheminement",
				"affretement",
				"camion",
			},
		},
		{
			Category: model.CategoryTaxes,
			Keywords: []string{
				"eco-taxe",
				"eco taxe",
				"ecotaxe",
				"eco-participation",
				"eco participation",
				"eco-contribution",
				"tva",
				"deee",
				"taxe",
			},
		},
		{
			Category: model.CategoryServices,
			Keywords: []string{
				"main d'oeuvre",
				"main d oeuvre",
				"installation",
				"formation",
				"assistance pose",
				"prestation",
				"mise en service",
				"etude technique",
			},
		},
		{
			Category: model.CategoryDiscounts,
			Keywords: []string{
				"remise",
				"rabais",
				"ristourne",
				"avoir",
				"escompte",
			},
		},
		{
			Category: model.CategoryFees,
			Keywords: []string{
				"frais de dossier",
				"frais de gestion",
				"frais administratif",
				"frais financier",
			},
		},
	}
}

// productExceptionPhrases lists designations that contain an excluded keyword
// but are known to name genuine products.
func productExceptionPhrases() []string {
	return []string{
		"transport de chaleur",
		"frais bitume",
		"eco membrane",
		"barriere de transport de vapeur",
	}
}

// productIndicators lists host-brand product tokens. A designation carrying
// one of these is a product even when it also matches an exclusion keyword.
func productIndicators() []string {
	return []string{
		"soprema",
		"sopralene",
		"elastophene",
		"sopradur",
		"sopravoile",
		"soprastick",
		"soprafix",
		"sopraxps",
		"sopracolle",
		"alsan",
		"flagon",
		"mammouth",
		"efyos",
		"pavatex",
		"isolant",
		"etancheite",
		"membrane",
	}
}

// negativeAmountCues are generic credit phrasings that only count as a
// discount when the line amount is negative.
func negativeAmountCues() []string {
	return []string{
		"geste commercial",
		"regularisation",
		"deduction",
	}
}
