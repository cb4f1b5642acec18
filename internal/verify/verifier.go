// Package verify reconciles extracted product classifications against the
// host-brand catalog, reclassifying competitor-tagged lines that are in fact
// catalog products.
package verify

import (
	"errors"

	"github.com/Ybranco/soprema-reconquest/internal/common"
	"github.com/Ybranco/soprema-reconquest/internal/model"
)

// lowConfidenceThreshold flags unmatched host-brand lines for manual review.
const lowConfidenceThreshold = 50

// Matcher is the catalog lookup the verifier depends on.
type Matcher interface {
	FindBestMatch(candidateName string) (model.MatchResult, error)
}

// Result is the outcome of verifying one product list.
type Result struct {
	Products []model.InvoiceLine
	Summary  model.VerificationSummary
}

// Verifier applies catalog verification to extracted product lines.
type Verifier struct {
	matcher Matcher
}

// New creates a verifier backed by the given catalog matcher.
func New(matcher Matcher) *Verifier {
	return &Verifier{matcher: matcher}
}

// VerifyProducts checks every product line against the catalog.
//
// Catalog unavailability aborts the whole pass; any other per-line matcher
// failure is logged and that line is left unverified while the rest proceed.
func (v *Verifier) VerifyProducts(products []model.InvoiceLine) (Result, error) {
	result := Result{
		Products: make([]model.InvoiceLine, 0, len(products)),
		Summary: model.VerificationSummary{
			TotalProducts: len(products),
		},
	}

	for i := range products {
		line := products[i]

		match, err := v.matcher.FindBestMatch(line.Designation)
		if err != nil {
			if errors.Is(err, common.ErrCatalogUnavailable) {
				return Result{}, err
			}
			common.LogError(err, "product verification skipped for line", common.Fields{
				"designation": line.Designation,
			})
			v.countByClassification(&result.Summary, line)
			result.Products = append(result.Products, line)
			continue
		}

		switch {
		case match.Matched && line.CompetitorFlagged():
			// The extractor tagged a catalog product as competitor.
			line.Type = model.ProductTypeSoprema
			line.IsSoprema = true
			line.IsCompetitor = false
			line.Verification = &model.VerificationDetails{
				Reclassified:           true,
				OriginalClassification: string(model.ProductTypeCompetitor),
				MatchedName:            match.MatchedProduct,
				Confidence:             match.Confidence,
				Method:                 match.Method,
				KeywordFound:           match.KeywordFound,
			}
			result.Summary.ReclassifiedCount++
			result.Summary.SopremaTotal += line.TotalPrice

		case !match.Matched && line.SopremaFlagged():
			if match.Confidence < lowConfidenceThreshold {
				line.Verification = &model.VerificationDetails{
					LowConfidence:   true,
					Confidence:      match.Confidence,
					SuggestedReview: true,
				}
			}
			result.Summary.SopremaTotal += line.TotalPrice

		default:
			line.Verification = &model.VerificationDetails{
				Verified:   true,
				Confidence: match.Confidence,
			}
			v.countByClassification(&result.Summary, line)
		}

		result.Products = append(result.Products, line)
	}

	result.Summary.VerificationCompleted = true
	return result, nil
}

func (v *Verifier) countByClassification(summary *model.VerificationSummary, line model.InvoiceLine) {
	switch {
	case line.SopremaFlagged():
		summary.SopremaTotal += line.TotalPrice
	case line.CompetitorFlagged():
		summary.CompetitorTotal += line.TotalPrice
	}
}
