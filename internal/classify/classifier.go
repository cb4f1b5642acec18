// Package classify decides whether invoice lines are genuine products or
// non-product charges, and filters invoices down to product lines only.
package classify

import (
	"strings"

	"github.com/Ybranco/soprema-reconquest/internal/model"
	"github.com/Ybranco/soprema-reconquest/internal/textutil"
)

// ReasonEmptyDesignation is returned for nil lines and blank designations.
const ReasonEmptyDesignation = "designation vide ou invalide"

// Classify decides whether a single invoice line is a real product.
//
// The exception pass runs before every exclusion rule: a product whose name
// happens to contain "transport" must not be filtered out. Ordering here is
// a correctness requirement, not a style choice.
func Classify(line *model.InvoiceLine) model.ClassificationResult {
	if line == nil || strings.TrimSpace(line.Designation) == "" {
		return model.ClassificationResult{
			IsProduct: false,
			Reason:    ReasonEmptyDesignation,
		}
	}

	text := textutil.Fold(line.Designation)

	if isProductException(text) {
		return model.ClassificationResult{
			IsProduct: true,
			Category:  model.CategoryProductException,
		}
	}

	for _, rule := range exclusionRules() {
		if containsAny(text, rule.Keywords) {
			return model.ClassificationResult{
				IsProduct: false,
				Category:  rule.Category,
			}
		}
	}

	// Negative amounts with credit phrasing are discounts even without an
	// explicit discount keyword.
	if line.TotalPrice < 0 && containsAny(text, negativeAmountCues()) {
		return model.ClassificationResult{
			IsProduct: false,
			Category:  model.CategoryDiscounts,
		}
	}

	return model.ClassificationResult{IsProduct: true}
}

// isProductException reports whether a folded designation names a genuine
// product despite matching a non-product keyword.
func isProductException(text string) bool {
	if containsAny(text, productExceptionPhrases()) {
		return true
	}

	// A host-brand or product-indicating token rescues the line only when an
	// exclusion keyword is also present; otherwise it is a plain product and
	// needs no exception.
	if !containsAny(text, productIndicators()) {
		return false
	}
	for _, rule := range exclusionRules() {
		if containsAny(text, rule.Keywords) {
			return true
		}
	}
	return false
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
