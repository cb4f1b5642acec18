package analysis

import "github.com/Ybranco/soprema-reconquest/internal/model"

// DefaultMinCompetitorAmount is the competitor exposure below which a
// customer is not worth a reconquest plan.
const DefaultMinCompetitorAmount = 5000.0

// FilterInvoicesForReconquest keeps only invoices that contain at least one
// competitor-flagged product line. Runs before aggregation to drop invoices
// that cannot contribute competitor exposure.
func FilterInvoicesForReconquest(invoices []model.Invoice) []model.Invoice {
	kept := make([]model.Invoice, 0, len(invoices))
	for i := range invoices {
		for _, line := range invoices[i].Products {
			if line.CompetitorFlagged() {
				kept = append(kept, invoices[i])
				break
			}
		}
	}
	return kept
}

// EligibleCustomers filters summaries down to those whose competitor
// exposure meets the threshold. Summaries are not mutated, only selected.
func EligibleCustomers(summaries []model.CustomerSummary, minCompetitorAmount float64) []model.CustomerSummary {
	eligible := make([]model.CustomerSummary, 0, len(summaries))
	for _, s := range summaries {
		if s.CompetitorAmount >= minCompetitorAmount {
			eligible = append(eligible, s)
		}
	}
	return eligible
}
