// Package analysis aggregates verified invoices into per-customer
// competitive exposure and selects the customers worth a reconquest plan.
package analysis

import (
	"sort"
	"strings"

	"github.com/Ybranco/soprema-reconquest/internal/model"
)

// ClientAnalysisDetails groups invoices by customer and sums their exposure.
//
// Output is one summary per distinct customer, sorted by competitor amount
// descending; ties keep first-encounter order. Malformed invoices degrade to
// zero-valued fields, they never abort the aggregation.
func ClientAnalysisDetails(invoices []model.Invoice) []model.CustomerSummary {
	byName := make(map[string]*model.CustomerSummary)
	order := make([]string, 0, len(invoices))

	for i := range invoices {
		name := customerName(invoices[i])

		summary, ok := byName[name]
		if !ok {
			summary = &model.CustomerSummary{Name: name}
			byName[name] = summary
			order = append(order, name)
		}

		summary.InvoiceCount++

		for _, line := range invoices[i].Products {
			summary.TotalAmount += line.TotalPrice
			switch {
			case line.SopremaFlagged():
				summary.SopremaAmount += line.TotalPrice
			case line.CompetitorFlagged():
				summary.CompetitorAmount += line.TotalPrice
			}
		}
	}

	summaries := make([]model.CustomerSummary, 0, len(order))
	for _, name := range order {
		summaries = append(summaries, *byName[name])
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].CompetitorAmount > summaries[j].CompetitorAmount
	})
	return summaries
}

// customerName resolves the aggregation key for an invoice. The ingest
// adapter already folds the extractor's client shapes into Client.Name, so
// only blankness is handled here.
func customerName(invoice model.Invoice) string {
	if name := strings.TrimSpace(invoice.Client.Name); name != "" {
		return name
	}
	return model.UnknownCustomer
}
