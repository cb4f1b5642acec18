package classify

import (
	"github.com/Ybranco/soprema-reconquest/internal/model"
)

// FilterResult is the partition produced by FilterLines.
type FilterResult struct {
	ProductLines    []model.InvoiceLine
	NonProductLines []model.RemovedLine
	Summary         FilterSummary
}

// FilterSummary carries the statistics of one filtering pass.
//
// Categories counts non-product lines per category; product_exception lines
// are products and never appear in it. TotalNonProductAmount preserves sign,
// so discounts subtract.
type FilterSummary struct {
	Categories            map[model.LineCategory]int
	TotalLines            int
	ProductCount          int
	NonProductCount       int
	TotalProductAmount    float64
	TotalNonProductAmount float64
}

// FilterLines classifies every line and partitions products from charges.
// A nil slice is treated as an empty invoice.
func FilterLines(lines []model.InvoiceLine) FilterResult {
	result := FilterResult{
		Summary: FilterSummary{
			Categories: make(map[model.LineCategory]int),
			TotalLines: len(lines),
		},
	}

	for i := range lines {
		line := lines[i]
		c := Classify(&line)
		if c.IsProduct {
			result.ProductLines = append(result.ProductLines, line)
			result.Summary.ProductCount++
			result.Summary.TotalProductAmount += line.TotalPrice
			continue
		}

		category := c.Category
		if category == "" {
			// Invalid or empty lines have no category; keep them visible in
			// the audit trail under fees-like bucket-less removal.
			category = model.LineCategory("invalid")
		}
		result.NonProductLines = append(result.NonProductLines, model.RemovedLine{
			Line:     line,
			Category: category,
		})
		result.Summary.NonProductCount++
		result.Summary.TotalNonProductAmount += line.TotalPrice
		result.Summary.Categories[category]++
	}

	return result
}

// CleanInvoice returns a derived invoice whose products are only the lines
// classified as genuine products, with totals recomputed from those lines.
// The input invoice is not mutated.
func CleanInvoice(invoice model.Invoice) model.Invoice {
	filtered := FilterLines(invoice.Products)

	cleaned := invoice
	cleaned.Products = filtered.ProductLines
	cleaned.TotalProductsOnly = filtered.Summary.TotalProductAmount
	cleaned.Filtering = &model.FilteringStats{
		OriginalProductCount: filtered.Summary.TotalLines,
		FilteredProductCount: filtered.Summary.ProductCount,
		RemovedLines:         filtered.NonProductLines,
	}
	return cleaned
}
