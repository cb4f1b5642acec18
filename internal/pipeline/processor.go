// Package pipeline composes the full analysis flow: clean each invoice,
// verify its products against the catalog, aggregate per customer and select
// the customers eligible for a reconquest plan.
package pipeline

import (
	"context"
	"errors"

	"github.com/Ybranco/soprema-reconquest/internal/analysis"
	"github.com/Ybranco/soprema-reconquest/internal/classify"
	"github.com/Ybranco/soprema-reconquest/internal/common"
	"github.com/Ybranco/soprema-reconquest/internal/model"
	"github.com/Ybranco/soprema-reconquest/internal/verify"
)

// Processor runs the invoice analysis pipeline.
type Processor struct {
	verifier            *verify.Verifier
	onInvoice           func(done, total int)
	minCompetitorAmount float64
}

// Option configures a Processor.
type Option func(*Processor)

// WithMinCompetitorAmount overrides the plan-eligibility threshold.
func WithMinCompetitorAmount(amount float64) Option {
	return func(p *Processor) { p.minCompetitorAmount = amount }
}

// WithProgress registers a callback invoked after each processed invoice.
func WithProgress(fn func(done, total int)) Option {
	return func(p *Processor) { p.onInvoice = fn }
}

// New creates a processor. A nil matcher disables catalog verification;
// invoices then flow through with their extracted classifications.
func New(matcher verify.Matcher, opts ...Option) *Processor {
	p := &Processor{minCompetitorAmount: analysis.DefaultMinCompetitorAmount}
	if matcher != nil {
		p.verifier = verify.New(matcher)
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Result carries everything one pipeline run produces.
type Result struct {
	Invoices            []model.Invoice
	Customers           []model.CustomerSummary
	Eligible            []model.CustomerSummary
	MinCompetitorAmount float64
	ReclassifiedLines   int
	RemovedLines        int
}

// Run processes the given invoices.
//
// Catalog unavailability aborts the run; it is the only fatal error. The
// context is checked between invoices so long batches can be interrupted.
func (p *Processor) Run(ctx context.Context, invoices []model.Invoice) (Result, error) {
	result := Result{MinCompetitorAmount: p.minCompetitorAmount}
	if len(invoices) == 0 {
		return result, common.ErrNoInvoices
	}

	result.Invoices = make([]model.Invoice, 0, len(invoices))
	for i := range invoices {
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		default:
		}

		cleaned := classify.CleanInvoice(invoices[i])
		if cleaned.Filtering != nil {
			result.RemovedLines += len(cleaned.Filtering.RemovedLines)
		}

		if p.verifier != nil {
			verified, err := p.verifier.VerifyProducts(cleaned.Products)
			if err != nil {
				if errors.Is(err, common.ErrCatalogUnavailable) {
					return Result{}, err
				}
				common.LogError(err, "verification failed for invoice, keeping extracted classification", common.Fields{
					"invoice": cleaned.ID,
				})
			} else {
				cleaned.Products = verified.Products
				cleaned.Verification = &verified.Summary
				result.ReclassifiedLines += verified.Summary.ReclassifiedCount
			}
		}

		result.Invoices = append(result.Invoices, cleaned)
		if p.onInvoice != nil {
			p.onInvoice(i+1, len(invoices))
		}
	}

	result.Customers = analysis.ClientAnalysisDetails(result.Invoices)
	result.Eligible = analysis.EligibleCustomers(result.Customers, p.minCompetitorAmount)
	return result, nil
}
