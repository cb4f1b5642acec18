package pipeline

import (
	"context"
	"testing"

	"github.com/Ybranco/soprema-reconquest/internal/catalog"
	"github.com/Ybranco/soprema-reconquest/internal/common"
	"github.com/Ybranco/soprema-reconquest/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMatcher() *catalog.Catalog {
	return catalog.FromNames([]string{
		"SOPRALENE FLAM 180-25",
		"ELASTOPHENE FLAM 25",
	})
}

func TestRunFullPipeline(t *testing.T) {
	invoices := []model.Invoice{
		{
			ID:     "inv-1",
			Client: model.Client{Name: "Toiture Martin"},
			Products: []model.InvoiceLine{
				{Designation: "ELASTOPHENE FLAM 25", TotalPrice: 2500, IsSoprema: true},
				{Designation: "Membrane IKO", TotalPrice: 6000, IsCompetitor: true},
				{Designation: "Transport", TotalPrice: 120},
			},
		},
		{
			ID:     "inv-2",
			Client: model.Client{Name: "Couverture Bernard"},
			Products: []model.InvoiceLine{
				{Designation: "SOPRALENE FLAM 180-25", TotalPrice: 1500, IsCompetitor: true},
			},
		},
	}

	p := New(testMatcher())
	result, err := p.Run(context.Background(), invoices)
	require.NoError(t, err)

	// Transport line dropped, catalog product reclassified.
	assert.Equal(t, 1, result.RemovedLines)
	assert.Equal(t, 1, result.ReclassifiedLines)

	require.Len(t, result.Customers, 2)
	assert.Equal(t, "Toiture Martin", result.Customers[0].Name)
	assert.InDelta(t, 6000, result.Customers[0].CompetitorAmount, 1e-6)

	// Bernard's only line was reclassified to host brand.
	assert.InDelta(t, 0, result.Customers[1].CompetitorAmount, 1e-6)
	assert.InDelta(t, 1500, result.Customers[1].SopremaAmount, 1e-6)

	require.Len(t, result.Eligible, 1)
	assert.Equal(t, "Toiture Martin", result.Eligible[0].Name)
}

func TestRunWithoutMatcherKeepsExtractedClassification(t *testing.T) {
	invoices := []model.Invoice{
		{
			Client: model.Client{Name: "Sans catalogue"},
			Products: []model.InvoiceLine{
				{Designation: "SOPRALENE FLAM 180-25", TotalPrice: 900, IsCompetitor: true},
			},
		},
	}

	p := New(nil, WithMinCompetitorAmount(500))
	result, err := p.Run(context.Background(), invoices)
	require.NoError(t, err)

	assert.Zero(t, result.ReclassifiedLines)
	require.Len(t, result.Eligible, 1)
	assert.InDelta(t, 900, result.Eligible[0].CompetitorAmount, 1e-6)
}

func TestRunCatalogUnavailableIsFatal(t *testing.T) {
	c := catalog.New("/nonexistent/a.json", "/nonexistent/b.json")
	p := New(c)

	_, err := p.Run(context.Background(), []model.Invoice{
		{Products: []model.InvoiceLine{{Designation: "SOPRALENE", TotalPrice: 10}}},
	})
	assert.ErrorIs(t, err, common.ErrCatalogUnavailable)
}

func TestRunNoInvoices(t *testing.T) {
	p := New(testMatcher())

	_, err := p.Run(context.Background(), nil)
	assert.ErrorIs(t, err, common.ErrNoInvoices)
}

func TestRunReportsProgress(t *testing.T) {
	var calls []int
	p := New(nil, WithProgress(func(done, total int) {
		assert.Equal(t, 3, total)
		calls = append(calls, done)
	}))

	invoices := make([]model.Invoice, 3)
	for i := range invoices {
		invoices[i] = model.Invoice{Client: model.Client{Name: "X"}}
	}

	_, err := p.Run(context.Background(), invoices)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, calls)
}

func TestRunHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := New(nil)
	_, err := p.Run(ctx, []model.Invoice{{}})
	assert.ErrorIs(t, err, context.Canceled)
}
