package analysis

import (
	"testing"

	"github.com/Ybranco/soprema-reconquest/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEligibleCustomers(t *testing.T) {
	summaries := []model.CustomerSummary{
		{Name: "Gros client", CompetitorAmount: 6000},
		{Name: "Client moyen", CompetitorAmount: 1000},
		{Name: "Petit client", CompetitorAmount: 500},
	}

	eligible := EligibleCustomers(summaries, DefaultMinCompetitorAmount)

	require.Len(t, eligible, 1)
	assert.Equal(t, "Gros client", eligible[0].Name)
}

func TestEligibleCustomersThresholdIsInclusive(t *testing.T) {
	summaries := []model.CustomerSummary{
		{Name: "Au seuil", CompetitorAmount: 5000},
	}

	eligible := EligibleCustomers(summaries, 5000)
	assert.Len(t, eligible, 1)
}

func TestEligibleCustomersDoesNotMutate(t *testing.T) {
	summaries := []model.CustomerSummary{
		{Name: "A", CompetitorAmount: 9000, TotalAmount: 12000},
	}

	eligible := EligibleCustomers(summaries, 5000)

	require.Len(t, eligible, 1)
	assert.Equal(t, summaries[0], eligible[0])
	assert.InDelta(t, 12000, summaries[0].TotalAmount, 1e-6)
}

func TestFilterInvoicesForReconquest(t *testing.T) {
	invoices := []model.Invoice{
		{
			ID: "with-competitor",
			Products: []model.InvoiceLine{
				{Designation: "SOPRALENE", TotalPrice: 100, IsSoprema: true},
				{Designation: "IKO base", TotalPrice: 50, IsCompetitor: true},
			},
		},
		{
			ID: "host-only",
			Products: []model.InvoiceLine{
				{Designation: "ALSAN RS", TotalPrice: 300, Type: model.ProductTypeSoprema},
			},
		},
		{
			ID: "typed-competitor",
			Products: []model.InvoiceLine{
				{Designation: "Axter", TotalPrice: 80, Type: model.ProductTypeCompetitor},
			},
		},
		{ID: "empty"},
	}

	kept := FilterInvoicesForReconquest(invoices)

	require.Len(t, kept, 2)
	assert.Equal(t, "with-competitor", kept[0].ID)
	assert.Equal(t, "typed-competitor", kept[1].ID)
}
