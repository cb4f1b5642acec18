package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Ybranco/soprema-reconquest/internal/common"
	"github.com/Ybranco/soprema-reconquest/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	s, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "reconquest.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func TestMigrateIsIdempotent(t *testing.T) {
	s := newTestStorage(t)
	require.NoError(t, s.Migrate(context.Background()))
}

func TestSaveAndGetInvoices(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	invoices := []model.Invoice{
		{
			ID:                "inv-1",
			Number:            "F2024-0042",
			Client:            model.Client{Name: "Toiture Martin", Address: "12 rue des Couvreurs"},
			Supplier:          "Point P",
			TotalAmount:       4300,
			TotalProductsOnly: 4300,
			Products: []model.InvoiceLine{
				{Designation: "ELASTOPHENE FLAM 25", TotalPrice: 2500, IsSoprema: true, Type: model.ProductTypeSoprema},
				{Designation: "Membrane IKO", TotalPrice: 1800, IsCompetitor: true, Type: model.ProductTypeCompetitor},
			},
		},
		{
			ID:     "inv-2",
			Client: model.Client{Name: ""},
		},
	}

	require.NoError(t, s.SaveInvoices(ctx, invoices))

	got, err := s.GetInvoices(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "inv-1", got[0].ID)
	assert.Equal(t, "Toiture Martin", got[0].Client.Name)
	require.Len(t, got[0].Products, 2)
	assert.Equal(t, model.ProductTypeCompetitor, got[0].Products[1].Type)
	assert.True(t, got[0].Products[1].IsCompetitor)

	// A blank client is stored under the sentinel name.
	assert.Equal(t, model.UnknownCustomer, got[1].Client.Name)
	assert.Empty(t, got[1].Products)
}

func TestSaveInvoicesReplacesLinesOnReimport(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	first := []model.Invoice{{
		ID:     "inv-1",
		Client: model.Client{Name: "Client"},
		Products: []model.InvoiceLine{
			{Designation: "A", TotalPrice: 1},
			{Designation: "B", TotalPrice: 2},
		},
	}}
	require.NoError(t, s.SaveInvoices(ctx, first))

	second := []model.Invoice{{
		ID:     "inv-1",
		Client: model.Client{Name: "Client"},
		Products: []model.InvoiceLine{
			{Designation: "C", TotalPrice: 3},
		},
	}}
	require.NoError(t, s.SaveInvoices(ctx, second))

	got, err := s.GetInvoices(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Len(t, got[0].Products, 1)
	assert.Equal(t, "C", got[0].Products[0].Designation)
}

func TestSaveInvoicesValidation(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	assert.ErrorIs(t, s.SaveInvoices(ctx, nil), ErrNilParameter)
	assert.ErrorIs(t, s.SaveInvoices(ctx, []model.Invoice{}), ErrEmptySlice)
	assert.ErrorIs(t, s.SaveInvoices(ctx, []model.Invoice{{}}), ErrInvalidInvoice)
}

func TestSaveAndGetLatestAnalysis(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	run := &model.AnalysisRun{
		MinCompetitorAmount: 5000,
		Customers: []model.CustomerSummary{
			{Name: "Gros client", InvoiceCount: 3, TotalAmount: 12000, SopremaAmount: 4000, CompetitorAmount: 8000},
			{Name: "Petit client", InvoiceCount: 1, TotalAmount: 700, SopremaAmount: 500, CompetitorAmount: 200},
		},
		Eligible: map[string]bool{"Gros client": true},
	}

	id, err := s.SaveAnalysis(ctx, run)
	require.NoError(t, err)
	assert.Positive(t, id)

	got, err := s.GetLatestAnalysis(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 5000, got.MinCompetitorAmount, 1e-6)
	require.Len(t, got.Customers, 2)
	assert.Equal(t, "Gros client", got.Customers[0].Name)
	assert.True(t, got.Eligible["Gros client"])
	assert.False(t, got.Eligible["Petit client"])
}

func TestGetLatestAnalysisEmpty(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.GetLatestAnalysis(context.Background())
	assert.ErrorIs(t, err, common.ErrNotFound)
}
