package classify

import (
	"testing"

	"github.com/Ybranco/soprema-reconquest/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterLines(t *testing.T) {
	lines := []model.InvoiceLine{
		{Designation: "TRANSPORT", TotalPrice: 150},
		{Designation: "Transport de chaleur isolant", TotalPrice: 1200},
	}

	result := FilterLines(lines)

	require.Len(t, result.ProductLines, 1)
	assert.Equal(t, "Transport de chaleur isolant", result.ProductLines[0].Designation)

	require.Len(t, result.NonProductLines, 1)
	assert.Equal(t, model.CategoryTransport, result.NonProductLines[0].Category)

	assert.Equal(t, 2, result.Summary.TotalLines)
	assert.Equal(t, 1, result.Summary.ProductCount)
	assert.Equal(t, 1, result.Summary.NonProductCount)
	assert.InDelta(t, 1200, result.Summary.TotalProductAmount, 1e-6)
	assert.InDelta(t, 150, result.Summary.TotalNonProductAmount, 1e-6)
	assert.Equal(t, map[model.LineCategory]int{model.CategoryTransport: 1}, result.Summary.Categories)
}

func TestFilterLinesDiscountPreservesSign(t *testing.T) {
	lines := []model.InvoiceLine{
		{Designation: "SOPRALENE FLAM 180", TotalPrice: 2000},
		{Designation: "Remise 10%", TotalPrice: -200},
	}

	result := FilterLines(lines)

	assert.InDelta(t, 2000, result.Summary.TotalProductAmount, 1e-6)
	assert.InDelta(t, -200, result.Summary.TotalNonProductAmount, 1e-6)
	assert.Equal(t, 1, result.Summary.Categories[model.CategoryDiscounts])
}

func TestFilterLinesEmptyAndNil(t *testing.T) {
	for _, lines := range [][]model.InvoiceLine{nil, {}} {
		result := FilterLines(lines)
		assert.Empty(t, result.ProductLines)
		assert.Empty(t, result.NonProductLines)
		assert.Zero(t, result.Summary.TotalProductAmount)
		assert.Empty(t, result.Summary.Categories)
	}
}

func TestFilterLinesExceptionNotCountedAsNonProduct(t *testing.T) {
	lines := []model.InvoiceLine{
		{Designation: "Transport de chaleur isolant", TotalPrice: 500},
	}

	result := FilterLines(lines)

	assert.Len(t, result.ProductLines, 1)
	assert.NotContains(t, result.Summary.Categories, model.CategoryProductException)
}

func TestCleanInvoice(t *testing.T) {
	invoice := model.Invoice{
		ID:          "inv-1",
		Client:      model.Client{Name: "CLIENT ABC"},
		TotalAmount: 9999, // declared total is not trusted
		Products: []model.InvoiceLine{
			{Designation: "ELASTOPHENE FLAM 25", TotalPrice: 2500},
			{Designation: "Frais de port", TotalPrice: 90},
			{Designation: "Eco-taxe", TotalPrice: 3},
		},
	}

	cleaned := CleanInvoice(invoice)

	require.Len(t, cleaned.Products, 1)
	assert.InDelta(t, 2500, cleaned.TotalProductsOnly, 1e-6)

	require.NotNil(t, cleaned.Filtering)
	assert.Equal(t, 3, cleaned.Filtering.OriginalProductCount)
	assert.Equal(t, 1, cleaned.Filtering.FilteredProductCount)
	assert.Len(t, cleaned.Filtering.RemovedLines, 2)

	// Source invoice is left untouched.
	assert.Len(t, invoice.Products, 3)
	assert.Nil(t, invoice.Filtering)
}

// Filtering an already-clean invoice changes nothing.
func TestCleanInvoiceIdempotent(t *testing.T) {
	invoice := model.Invoice{
		Products: []model.InvoiceLine{
			{Designation: "SOPRALENE FLAM 180-25", TotalPrice: 1250.50},
			{Designation: "Transport", TotalPrice: 85},
			{Designation: "Membrane IKO", TotalPrice: 990.25},
		},
	}

	once := CleanInvoice(invoice)
	twice := CleanInvoice(once)

	assert.Equal(t, once.Products, twice.Products)
	assert.InDelta(t, once.TotalProductsOnly, twice.TotalProductsOnly, 1e-6)
}

// Recomputed total always equals the sum over retained product lines.
func TestCleanInvoiceSumInvariant(t *testing.T) {
	invoice := model.Invoice{
		Products: []model.InvoiceLine{
			{Designation: "SOPRALENE FLAM 180-25", TotalPrice: 1250.55},
			{Designation: "ALSAN RS 230 FLASH", TotalPrice: 733.4},
			{Designation: "Frais de port", TotalPrice: 65},
			{Designation: "Remise commerciale", TotalPrice: -120.75},
			{Designation: "Membrane IKO base", TotalPrice: 410.8},
		},
	}

	cleaned := CleanInvoice(invoice)

	var sum float64
	for _, p := range cleaned.Products {
		sum += p.TotalPrice
	}
	assert.InDelta(t, sum, cleaned.TotalProductsOnly, 1e-6)
}

func TestCleanInvoiceAllNonProduct(t *testing.T) {
	invoice := model.Invoice{
		Products: []model.InvoiceLine{
			{Designation: "Transport", TotalPrice: 50},
			{Designation: "Frais de dossier", TotalPrice: 30},
		},
	}

	cleaned := CleanInvoice(invoice)

	assert.Empty(t, cleaned.Products)
	assert.Zero(t, cleaned.TotalProductsOnly)
	assert.Len(t, cleaned.Filtering.RemovedLines, 2)
}
