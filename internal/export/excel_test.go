package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/Ybranco/soprema-reconquest/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestCustomersXLSX(t *testing.T) {
	summaries := []model.CustomerSummary{
		{Name: "Gros client", InvoiceCount: 3, TotalAmount: 12000, SopremaAmount: 4000, CompetitorAmount: 8000},
		{Name: "Petit client", InvoiceCount: 1, TotalAmount: 700, SopremaAmount: 500, CompetitorAmount: 200},
	}

	data, err := CustomersXLSX(summaries, 5000)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Clients")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Client", rows[0][0])
	assert.Equal(t, "Gros client", rows[1][0])
	assert.Equal(t, "TRUE", rows[1][5])
	assert.Equal(t, "FALSE", rows[2][5])
}

func TestCustomersXLSXEmpty(t *testing.T) {
	data, err := CustomersXLSX(nil, 5000)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestDefaultFilename(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "reconquest-clients-2026-08-31.xlsx", DefaultFilename(now))
}
