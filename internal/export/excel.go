// Package export produces XLSX workbooks from analysis results.
package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Ybranco/soprema-reconquest/internal/model"
)

const customersSheet = "Clients"

// CustomersXLSX renders customer summaries as an XLSX workbook.
func CustomersXLSX(summaries []model.CustomerSummary, minCompetitorAmount float64) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	index, err := f.NewSheet(customersSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	headers := []string{
		"Client",
		"Factures",
		"Montant total",
		"Montant SOPREMA",
		"Montant concurrent",
		"Eligible plan de reconquete",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(customersSheet, cell, h); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, s := range summaries {
		values := []any{
			s.Name,
			s.InvoiceCount,
			s.TotalAmount,
			s.SopremaAmount,
			s.CompetitorAmount,
			s.CompetitorAmount >= minCompetitorAmount,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(customersSheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", row+2, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// DefaultFilename returns a dated export filename.
func DefaultFilename(now time.Time) string {
	return fmt.Sprintf("reconquest-clients-%s.xlsx", now.Format("2006-01-02"))
}
