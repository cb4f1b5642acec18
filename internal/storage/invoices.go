package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Ybranco/soprema-reconquest/internal/model"
)

// SaveInvoices persists invoices and their product lines. Re-importing an
// invoice replaces its lines.
func (s *SQLiteStorage) SaveInvoices(ctx context.Context, invoices []model.Invoice) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateInvoices(invoices); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	invStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO invoices (id, number, client_name, client_address, supplier, total_amount, total_products_only)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			number = excluded.number,
			client_name = excluded.client_name,
			client_address = excluded.client_address,
			supplier = excluded.supplier,
			total_amount = excluded.total_amount,
			total_products_only = excluded.total_products_only
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare invoice statement: %w", err)
	}
	defer func() { _ = invStmt.Close() }()

	lineStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO invoice_lines (
			invoice_id, designation, reference, brand, type,
			is_soprema, is_competitor, total_price, reclassified, confidence
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare line statement: %w", err)
	}
	defer func() { _ = lineStmt.Close() }()

	for i := range invoices {
		inv := invoices[i]

		clientName := inv.Client.Name
		if clientName == "" {
			clientName = model.UnknownCustomer
		}

		if _, err := invStmt.ExecContext(ctx,
			inv.ID, inv.Number, clientName, inv.Client.Address,
			inv.Supplier, inv.TotalAmount, inv.TotalProductsOnly,
		); err != nil {
			return fmt.Errorf("failed to save invoice %s: %w", inv.ID, err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM invoice_lines WHERE invoice_id = ?`, inv.ID); err != nil {
			return fmt.Errorf("failed to clear lines for invoice %s: %w", inv.ID, err)
		}

		for _, line := range inv.Products {
			reclassified := line.Verification != nil && line.Verification.Reclassified
			confidence := 0
			if line.Verification != nil {
				confidence = line.Verification.Confidence
			}
			if _, err := lineStmt.ExecContext(ctx,
				inv.ID, line.Designation, line.Reference, line.Brand, string(line.Type),
				line.IsSoprema, line.IsCompetitor, line.TotalPrice, reclassified, confidence,
			); err != nil {
				return fmt.Errorf("failed to save line for invoice %s: %w", inv.ID, err)
			}
		}
	}

	return tx.Commit()
}

// GetInvoices returns every stored invoice with its product lines.
func (s *SQLiteStorage) GetInvoices(ctx context.Context) ([]model.Invoice, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, number, client_name, client_address, supplier, total_amount, total_products_only
		FROM invoices
		ORDER BY imported_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var invoices []model.Invoice
	for rows.Next() {
		var inv model.Invoice
		var number, address, supplier sql.NullString
		if err := rows.Scan(&inv.ID, &number, &inv.Client.Name, &address, &supplier,
			&inv.TotalAmount, &inv.TotalProductsOnly); err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		inv.Number = number.String
		inv.Client.Address = address.String
		inv.Supplier = supplier.String
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate invoices: %w", err)
	}

	for i := range invoices {
		lines, err := s.getInvoiceLines(ctx, invoices[i].ID)
		if err != nil {
			return nil, err
		}
		invoices[i].Products = lines
	}
	return invoices, nil
}

func (s *SQLiteStorage) getInvoiceLines(ctx context.Context, invoiceID string) ([]model.InvoiceLine, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT designation, reference, brand, type, is_soprema, is_competitor, total_price
		FROM invoice_lines
		WHERE invoice_id = ?
		ORDER BY id
	`, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for %s: %w", invoiceID, err)
	}
	defer func() { _ = rows.Close() }()

	var lines []model.InvoiceLine
	for rows.Next() {
		var line model.InvoiceLine
		var reference, brand, lineType sql.NullString
		if err := rows.Scan(&line.Designation, &reference, &brand, &lineType,
			&line.IsSoprema, &line.IsCompetitor, &line.TotalPrice); err != nil {
			return nil, fmt.Errorf("failed to scan line: %w", err)
		}
		line.Reference = reference.String
		line.Brand = brand.String
		line.Type = model.ProductType(lineType.String)
		lines = append(lines, line)
	}
	return lines, rows.Err()
}
