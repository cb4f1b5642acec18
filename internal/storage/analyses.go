package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Ybranco/soprema-reconquest/internal/common"
	"github.com/Ybranco/soprema-reconquest/internal/model"
)

// SaveAnalysis persists one aggregation run as a snapshot.
func (s *SQLiteStorage) SaveAnalysis(ctx context.Context, run *model.AnalysisRun) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if run == nil {
		return 0, fmt.Errorf("%w: run", ErrNilParameter)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	eligibleCount := 0
	for _, c := range run.Customers {
		if run.Eligible[c.Name] {
			eligibleCount++
		}
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO analyses (min_competitor_amount, customer_count, eligible_count)
		VALUES (?, ?, ?)
	`, run.MinCompetitorAmount, len(run.Customers), eligibleCount)
	if err != nil {
		return 0, fmt.Errorf("failed to save analysis: %w", err)
	}
	analysisID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get analysis id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO analysis_customers (
			analysis_id, name, invoice_count, total_amount,
			soprema_amount, competitor_amount, eligible
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare customer statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, c := range run.Customers {
		if _, err := stmt.ExecContext(ctx,
			analysisID, c.Name, c.InvoiceCount, c.TotalAmount,
			c.SopremaAmount, c.CompetitorAmount, run.Eligible[c.Name],
		); err != nil {
			return 0, fmt.Errorf("failed to save customer %s: %w", c.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return analysisID, nil
}

// GetLatestAnalysis returns the most recent snapshot, or ErrNotFound when no
// analysis has been saved yet.
func (s *SQLiteStorage) GetLatestAnalysis(ctx context.Context) (*model.AnalysisRun, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	run := &model.AnalysisRun{Eligible: make(map[string]bool)}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, run_at, min_competitor_amount
		FROM analyses
		ORDER BY id DESC
		LIMIT 1
	`).Scan(&run.ID, &run.RunAt, &run.MinCompetitorAmount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest analysis: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT name, invoice_count, total_amount, soprema_amount, competitor_amount, eligible
		FROM analysis_customers
		WHERE analysis_id = ?
		ORDER BY competitor_amount DESC, id
	`, run.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query analysis customers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var c model.CustomerSummary
		var eligible bool
		if err := rows.Scan(&c.Name, &c.InvoiceCount, &c.TotalAmount,
			&c.SopremaAmount, &c.CompetitorAmount, &eligible); err != nil {
			return nil, fmt.Errorf("failed to scan analysis customer: %w", err)
		}
		run.Customers = append(run.Customers, c)
		if eligible {
			run.Eligible[c.Name] = true
		}
	}
	return run, rows.Err()
}
