package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS invoices (
					id TEXT PRIMARY KEY,
					number TEXT,
					client_name TEXT NOT NULL,
					client_address TEXT,
					supplier TEXT,
					total_amount REAL NOT NULL DEFAULT 0,
					total_products_only REAL NOT NULL DEFAULT 0,
					imported_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_invoices_client ON invoices(client_name)`,

				`CREATE TABLE IF NOT EXISTS invoice_lines (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					invoice_id TEXT NOT NULL,
					designation TEXT NOT NULL,
					reference TEXT,
					brand TEXT,
					type TEXT,
					is_soprema BOOLEAN DEFAULT 0,
					is_competitor BOOLEAN DEFAULT 0,
					total_price REAL NOT NULL DEFAULT 0,
					reclassified BOOLEAN DEFAULT 0,
					confidence INTEGER DEFAULT 0,
					FOREIGN KEY (invoice_id) REFERENCES invoices(id)
				)`,
				`CREATE INDEX idx_invoice_lines_invoice ON invoice_lines(invoice_id)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Add analysis snapshots",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS analyses (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					run_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					min_competitor_amount REAL NOT NULL,
					customer_count INTEGER NOT NULL DEFAULT 0,
					eligible_count INTEGER NOT NULL DEFAULT 0
				)`,

				`CREATE TABLE IF NOT EXISTS analysis_customers (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					analysis_id INTEGER NOT NULL,
					name TEXT NOT NULL,
					invoice_count INTEGER NOT NULL DEFAULT 0,
					total_amount REAL NOT NULL DEFAULT 0,
					soprema_amount REAL NOT NULL DEFAULT 0,
					competitor_amount REAL NOT NULL DEFAULT 0,
					eligible BOOLEAN DEFAULT 0,
					FOREIGN KEY (analysis_id) REFERENCES analyses(id)
				)`,
				`CREATE INDEX idx_analysis_customers_analysis ON analysis_customers(analysis_id)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
}

// Migrate brings the database schema up to the expected version.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var current int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&current); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", m.Version, err)
		}

		if err := m.Up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Description, err)
		}
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", m.Version)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to set schema version %d: %w", m.Version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", m.Version, err)
		}

		slog.Info("Applied migration", "version", m.Version, "description", m.Description)
	}

	return nil
}
