package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Ybranco/soprema-reconquest/internal/classify"
	"github.com/Ybranco/soprema-reconquest/internal/ingest"
	"github.com/Ybranco/soprema-reconquest/internal/model"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file-or-directory>",
		Short: "Import extracted invoices into the local database",
		Long: `Import extraction results from JSON files. Lines are filtered down to
genuine product lines before storage; re-importing an invoice replaces its
previous lines.

Examples:
  reconquest import extractions/
  reconquest import facture.json --raw`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}

	cmd.Flags().Bool("raw", false, "store lines as extracted, without non-product filtering")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	invoices, err := ingest.ReadPath(args[0])
	if err != nil {
		return fmt.Errorf("failed to load invoices: %w", err)
	}

	raw, _ := cmd.Flags().GetBool("raw")

	storable := make([]model.Invoice, 0, len(invoices))
	skipped := 0
	removed := 0
	for _, inv := range invoices {
		if inv.ID == "" {
			skipped++
			continue
		}
		if !raw {
			cleaned := classify.CleanInvoice(inv)
			if cleaned.Filtering != nil {
				removed += len(cleaned.Filtering.RemovedLines)
			}
			inv = cleaned
		}
		storable = append(storable, inv)
	}
	if skipped > 0 {
		slog.Warn("Skipped invoices without an id", "count", skipped)
	}

	db, err := openStorage()
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("Failed to close database", "error", closeErr)
		}
	}()

	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := db.SaveInvoices(ctx, storable); err != nil {
		return fmt.Errorf("failed to save invoices: %w", err)
	}

	slog.Info("Import complete", "invoices", len(storable), "removed_lines", removed)
	return nil
}
