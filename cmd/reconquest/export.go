package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Ybranco/soprema-reconquest/internal/common"
	"github.com/Ybranco/soprema-reconquest/internal/export"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the customer ranking to an XLSX workbook",
		Long: `Export the latest saved analysis as an Excel workbook, one row per
customer with totals and plan eligibility.

Examples:
  reconquest export
  reconquest export --output clients.xlsx`,
		Args: cobra.NoArgs,
		RunE: runExport,
	}

	cmd.Flags().StringP("output", "o", "", "output file (default: reconquest-clients-<date>.xlsx)")

	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

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

	run, err := db.GetLatestAnalysis(ctx)
	if errors.Is(err, common.ErrNotFound) {
		return common.NewUserError("no saved analysis to export; run 'reconquest analyze --save' first", err)
	}
	if err != nil {
		return err
	}

	data, err := export.CustomersXLSX(run.Customers, run.MinCompetitorAmount)
	if err != nil {
		return fmt.Errorf("failed to build workbook: %w", err)
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = export.DefaultFilename(time.Now())
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}

	slog.Info("Export complete", "file", output, "customers", len(run.Customers))
	return nil
}
