package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Ybranco/soprema-reconquest/internal/analysis"
	"github.com/Ybranco/soprema-reconquest/internal/cli"
	"github.com/Ybranco/soprema-reconquest/internal/common"
	"github.com/Ybranco/soprema-reconquest/internal/model"
	"github.com/Ybranco/soprema-reconquest/internal/service"
)

func customersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customers",
		Short: "Show per-customer competitor exposure",
		Long: `Show the customer ranking from the latest saved analysis, or re-aggregate
from stored invoices when no snapshot exists.

Examples:
  reconquest customers
  reconquest customers --min-amount 10000
  reconquest customers --eligible-only`,
		Args: cobra.NoArgs,
		RunE: runCustomers,
	}

	cmd.Flags().Float64P("min-amount", "m", 0, "minimum competitor amount for plan eligibility (0 = configured default)")
	cmd.Flags().Bool("eligible-only", false, "only show customers above the threshold")

	return cmd
}

func runCustomers(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	minAmount, _ := cmd.Flags().GetFloat64("min-amount")
	if minAmount <= 0 {
		minAmount = minCompetitorAmount()
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

	summaries, err := loadSummaries(cmd, db)
	if err != nil {
		return err
	}

	if eligibleOnly, _ := cmd.Flags().GetBool("eligible-only"); eligibleOnly {
		summaries = analysis.EligibleCustomers(summaries, minAmount)
	}

	fmt.Fprint(os.Stdout, cli.RenderCustomerTable(summaries, minAmount))
	return nil
}

func loadSummaries(cmd *cobra.Command, db service.Storage) ([]model.CustomerSummary, error) {
	ctx := cmd.Context()

	run, err := db.GetLatestAnalysis(ctx)
	if err == nil {
		slog.Info("Using saved analysis", "analysis_id", run.ID, "run_at", run.RunAt)
		return run.Customers, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	// No snapshot yet, aggregate from whatever invoices are stored.
	invoices, err := db.GetInvoices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load invoices: %w", err)
	}
	if len(invoices) == 0 {
		return nil, common.NewUserError("no stored invoices or analyses; run 'reconquest import' or 'reconquest analyze --save' first", common.ErrNoInvoices)
	}
	slog.Info("No saved analysis, aggregating stored invoices", "invoices", len(invoices))
	return analysis.ClientAnalysisDetails(invoices), nil
}
