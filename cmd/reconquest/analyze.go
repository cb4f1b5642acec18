package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Ybranco/soprema-reconquest/internal/catalog"
	"github.com/Ybranco/soprema-reconquest/internal/cli"
	"github.com/Ybranco/soprema-reconquest/internal/common"
	"github.com/Ybranco/soprema-reconquest/internal/ingest"
	"github.com/Ybranco/soprema-reconquest/internal/model"
	"github.com/Ybranco/soprema-reconquest/internal/pipeline"
	"github.com/Ybranco/soprema-reconquest/internal/verify"
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <file-or-directory>",
		Short: "Run the full competitive analysis over extracted invoices",
		Long: `Run the invoice analysis pipeline: filter non-product lines, verify
product classifications against the SOPREMA catalog, aggregate per-customer
competitor exposure and list the customers eligible for a reconquest plan.

Examples:
  reconquest analyze extractions/
  reconquest analyze facture.json --min-amount 10000
  reconquest analyze extractions/ --save`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalyze,
	}

	cmd.Flags().Float64P("min-amount", "m", 0, "minimum competitor amount for plan eligibility (0 = configured default)")
	cmd.Flags().Bool("save", false, "persist the cleaned invoices and the analysis snapshot")
	cmd.Flags().Bool("no-verify", false, "skip catalog verification")
	cmd.Flags().String("catalog", "", "path to the filtered product catalog")
	cmd.Flags().String("catalog-fallback", "", "path to the unfiltered fallback catalog")

	_ = viper.BindPFlag("analyze.save", cmd.Flags().Lookup("save"))
	_ = viper.BindPFlag("analyze.no_verify", cmd.Flags().Lookup("no-verify"))

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	invoices, err := ingest.ReadPath(args[0])
	if err != nil {
		return fmt.Errorf("failed to load invoices: %w", err)
	}
	slog.Info("Loaded invoices", "count", len(invoices), "source", args[0])

	var matcher verify.Matcher
	if !viper.GetBool("analyze.no_verify") {
		if c := catalogFromFlags(cmd); c != nil {
			matcher = c
		} else {
			slog.Warn("No catalog configured, skipping product verification")
		}
	}

	minAmount, _ := cmd.Flags().GetFloat64("min-amount")
	if minAmount <= 0 {
		minAmount = minCompetitorAmount()
	}

	bar := progressbar.NewOptions(len(invoices),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Analyse des factures..."),
	)

	p := pipeline.New(matcher,
		pipeline.WithMinCompetitorAmount(minAmount),
		pipeline.WithProgress(func(done, _ int) {
			_ = bar.Set(done)
		}),
	)

	result, err := p.Run(ctx, invoices)
	if err != nil {
		if errors.Is(err, common.ErrCatalogUnavailable) {
			return common.NewUserError("product catalog could not be loaded; run with --no-verify to analyze without verification", err)
		}
		return err
	}
	_ = bar.Finish()
	fmt.Fprintln(os.Stdout)

	fmt.Fprint(os.Stdout, cli.RenderAnalysisReport(result))

	if viper.GetBool("analyze.save") {
		if err := saveRun(cmd, result); err != nil {
			return err
		}
	}
	return nil
}

func catalogFromFlags(cmd *cobra.Command) *catalog.Catalog {
	primary, _ := cmd.Flags().GetString("catalog")
	fallback, _ := cmd.Flags().GetString("catalog-fallback")
	if primary != "" || fallback != "" {
		return catalog.New(primary, fallback)
	}
	return newCatalog()
}

func saveRun(cmd *cobra.Command, result pipeline.Result) error {
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

	// Invoices without an extractor id cannot be stored or deduplicated.
	storable := make([]model.Invoice, 0, len(result.Invoices))
	for _, inv := range result.Invoices {
		if inv.ID != "" {
			storable = append(storable, inv)
		}
	}
	if len(storable) > 0 {
		if err := db.SaveInvoices(ctx, storable); err != nil {
			return fmt.Errorf("failed to save invoices: %w", err)
		}
	}

	eligible := make(map[string]bool, len(result.Eligible))
	for _, c := range result.Eligible {
		eligible[c.Name] = true
	}
	run := &model.AnalysisRun{
		RunAt:               time.Now(),
		MinCompetitorAmount: result.MinCompetitorAmount,
		Customers:           result.Customers,
		Eligible:            eligible,
	}
	id, err := db.SaveAnalysis(ctx, run)
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}

	slog.Info("Analysis saved", "analysis_id", id, "invoices", len(storable), "customers", len(result.Customers))
	return nil
}
