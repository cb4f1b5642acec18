package main

import (
	"bufio"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Ybranco/soprema-reconquest/internal/classify"
	"github.com/Ybranco/soprema-reconquest/internal/model"
)

func classifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify [designation]...",
		Short: "Classify invoice line designations",
		Long: `Classify one or more designations the way the analysis pipeline would,
showing whether each is kept as a product and under which category it would
be removed. Reads designations from stdin, one per line, when no arguments
are given. Useful for checking how a specific line will be handled.

Examples:
  reconquest classify "TRANSPORT EXPRESS"
  reconquest classify "SOPRALENE FLAM 180" "frais de gestion"
  cut -d';' -f2 lignes.csv | reconquest classify`,
		RunE: runClassify,
	}
}

func runClassify(_ *cobra.Command, args []string) error {
	designations := args
	if len(designations) == 0 {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			if line := scanner.Text(); line != "" {
				designations = append(designations, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DESIGNATION\tPRODUIT\tCATEGORIE\tRAISON")

	for _, designation := range designations {
		result := classify.Classify(&model.InvoiceLine{Designation: designation})

		verdict := "non"
		if result.IsProduct {
			verdict = "oui"
		}
		category := string(result.Category)
		if category == "" {
			category = "-"
		}
		reason := result.Reason
		if reason == "" {
			reason = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", designation, verdict, category, reason)
	}
	return w.Flush()
}
