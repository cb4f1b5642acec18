package cli

import (
	"fmt"
	"strings"

	"github.com/Ybranco/soprema-reconquest/internal/model"
	"github.com/Ybranco/soprema-reconquest/internal/pipeline"
)

// RenderAnalysisReport formats a pipeline result for the terminal.
func RenderAnalysisReport(result pipeline.Result) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Analyse concurrentielle"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Factures analysées : %d\n", len(result.Invoices)))
	b.WriteString(fmt.Sprintf("Lignes non-produit écartées : %d\n", result.RemovedLines))
	b.WriteString(fmt.Sprintf("Lignes reclassées SOPREMA : %d\n", result.ReclassifiedLines))
	b.WriteString("\n")

	b.WriteString(RenderCustomerTable(result.Customers, result.MinCompetitorAmount))

	b.WriteString("\n")
	if len(result.Eligible) == 0 {
		b.WriteString(SubtleStyle.Render(
			fmt.Sprintf("Aucun client au-dessus du seuil de %.0f €.", result.MinCompetitorAmount)))
	} else {
		b.WriteString(SuccessStyle.Render(
			fmt.Sprintf("%d client(s) éligible(s) au plan de reconquête (seuil %.0f €).",
				len(result.Eligible), result.MinCompetitorAmount)))
	}
	b.WriteString("\n")
	return b.String()
}

// RenderCustomerTable formats ranked customer summaries, highlighting the
// ones above the eligibility threshold.
func RenderCustomerTable(summaries []model.CustomerSummary, minCompetitorAmount float64) string {
	if len(summaries) == 0 {
		return SubtleStyle.Render("Aucun client.") + "\n"
	}

	var b strings.Builder
	b.WriteString(BoldStyle.Render(fmt.Sprintf("%-30s %9s %12s %12s %12s",
		"Client", "Factures", "Total", "SOPREMA", "Concurrent")))
	b.WriteString("\n")

	for _, s := range summaries {
		row := fmt.Sprintf("%-30s %9d %12.2f %12.2f %12.2f",
			truncate(s.Name, 30), s.InvoiceCount, s.TotalAmount, s.SopremaAmount, s.CompetitorAmount)
		if s.CompetitorAmount >= minCompetitorAmount {
			row = EligibleStyle.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}
	return b.String()
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-1]) + "…"
}
