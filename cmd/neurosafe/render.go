package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/neurosafe/neurosafe/internal/domain"
	"github.com/neurosafe/neurosafe/internal/risk"
)

func cmdContext() context.Context {
	return context.Background()
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Padding(0, 1)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("242"))

	warningStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("252"))
)

// renderAssessment formats one risk assessment: severity badge, warning,
// individual risks, and the per-level recommendation.
func renderAssessment(resp domain.AnalysisResponse) string {
	p := risk.Classify(resp.RiskLevel)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Risk Assessment"))
	b.WriteString("\n\n")
	b.WriteString(risk.Badge(resp.RiskLevel))
	b.WriteString("\n\n")
	b.WriteString(warningStyle.Render(resp.Warning))
	b.WriteString("\n")

	if len(resp.Risks) > 0 {
		b.WriteString("\nIdentified risks:\n")
		for _, r := range resp.Risks {
			b.WriteString("  • " + r + "\n")
		}
	}

	if p.Recommendation != "" {
		b.WriteString("\n" + dimStyle.Render("Recommendation:") + " " + p.Recommendation + "\n")
	}

	return b.String()
}

// renderHistory formats the persisted log, most-recent-first, with a
// high-risk count header.
func renderHistory(entries []domain.HistoryEntry) string {
	if len(entries) == 0 {
		return "No analyses yet."
	}

	highRisk := 0
	for _, e := range entries {
		if e.RiskLevel == domain.RiskHigh {
			highRisk++
		}
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Analysis History"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%d analyses, %d high risk", len(entries), highRisk)))
	b.WriteString("\n\n")

	for _, e := range entries {
		b.WriteString(risk.Badge(e.RiskLevel))
		b.WriteString("  " + e.Date.Format("2006-01-02 15:04"))
		b.WriteString("\n  " + dimStyle.Render(e.Preview))
		b.WriteString("\n  " + warningStyle.Render(e.Warning))
		b.WriteString("\n\n")
	}

	return strings.TrimRight(b.String(), "\n")
}
