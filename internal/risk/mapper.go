// Package risk maps risk-level classifications to presentation policy.
package risk

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/neurosafe/neurosafe/internal/domain"
)

// Severity is the visual/semantic severity class a risk level maps to.
type Severity string

const (
	SeverityDanger  Severity = "danger"
	SeverityCaution Severity = "caution"
	SeveritySafe    Severity = "safe"
	SeverityUnknown Severity = "unknown"
)

// Presentation describes how a risk level is rendered: severity class,
// icon, and a fixed recommendation string. The recommendation is
// presentation policy per level, not derived from response content.
type Presentation struct {
	Severity       Severity
	Icon           string
	Recommendation string
}

var (
	dangerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("160")).
			Padding(0, 1)

	cautionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("214")).
			Padding(0, 1)

	safeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("28")).
			Padding(0, 1)

	unknownStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("240")).
			Padding(0, 1)
)

// Classify maps a risk level to its presentation. It is pure, total, and
// deterministic: an unrecognized level yields the neutral fallback with no
// recommendation claim rather than failing.
func Classify(level domain.RiskLevel) Presentation {
	switch level {
	case domain.RiskHigh:
		return Presentation{
			Severity:       SeverityDanger,
			Icon:           "⚠",
			Recommendation: "Do not proceed without an independent review of this agreement.",
		}
	case domain.RiskMedium:
		return Presentation{
			Severity:       SeverityCaution,
			Icon:           "ℹ",
			Recommendation: "Clarify the ambiguous terms with the other party before proceeding.",
		}
	case domain.RiskLow:
		return Presentation{
			Severity:       SeveritySafe,
			Icon:           "✓",
			Recommendation: "Proceed with standard care.",
		}
	}
	return Presentation{
		Severity: SeverityUnknown,
		Icon:     "?",
	}
}

// Badge renders a terminal badge for the risk level using the severity's
// lipgloss style.
func Badge(level domain.RiskLevel) string {
	p := Classify(level)
	label := string(level)
	if p.Severity == SeverityUnknown {
		label = "Unknown"
	}
	return styleFor(p.Severity).Render(p.Icon + " " + label)
}

func styleFor(sev Severity) lipgloss.Style {
	switch sev {
	case SeverityDanger:
		return dangerStyle
	case SeverityCaution:
		return cautionStyle
	case SeveritySafe:
		return safeStyle
	}
	return unknownStyle
}
