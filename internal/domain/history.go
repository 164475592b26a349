package domain

import (
	"time"

	"github.com/google/uuid"
)

// PreviewLength bounds the stored prefix of the submitted text. The full
// text is never persisted; only this prefix survives for display.
const PreviewLength = 60

// HistoryEntry is one immutable record of a completed analysis. Entries are
// created exactly once per successful analysis and never mutated or
// individually deleted afterwards.
type HistoryEntry struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"date"`
	Preview   string    `json:"preview"`
	RiskLevel RiskLevel `json:"riskLevel"`
	Risks     []string  `json:"risks"`
	Warning   string    `json:"warning"`
}

// NewHistoryEntry derives an entry from a successful analysis response plus
// the originally submitted text and the local receipt time.
func NewHistoryEntry(resp AnalysisResponse, text string, now time.Time) HistoryEntry {
	return HistoryEntry{
		ID:        uuid.NewString(),
		Date:      now,
		Preview:   Preview(text),
		RiskLevel: resp.RiskLevel,
		Risks:     resp.Risks,
		Warning:   resp.Warning,
	}
}

// Preview returns the bounded display prefix of a submitted text: the first
// PreviewLength characters followed by an ellipsis marker.
func Preview(text string) string {
	runes := []rune(text)
	if len(runes) > PreviewLength {
		runes = runes[:PreviewLength]
	}
	return string(runes) + "..."
}
