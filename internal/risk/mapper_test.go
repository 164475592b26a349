package risk

import (
	"testing"

	"github.com/neurosafe/neurosafe/internal/domain"
)

func TestClassifyKnownLevels(t *testing.T) {
	cases := []struct {
		level domain.RiskLevel
		want  Severity
	}{
		{domain.RiskHigh, SeverityDanger},
		{domain.RiskMedium, SeverityCaution},
		{domain.RiskLow, SeveritySafe},
	}

	for _, tc := range cases {
		p := Classify(tc.level)
		if p.Severity != tc.want {
			t.Errorf("Classify(%s): expected severity %s, got %s", tc.level, tc.want, p.Severity)
		}
		if p.Icon == "" {
			t.Errorf("Classify(%s): expected an icon", tc.level)
		}
		if p.Recommendation == "" {
			t.Errorf("Classify(%s): expected a recommendation", tc.level)
		}
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	for _, level := range []domain.RiskLevel{domain.RiskLow, domain.RiskMedium, domain.RiskHigh} {
		first := Classify(level)
		for i := 0; i < 3; i++ {
			if got := Classify(level); got != first {
				t.Errorf("Classify(%s) not deterministic: %+v vs %+v", level, got, first)
			}
		}
	}
}

func TestClassifyUnknownFallsBack(t *testing.T) {
	p := Classify(domain.RiskLevel("Extreme"))
	if p.Severity != SeverityUnknown {
		t.Errorf("Expected unknown severity, got %s", p.Severity)
	}
	if p.Recommendation != "" {
		t.Errorf("Expected no recommendation claim for unknown level, got %q", p.Recommendation)
	}
	if p.Icon == "" {
		t.Error("Expected a distinct icon for unknown level")
	}
}

func TestRecommendationsAreDistinctPerLevel(t *testing.T) {
	seen := map[string]domain.RiskLevel{}
	for _, level := range []domain.RiskLevel{domain.RiskLow, domain.RiskMedium, domain.RiskHigh} {
		rec := Classify(level).Recommendation
		if prior, dup := seen[rec]; dup {
			t.Errorf("Levels %s and %s share recommendation %q", prior, level, rec)
		}
		seen[rec] = level
	}
}

func TestBadgeLabelsUnknown(t *testing.T) {
	badge := Badge(domain.RiskLevel("???"))
	if badge == "" {
		t.Fatal("Expected a rendered badge")
	}
}
