package catalog

import (
	"testing"

	"github.com/agencia43/diagnostico-pdp/internal/evaluation"
)

func TestValidate(t *testing.T) {
	if err := Validate(); err != nil {
		t.Fatalf("catalog incomplete: %v", err)
	}
}

func TestNarrativeForEveryTier(t *testing.T) {
	for _, tier := range evaluation.Tiers() {
		n, err := NarrativeFor(tier)
		if err != nil {
			t.Fatalf("tier %q: %v", tier.Label(), err)
		}
		if n.Situation == "" {
			t.Fatalf("tier %q: empty situation", tier.Label())
		}
		if len(n.PriorityActions) != 4 {
			t.Fatalf("tier %q: %d priority actions, want 4", tier.Label(), len(n.PriorityActions))
		}
	}
	if _, err := NarrativeFor(evaluation.RiskTier(42)); err == nil {
		t.Fatal("expected error for unknown tier")
	}
}

func TestColorFor(t *testing.T) {
	cases := map[evaluation.RiskTier]RGB{
		evaluation.TierHighCompliance:   {34, 197, 94},
		evaluation.TierMediumCompliance: {245, 158, 11},
		evaluation.TierLowCompliance:    {249, 115, 22},
		evaluation.TierNilCompliance:    {239, 68, 68},
	}
	for tier, want := range cases {
		if got := ColorFor(tier); got != want {
			t.Fatalf("tier %q: color = %+v, want %+v", tier.Label(), got, want)
		}
	}
	if got := ColorFor(evaluation.RiskTier(42)); got != (RGB{107, 114, 128}) {
		t.Fatalf("unknown tier color = %+v", got)
	}
}

func TestSectionTitlesAndChartLabelsAlign(t *testing.T) {
	if len(SectionTitles) != evaluation.SectionCount || len(ChartLabels) != evaluation.SectionCount {
		t.Fatal("titles and labels must cover every section")
	}
	for i := range ChartLabels {
		if ChartLabels[i] == "" {
			t.Fatalf("chart label %d empty", i+1)
		}
	}
}
