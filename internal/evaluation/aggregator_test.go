package evaluation

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestAggregateDemoAnswers(t *testing.T) {
	result, err := Aggregate(DemoAnswerSet(), AggregateOptions{Now: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantScores := []int{5, 4, 12, 7, 7, 8, 5}
	for i, sec := range result.Sections {
		if sec.Section != i+1 {
			t.Fatalf("section %d numbered %d", i+1, sec.Section)
		}
		if sec.Score != wantScores[i] {
			t.Fatalf("section %d score = %d, want %d", i+1, sec.Score, wantScores[i])
		}
	}
	if result.TotalScore != 48 {
		t.Fatalf("total score = %d, want 48", result.TotalScore)
	}
	if result.TotalPercentage != 46 {
		t.Fatalf("total percentage = %d, want 46", result.TotalPercentage)
	}
	if result.RiskTier != TierLowCompliance {
		t.Fatalf("tier = %q, want %q", result.RiskTier.Label(), TierLowCompliance.Label())
	}
	if len(result.ZeroFilledSections) != 0 {
		t.Fatalf("unexpected zero-filled sections: %v", result.ZeroFilledSections)
	}
}

func TestAggregatePerfectScore(t *testing.T) {
	answers := make([][]int, SectionCount)
	for i := range answers {
		answers[i] = []int{3, 3, 3, 3, 3}
	}
	result, err := Aggregate(answers, AggregateOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TotalScore != MaxTotalScore {
		t.Fatalf("total score = %d, want %d", result.TotalScore, MaxTotalScore)
	}
	if result.TotalPercentage != 100 {
		t.Fatalf("total percentage = %d, want 100", result.TotalPercentage)
	}
	if result.RiskTier != TierHighCompliance {
		t.Fatalf("tier = %q", result.RiskTier.Label())
	}
}

func TestAggregateRejectsMissingSections(t *testing.T) {
	answers := DemoAnswerSet()
	answers[2] = nil
	answers[5] = []int{}
	_, err := Aggregate(answers, AggregateOptions{})
	var incomplete *IncompleteEvaluationError
	if !errors.As(err, &incomplete) {
		t.Fatalf("expected IncompleteEvaluationError, got %v", err)
	}
	if !reflect.DeepEqual(incomplete.Missing, []int{3, 6}) {
		t.Fatalf("missing = %v, want [3 6]", incomplete.Missing)
	}
}

func TestAggregateZeroFillIsExplicit(t *testing.T) {
	answers := DemoAnswerSet()
	answers[6] = nil
	result, err := Aggregate(answers, AggregateOptions{AllowZeroFill: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(result.ZeroFilledSections, []int{7}) {
		t.Fatalf("zero-filled = %v, want [7]", result.ZeroFilledSections)
	}
	if result.Sections[6].Score != 0 || result.Sections[6].Percentage != 0 {
		t.Fatalf("zero-filled section scored: %+v", result.Sections[6])
	}
	if result.TotalScore != 48-5 {
		t.Fatalf("total score = %d, want 43", result.TotalScore)
	}
}

func TestAggregateShortInputPadsToSectionCount(t *testing.T) {
	result, err := Aggregate([][]int{{1, 1, 1, 1, 1}}, AggregateOptions{AllowZeroFill: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Sections) != SectionCount {
		t.Fatalf("sections = %d, want %d", len(result.Sections), SectionCount)
	}
	if !reflect.DeepEqual(result.ZeroFilledSections, []int{2, 3, 4, 5, 6, 7}) {
		t.Fatalf("zero-filled = %v", result.ZeroFilledSections)
	}
}

func TestAggregateRejectsTooManySections(t *testing.T) {
	answers := make([][]int, SectionCount+1)
	for i := range answers {
		answers[i] = []int{1, 1, 1, 1, 1}
	}
	if _, err := Aggregate(answers, AggregateOptions{}); err == nil {
		t.Fatal("expected error for too many sections")
	}
}

func TestAggregatePropagatesSectionErrors(t *testing.T) {
	answers := DemoAnswerSet()
	answers[3] = []int{1, 1, 9, 1, 1}
	_, err := Aggregate(answers, AggregateOptions{})
	var valueErr *InvalidAnswerValueError
	if !errors.As(err, &valueErr) {
		t.Fatalf("expected InvalidAnswerValueError, got %v", err)
	}
	if valueErr.Section != 4 {
		t.Fatalf("error section = %d, want 4", valueErr.Section)
	}
}

func TestAggregateUsesProvidedTimestamp(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)
	result, err := Aggregate(DemoAnswerSet(), AggregateOptions{Now: now})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.GeneratedAt.Equal(now) {
		t.Fatalf("generated at = %v, want %v", result.GeneratedAt, now)
	}
}
