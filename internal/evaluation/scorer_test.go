package evaluation

import (
	"errors"
	"testing"
)

func TestScoreSectionSumsAnswers(t *testing.T) {
	cases := []struct {
		name        string
		answers     []int
		wantScore   int
		wantPercent int
	}{
		{"all zeros", []int{0, 0, 0, 0, 0}, 0, 0},
		{"all ones", []int{1, 1, 1, 1, 1}, 5, 33},
		{"mixed", []int{3, 2, 3, 2, 2}, 12, 80},
		{"all threes", []int{3, 3, 3, 3, 3}, 15, 100},
		{"rounds half up", []int{2, 2, 2, 1, 1}, 8, 53},
		{"rounds down", []int{1, 1, 1, 1, 0}, 4, 27},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ScoreSection(1, tc.answers)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Score != tc.wantScore {
				t.Fatalf("score = %d, want %d", got.Score, tc.wantScore)
			}
			if got.Percentage != tc.wantPercent {
				t.Fatalf("percentage = %d, want %d", got.Percentage, tc.wantPercent)
			}
		})
	}
}

func TestScoreSectionRejectsWrongCount(t *testing.T) {
	_, err := ScoreSection(3, []int{1, 2, 3})
	var countErr *InvalidAnswerCountError
	if !errors.As(err, &countErr) {
		t.Fatalf("expected InvalidAnswerCountError, got %v", err)
	}
	if countErr.Section != 3 || countErr.Got != 3 {
		t.Fatalf("unexpected error detail: %+v", countErr)
	}
}

func TestScoreSectionRejectsOutOfRangeValues(t *testing.T) {
	for _, bad := range []int{-1, 4, 10} {
		_, err := ScoreSection(2, []int{1, 1, bad, 1, 1})
		var valueErr *InvalidAnswerValueError
		if !errors.As(err, &valueErr) {
			t.Fatalf("value %d: expected InvalidAnswerValueError, got %v", bad, err)
		}
		if valueErr.Section != 2 || valueErr.Question != 3 || valueErr.Value != bad {
			t.Fatalf("unexpected error detail: %+v", valueErr)
		}
	}
}

func TestScoreSectionAcceptsEveryValidValue(t *testing.T) {
	for v := 0; v <= MaxAnswerValue; v++ {
		answers := []int{v, v, v, v, v}
		got, err := ScoreSection(1, answers)
		if err != nil {
			t.Fatalf("value %d: unexpected error: %v", v, err)
		}
		if got.Score != v*QuestionsPerSection {
			t.Fatalf("value %d: score = %d", v, got.Score)
		}
	}
}

func TestRoundPercentHalfUp(t *testing.T) {
	cases := []struct {
		score, max, want int
	}{
		{5, 15, 33},
		{7, 15, 47},
		{8, 15, 53},
		{12, 15, 80},
		{48, 105, 46},
		{0, 105, 0},
		{105, 105, 100},
	}
	for _, tc := range cases {
		if got := roundPercent(tc.score, tc.max); got != tc.want {
			t.Fatalf("roundPercent(%d, %d) = %d, want %d", tc.score, tc.max, got, tc.want)
		}
	}
}
