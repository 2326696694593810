package evaluation

import (
	"fmt"
	"time"
)

// AggregateOptions controls the degraded modes of Aggregate.
type AggregateOptions struct {
	// AllowZeroFill substitutes a zero score for any missing section
	// instead of failing with IncompleteEvaluationError. It is an explicit
	// opt-in; the legacy client sometimes zero-filled silently.
	AllowZeroFill bool
	// Now overrides the evaluation timestamp; zero means time.Now.
	Now time.Time
}

// Aggregate combines the seven answer sets into one EvaluationResult.
// A nil or empty inner slice marks that section as missing. Persistence of
// the result is the caller's responsibility and is attempted at most once.
func Aggregate(answers [][]int, opts AggregateOptions) (EvaluationResult, error) {
	if len(answers) > SectionCount {
		return EvaluationResult{}, fmt.Errorf("expected at most %d sections, got %d", SectionCount, len(answers))
	}

	padded := make([][]int, SectionCount)
	copy(padded, answers)

	var missing []int
	for i, a := range padded {
		if len(a) == 0 {
			missing = append(missing, i+1)
		}
	}
	if len(missing) > 0 && !opts.AllowZeroFill {
		return EvaluationResult{}, &IncompleteEvaluationError{Missing: missing}
	}

	sections := make([]SectionResult, SectionCount)
	total := 0
	for i, a := range padded {
		if len(a) == 0 {
			sections[i] = SectionResult{Section: i + 1}
			continue
		}
		res, err := ScoreSection(i+1, a)
		if err != nil {
			return EvaluationResult{}, err
		}
		sections[i] = res
		total += res.Score
	}

	totalPercentage := roundPercent(total, MaxTotalScore)
	tier, err := ClassifyPercentage(totalPercentage)
	if err != nil {
		return EvaluationResult{}, err
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	result := EvaluationResult{
		Sections:        sections,
		TotalScore:      total,
		TotalPercentage: totalPercentage,
		RiskTier:        tier,
		GeneratedAt:     now,
	}
	if opts.AllowZeroFill {
		result.ZeroFilledSections = missing
	}
	return result, nil
}
