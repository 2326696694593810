package evaluation

// ScoreSection sums one section's answers into a score and percentage.
// The section number (1-based) is carried into any error so the caller can
// point the user at the exact gap.
func ScoreSection(section int, answers []int) (SectionResult, error) {
	if len(answers) != QuestionsPerSection {
		return SectionResult{}, &InvalidAnswerCountError{Section: section, Got: len(answers)}
	}
	score := 0
	for i, v := range answers {
		if v < 0 || v > MaxAnswerValue {
			return SectionResult{}, &InvalidAnswerValueError{Section: section, Question: i + 1, Value: v}
		}
		score += v
	}
	return SectionResult{
		Section:    section,
		Score:      score,
		Percentage: roundPercent(score, MaxSectionScore),
	}, nil
}

// roundPercent computes round-half-up(score/max*100) in integer arithmetic.
// Both operands are non-negative.
func roundPercent(score, max int) int {
	return (score*200 + max) / (2 * max)
}
