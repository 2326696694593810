package evaluation

import (
	"fmt"
	"strconv"
	"strings"
)

// InvalidAnswerCountError reports a section whose answer sequence does not
// have exactly QuestionsPerSection entries.
type InvalidAnswerCountError struct {
	Section int
	Got     int
}

func (e *InvalidAnswerCountError) Error() string {
	return fmt.Sprintf("section %d: expected %d answers, got %d", e.Section, QuestionsPerSection, e.Got)
}

// InvalidAnswerValueError reports an answer outside [0, MaxAnswerValue].
// Values are rejected rather than clamped; the legacy client clamped to
// zero, which hid data-entry bugs.
type InvalidAnswerValueError struct {
	Section  int
	Question int
	Value    int
}

func (e *InvalidAnswerValueError) Error() string {
	return fmt.Sprintf("section %d question %d: answer %d outside range 0..%d", e.Section, e.Question, e.Value, MaxAnswerValue)
}

// InvalidPercentageError reports a percentage outside [0,100].
type InvalidPercentageError struct {
	Value int
}

func (e *InvalidPercentageError) Error() string {
	return fmt.Sprintf("percentage %d outside range 0..100", e.Value)
}

// IncompleteEvaluationError lists the sections (1-based) that have no
// answers. Callers may prompt for the missing sections or rebuild the
// aggregate with AllowZeroFill set.
type IncompleteEvaluationError struct {
	Missing []int
}

func (e *IncompleteEvaluationError) Error() string {
	parts := make([]string, len(e.Missing))
	for i, s := range e.Missing {
		parts[i] = strconv.Itoa(s)
	}
	return "incomplete evaluation: missing sections " + strings.Join(parts, ", ")
}

// MissingRequiredDataError reports an absent identity or score field that
// report rendering cannot proceed without.
type MissingRequiredDataError struct {
	Field string
}

func (e *MissingRequiredDataError) Error() string {
	return "missing required data: " + e.Field
}
