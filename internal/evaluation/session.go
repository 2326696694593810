package evaluation

import "fmt"

// SessionState is the typed replacement for the legacy client's local
// storage: one answer slot per section plus the user identification and the
// last computed result. It belongs to a single session and is passed
// explicitly between components rather than held in process-wide state.
type SessionState struct {
	answers  [SectionCount][]int
	user     *UserProfile
	computed *EvaluationResult
}

func NewSessionState() *SessionState {
	return &SessionState{}
}

// SetSectionAnswers validates and stores the answers for one section
// (1-based). Invalid answers never enter the session.
func (s *SessionState) SetSectionAnswers(section int, answers []int) error {
	if section < 1 || section > SectionCount {
		return fmt.Errorf("section %d outside range 1..%d", section, SectionCount)
	}
	if _, err := ScoreSection(section, answers); err != nil {
		return err
	}
	stored := make([]int, len(answers))
	copy(stored, answers)
	s.answers[section-1] = stored
	s.computed = nil
	return nil
}

// SectionAnswers returns the stored answers for one section, if any.
func (s *SessionState) SectionAnswers(section int) ([]int, bool) {
	if section < 1 || section > SectionCount {
		return nil, false
	}
	a := s.answers[section-1]
	if len(a) == 0 {
		return nil, false
	}
	out := make([]int, len(a))
	copy(out, a)
	return out, true
}

// AnswerMatrix returns all seven slots in order; missing sections are nil.
func (s *SessionState) AnswerMatrix() [][]int {
	out := make([][]int, SectionCount)
	for i, a := range s.answers {
		if len(a) == 0 {
			continue
		}
		c := make([]int, len(a))
		copy(c, a)
		out[i] = c
	}
	return out
}

// MissingSections lists the 1-based sections that have no answers yet.
func (s *SessionState) MissingSections() []int {
	var missing []int
	for i, a := range s.answers {
		if len(a) == 0 {
			missing = append(missing, i+1)
		}
	}
	return missing
}

// SetUser stores the identification captured by the registration form.
func (s *SessionState) SetUser(u UserProfile) {
	copied := u
	s.user = &copied
}

func (s *SessionState) User() (UserProfile, bool) {
	if s.user == nil {
		return UserProfile{}, false
	}
	return *s.user, true
}

// Compute aggregates the session's answers and caches the result until an
// answer changes.
func (s *SessionState) Compute(opts AggregateOptions) (EvaluationResult, error) {
	if s.computed != nil {
		return *s.computed, nil
	}
	result, err := Aggregate(s.AnswerMatrix(), opts)
	if err != nil {
		return EvaluationResult{}, err
	}
	s.computed = &result
	return result, nil
}

// DemoAnswerSet is the fixture the legacy results page offered when no real
// answers existed. It is only ever used when explicitly requested.
func DemoAnswerSet() [][]int {
	return [][]int{
		{1, 1, 1, 1, 1},
		{1, 1, 0, 1, 1},
		{3, 2, 3, 2, 2},
		{2, 1, 1, 2, 1},
		{2, 1, 2, 2, 0},
		{2, 2, 2, 2, 0},
		{1, 1, 1, 1, 1},
	}
}

// DemoUser accompanies DemoAnswerSet.
func DemoUser() UserProfile {
	return UserProfile{
		Nombre:   "Usuario",
		Apellido: "Demo",
		Email:    "demo@ejemplo.com",
		Empresa:  "Empresa Demo S.A.S.",
	}
}
