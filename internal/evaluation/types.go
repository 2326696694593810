package evaluation

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	// SectionCount is the number of thematic sections in the instrument.
	SectionCount = 7
	// QuestionsPerSection is fixed; every section asks five questions.
	QuestionsPerSection = 5
	// MaxAnswerValue is the highest selectable choice per question.
	MaxAnswerValue = 3

	MaxSectionScore = QuestionsPerSection * MaxAnswerValue
	MaxTotalScore   = SectionCount * MaxSectionScore
)

// RiskTier is the four-level compliance classification derived from the
// aggregate percentage. The ordering is from best to worst.
type RiskTier int

const (
	TierHighCompliance RiskTier = iota
	TierMediumCompliance
	TierLowCompliance
	TierNilCompliance

	tierCount
)

var tierLabels = [tierCount]string{
	TierHighCompliance:   "Alto Cumplimiento/Bajo Riesgo",
	TierMediumCompliance: "Cumplimiento Medio/Riesgo Medio",
	TierLowCompliance:    "Bajo Cumplimiento/Alto Riesgo",
	TierNilCompliance:    "Nulo Cumplimiento/Altísimo Riesgo",
}

// Tiers returns all tiers in declaration order.
func Tiers() []RiskTier {
	return []RiskTier{TierHighCompliance, TierMediumCompliance, TierLowCompliance, TierNilCompliance}
}

// Label returns the Spanish label used in reports and in the evaluaciones
// table (nivel_riesgo column).
func (t RiskTier) Label() string {
	if t < 0 || t >= tierCount {
		return "Desconocido"
	}
	return tierLabels[t]
}

func (t RiskTier) String() string { return t.Label() }

// ParseRiskTier maps a stored label back to its tier.
func ParseRiskTier(label string) (RiskTier, error) {
	for i, l := range tierLabels {
		if l == label {
			return RiskTier(i), nil
		}
	}
	return 0, fmt.Errorf("unknown risk tier label %q", label)
}

func (t RiskTier) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Label())
}

func (t *RiskTier) UnmarshalJSON(b []byte) error {
	var label string
	if err := json.Unmarshal(b, &label); err != nil {
		return err
	}
	tier, err := ParseRiskTier(label)
	if err != nil {
		return err
	}
	*t = tier
	return nil
}

// SectionResult is derived from one section's answers; it is recomputed on
// demand and never edited directly.
type SectionResult struct {
	Section    int `json:"section"`
	Score      int `json:"score"`
	Percentage int `json:"percentage"`
}

// EvaluationResult bundles the outcome of one complete run of the
// questionnaire. Once built it is immutable; a new evaluation replaces it.
type EvaluationResult struct {
	Sections           []SectionResult `json:"sections"`
	TotalScore         int             `json:"total_score"`
	TotalPercentage    int             `json:"total_percentage"`
	RiskTier           RiskTier        `json:"risk_tier"`
	GeneratedAt        time.Time       `json:"generated_at"`
	ZeroFilledSections []int           `json:"zero_filled_sections,omitempty"`
}

// SectionScores returns the seven per-section scores in order.
func (r EvaluationResult) SectionScores() []int {
	out := make([]int, len(r.Sections))
	for i, s := range r.Sections {
		out[i] = s.Score
	}
	return out
}

// SectionPercentages returns the seven per-section percentages in order.
func (r EvaluationResult) SectionPercentages() []int {
	out := make([]int, len(r.Sections))
	for i, s := range r.Sections {
		out[i] = s.Percentage
	}
	return out
}

// UserProfile identifies who ran the evaluation. Phone and industry come
// from the registration form and are not required for report rendering.
type UserProfile struct {
	Nombre    string `json:"nombre" yaml:"nombre"`
	Apellido  string `json:"apellido" yaml:"apellido"`
	Email     string `json:"email" yaml:"email"`
	Empresa   string `json:"empresa" yaml:"empresa"`
	Telefono  string `json:"telefono,omitempty" yaml:"telefono"`
	Industria string `json:"industria,omitempty" yaml:"industria"`
}

// FullName joins first and last name for the identification block.
func (u UserProfile) FullName() string {
	switch {
	case u.Nombre != "" && u.Apellido != "":
		return u.Nombre + " " + u.Apellido
	case u.Nombre != "":
		return u.Nombre
	default:
		return u.Apellido
	}
}
