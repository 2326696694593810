// Package store persists respondents, evaluations and analytics in
// Postgres through GORM.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/agencia43/diagnostico-pdp/internal/config"
	"github.com/agencia43/diagnostico-pdp/internal/evaluation"
)

// ErrEmailTaken reports a registration with an already registered email.
var ErrEmailTaken = errors.New("email already registered")

type Store struct {
	db *gorm.DB
}

// Open connects to Postgres and migrates the schema.
func Open(cfg config.DatabaseConfig) (*Store, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := db.AutoMigrate(
		&User{}, &Evaluation{}, &EmailTracking{},
		&PageView{}, &SessionTrack{}, &PerformanceLog{},
	); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// NewWithDB wraps an existing connection.
func NewWithDB(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Migrate() error {
	return s.db.AutoMigrate(
		&User{}, &Evaluation{}, &EmailTracking{},
		&PageView{}, &SessionTrack{}, &PerformanceLog{},
	)
}

// RegisterUser inserts a new respondent. A duplicate email returns
// ErrEmailTaken so the API can answer 409.
func (s *Store) RegisterUser(u *User) error {
	var count int64
	if err := s.db.Model(&User{}).Where("email = ?", u.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrEmailTaken
	}
	if err := s.db.Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

// FindUserIDByEmail returns the user id for an email, or 0 when absent.
func (s *Store) FindUserIDByEmail(email string) (uint, error) {
	var u User
	err := s.db.Select("id").Where("email = ?", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return u.ID, nil
}

// SaveEvaluation persists one scored questionnaire. The caller scores
// first; this only records.
func (s *Store) SaveEvaluation(ev *Evaluation, result evaluation.EvaluationResult, answers [][]int) error {
	scores, err := json.Marshal(result.SectionScores())
	if err != nil {
		return err
	}
	percentages, err := json.Marshal(result.SectionPercentages())
	if err != nil {
		return err
	}
	rawAnswers, err := json.Marshal(answers)
	if err != nil {
		return err
	}
	ev.PuntuacionTotal = result.TotalScore
	ev.PorcentajeTotal = result.TotalPercentage
	ev.NivelRiesgo = result.RiskTier.Label()
	ev.PuntuacionesJSON = string(scores)
	ev.PorcentajesJSON = string(percentages)
	ev.RespuestasJSON = string(rawAnswers)
	return s.db.Create(ev).Error
}

func (s *Store) MarkPDFGenerated(evaluationID uint) error {
	now := time.Now().UTC()
	return s.db.Model(&Evaluation{}).Where("id = ?", evaluationID).
		Updates(map[string]interface{}{"pdf_generado": true, "fecha_pdf": now}).Error
}

func (s *Store) MarkEmailSent(evaluationID uint) error {
	now := time.Now().UTC()
	return s.db.Model(&Evaluation{}).Where("id = ?", evaluationID).
		Updates(map[string]interface{}{"email_enviado": true, "fecha_email": now}).Error
}

// TrackEmail records a delivery attempt, successful or not.
func (s *Store) TrackEmail(t *EmailTracking) error {
	return s.db.Create(t).Error
}

func (s *Store) RecordPageView(v *PageView) error {
	return s.db.Create(v).Error
}

// RecordSession upserts the session row keyed by session id.
func (s *Store) RecordSession(t *SessionTrack) error {
	var existing SessionTrack
	err := s.db.Where("session_id = ?", t.SessionID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.db.Create(t).Error
	}
	if err != nil {
		return err
	}
	updates := map[string]interface{}{
		"duracion_segundos": t.DuracionSegundos,
		"completo":          existing.Completo || t.Completo,
	}
	return s.db.Model(&existing).Updates(updates).Error
}

func (s *Store) RecordPerformance(p *PerformanceLog) error {
	return s.db.Create(p).Error
}

// Summary is the analytics rollup served to the dashboard.
type Summary struct {
	TotalUsuarios      int64          `json:"totalUsuarios"`
	TotalEvaluaciones  int64          `json:"totalEvaluaciones"`
	PDFsGenerados      int64          `json:"pdfsGenerados"`
	EmailsEnviados     int64          `json:"emailsEnviados"`
	PromedioPorcentaje float64        `json:"promedioPorcentaje"`
	PorNivelRiesgo     map[string]int `json:"porNivelRiesgo"`
}

func (s *Store) AnalyticsSummary() (Summary, error) {
	sum := Summary{PorNivelRiesgo: map[string]int{}}
	if err := s.db.Model(&User{}).Count(&sum.TotalUsuarios).Error; err != nil {
		return sum, err
	}
	if err := s.db.Model(&Evaluation{}).Count(&sum.TotalEvaluaciones).Error; err != nil {
		return sum, err
	}
	if err := s.db.Model(&Evaluation{}).Where("pdf_generado = ?", true).Count(&sum.PDFsGenerados).Error; err != nil {
		return sum, err
	}
	if err := s.db.Model(&Evaluation{}).Where("email_enviado = ?", true).Count(&sum.EmailsEnviados).Error; err != nil {
		return sum, err
	}
	if sum.TotalEvaluaciones > 0 {
		var avg *float64
		if err := s.db.Model(&Evaluation{}).Select("AVG(porcentaje_total)").Scan(&avg).Error; err != nil {
			return sum, err
		}
		if avg != nil {
			sum.PromedioPorcentaje = *avg
		}
	}
	type tierCount struct {
		NivelRiesgo string
		Total       int
	}
	var tiers []tierCount
	if err := s.db.Model(&Evaluation{}).
		Select("nivel_riesgo, COUNT(*) as total").
		Group("nivel_riesgo").
		Scan(&tiers).Error; err != nil {
		return sum, err
	}
	for _, t := range tiers {
		sum.PorNivelRiesgo[t.NivelRiesgo] = t.Total
	}
	return sum, nil
}
