package store

import "time"

// User is one registered respondent. Email is unique; re-registering the
// same address is rejected so evaluations stay attached to one identity.
type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Nombre         string    `gorm:"size:100;not null" json:"nombre"`
	Apellido       string    `gorm:"size:100;not null" json:"apellido"`
	Email          string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Telefono       string    `gorm:"size:20" json:"telefono"`
	Empresa        string    `gorm:"size:255" json:"empresa"`
	Industria      string    `gorm:"size:100" json:"industria"`
	AceptaUso      bool      `json:"aceptaUso"`
	AceptaContacto bool      `json:"aceptaContacto"`
	IPRegistro     string    `gorm:"size:45" json:"-"`
	UserAgent      string    `gorm:"size:500" json:"-"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (User) TableName() string { return "usuarios" }

// Evaluation is one completed questionnaire. Per-section arrays are stored
// as JSON text so the row stays readable from plain SQL.
type Evaluation struct {
	ID                  uint       `gorm:"primaryKey" json:"id"`
	UsuarioID           *uint      `gorm:"index" json:"usuarioId"`
	PuntuacionTotal     int        `gorm:"not null" json:"puntuacionTotal"`
	PorcentajeTotal     int        `gorm:"not null" json:"porcentajeTotal"`
	NivelRiesgo         string     `gorm:"size:100;not null" json:"nivelRiesgo"`
	PuntuacionesJSON    string     `gorm:"column:puntuaciones_secciones;type:text" json:"-"`
	PorcentajesJSON     string     `gorm:"column:porcentajes_secciones;type:text" json:"-"`
	RespuestasJSON      string     `gorm:"column:respuestas_completas;type:text" json:"-"`
	TiempoCompletadoMin int        `json:"tiempoCompletadoMinutos"`
	IPEvaluacion        string     `gorm:"size:45" json:"-"`
	PDFGenerado         bool       `json:"pdfGenerado"`
	FechaPDF            *time.Time `json:"fechaPdf"`
	EmailEnviado        bool       `json:"emailEnviado"`
	FechaEmail          *time.Time `json:"fechaEmail"`
	CreatedAt           time.Time  `json:"createdAt"`
}

func (Evaluation) TableName() string { return "evaluaciones" }

// EmailTracking records each attempted report delivery.
type EmailTracking struct {
	ID           uint      `gorm:"primaryKey"`
	EvaluacionID *uint     `gorm:"index"`
	Destinatario string    `gorm:"size:255;not null"`
	Asunto       string    `gorm:"size:500"`
	Estado       string    `gorm:"size:50;not null"`
	Error        string    `gorm:"type:text"`
	CreatedAt    time.Time
}

func (EmailTracking) TableName() string { return "email_tracking" }

// PageView is one analytics page hit.
type PageView struct {
	ID        uint   `gorm:"primaryKey"`
	SessionID string `gorm:"size:64;index"`
	Pagina    string `gorm:"size:255"`
	Referrer  string `gorm:"size:500"`
	IP        string `gorm:"size:45"`
	UserAgent string `gorm:"size:500"`
	CreatedAt time.Time
}

func (PageView) TableName() string { return "analytics_page_views" }

// SessionTrack is the per-session analytics record.
type SessionTrack struct {
	ID               uint   `gorm:"primaryKey"`
	SessionID        string `gorm:"size:64;uniqueIndex;not null"`
	PaginaEntrada    string `gorm:"size:255"`
	DuracionSegundos int
	Completo         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (SessionTrack) TableName() string { return "analytics_sesiones" }

// PerformanceLog records request latency samples.
type PerformanceLog struct {
	ID         uint   `gorm:"primaryKey"`
	Endpoint   string `gorm:"size:255;index"`
	Metodo     string `gorm:"size:10"`
	DuracionMs int64
	Estado     int
	CreatedAt  time.Time
}

func (PerformanceLog) TableName() string { return "system_performance" }
