// Package httpapi exposes the registration, evaluation, report and
// analytics endpoints consumed by the questionnaire front end.
package httpapi

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/agencia43/diagnostico-pdp/internal/config"
	"github.com/agencia43/diagnostico-pdp/internal/evaluation"
	"github.com/agencia43/diagnostico-pdp/internal/store"
)

// Repository is the persistence surface the handlers need. *store.Store
// satisfies it; tests substitute fakes.
type Repository interface {
	RegisterUser(u *store.User) error
	FindUserIDByEmail(email string) (uint, error)
	SaveEvaluation(ev *store.Evaluation, result evaluation.EvaluationResult, answers [][]int) error
	MarkPDFGenerated(evaluationID uint) error
	MarkEmailSent(evaluationID uint) error
	TrackEmail(t *store.EmailTracking) error
	RecordPageView(v *store.PageView) error
	RecordSession(t *store.SessionTrack) error
	RecordPerformance(p *store.PerformanceLog) error
	AnalyticsSummary() (store.Summary, error)
}

// Sender delivers report emails.
type Sender interface {
	SendReport(ctx context.Context, to, nombre, empresa string, pdf []byte) error
}

type Server struct {
	repo    Repository
	sender  Sender
	logoURL string
	engine  *gin.Engine
}

func NewServer(cfg *config.Config, repo Repository, sender Sender) *Server {
	s := &Server{
		repo:    repo,
		sender:  sender,
		logoURL: cfg.Report.LogoURL,
	}

	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(cfg.Server.CORSOrigins) == 1 && cfg.Server.CORSOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.Server.CORSOrigins
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "X-Session-Id")
	engine.Use(cors.New(corsCfg))
	engine.Use(s.sessionMiddleware(), s.performanceMiddleware())

	api := engine.Group("/api")
	{
		api.POST("/registro", s.handleRegistro)
		api.POST("/guardar-evaluacion", s.handleGuardarEvaluacion)
		api.POST("/marcar-pdf-generado", s.handleMarcarPDFGenerado)
		api.POST("/pdf/resultados", s.handlePDFResultados)
		api.POST("/email/resultados", s.handleEmailResultados)
		api.POST("/enviar-informe", s.handleEmailResultados)
		api.POST("/track-session", s.handleTrackSession)
		api.GET("/analytics/resumen", s.handleAnalyticsResumen)
	}
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	s.engine = engine
	return s
}

// Router exposes the configured engine for http.Server and tests.
func (s *Server) Router() *gin.Engine {
	return s.engine
}

const sessionHeader = "X-Session-Id"

// sessionMiddleware assigns a session id when the client did not send one
// and echoes it back so the front end can persist it.
func (s *Server) sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := c.GetHeader(sessionHeader)
		if sid == "" {
			sid = uuid.NewString()
		}
		c.Set("sessionID", sid)
		c.Header(sessionHeader, sid)
		c.Next()
	}
}

// performanceMiddleware samples latency per endpoint. Recording failures
// never affect the request.
func (s *Server) performanceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		_ = s.repo.RecordPerformance(&store.PerformanceLog{
			Endpoint:   c.FullPath(),
			Metodo:     c.Request.Method,
			DuracionMs: time.Since(start).Milliseconds(),
			Estado:     c.Writer.Status(),
		})
	}
}
