package httpapi

import (
	"context"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/agencia43/diagnostico-pdp/internal/chart"
	"github.com/agencia43/diagnostico-pdp/internal/evaluation"
	"github.com/agencia43/diagnostico-pdp/internal/pdfreport"
	"github.com/agencia43/diagnostico-pdp/internal/store"
)

var phonePattern = regexp.MustCompile(`^[0-9+\-\s()]{6,20}$`)

type registroRequest struct {
	Nombre         string `json:"nombre"`
	Apellido       string `json:"apellido"`
	Email          string `json:"email"`
	Telefono       string `json:"telefono"`
	Empresa        string `json:"empresa"`
	Industria      string `json:"industria"`
	AceptaUso      bool   `json:"aceptaUso"`
	AceptaContacto bool   `json:"aceptaContacto"`
}

func (s *Server) handleRegistro(c *gin.Context) {
	var req registroRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cuerpo de solicitud inválido"})
		return
	}
	if msg := validateRegistro(req); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	user := &store.User{
		Nombre:         strings.TrimSpace(req.Nombre),
		Apellido:       strings.TrimSpace(req.Apellido),
		Email:          strings.ToLower(strings.TrimSpace(req.Email)),
		Telefono:       strings.TrimSpace(req.Telefono),
		Empresa:        strings.TrimSpace(req.Empresa),
		Industria:      strings.TrimSpace(req.Industria),
		AceptaUso:      req.AceptaUso,
		AceptaContacto: req.AceptaContacto,
		IPRegistro:     c.ClientIP(),
		UserAgent:      c.Request.UserAgent(),
	}
	if err := s.repo.RegisterUser(user); err != nil {
		if err == store.ErrEmailTaken {
			c.JSON(http.StatusConflict, gin.H{"error": "el correo ya está registrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo registrar el usuario"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "usuarioId": user.ID})
}

func validateRegistro(req registroRequest) string {
	switch {
	case strings.TrimSpace(req.Nombre) == "":
		return "el nombre es obligatorio"
	case strings.TrimSpace(req.Apellido) == "":
		return "el apellido es obligatorio"
	case strings.TrimSpace(req.Email) == "" || !strings.Contains(req.Email, "@"):
		return "el correo electrónico no es válido"
	case strings.TrimSpace(req.Empresa) == "":
		return "la empresa es obligatoria"
	case !req.AceptaUso:
		return "debe aceptar el uso de datos"
	}
	if t := strings.TrimSpace(req.Telefono); t != "" && !phonePattern.MatchString(t) {
		return "el teléfono no es válido"
	}
	return ""
}

type guardarEvaluacionRequest struct {
	Email                   string  `json:"email"`
	UsuarioID               *uint   `json:"usuarioId"`
	Secciones               [][]int `json:"secciones"`
	TiempoCompletadoMinutos int     `json:"tiempoCompletadoMinutos"`
}

func (s *Server) handleGuardarEvaluacion(c *gin.Context) {
	var req guardarEvaluacionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cuerpo de solicitud inválido"})
		return
	}
	result, err := evaluation.Aggregate(req.Secciones, evaluation.AggregateOptions{})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	usuarioID := req.UsuarioID
	if usuarioID == nil && strings.TrimSpace(req.Email) != "" {
		id, err := s.repo.FindUserIDByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
		if err == nil && id != 0 {
			usuarioID = &id
		}
	}

	ev := &store.Evaluation{
		UsuarioID:           usuarioID,
		TiempoCompletadoMin: req.TiempoCompletadoMinutos,
		IPEvaluacion:        c.ClientIP(),
	}
	if err := s.repo.SaveEvaluation(ev, result, req.Secciones); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo guardar la evaluación"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success":      true,
		"evaluacionId": ev.ID,
		"resultado": gin.H{
			"puntuacionTotal": result.TotalScore,
			"porcentajeTotal": result.TotalPercentage,
			"nivelRiesgo":     result.RiskTier.Label(),
			"secciones":       result.Sections,
		},
	})
}

type marcarPDFRequest struct {
	EvaluacionID uint `json:"evaluacionId"`
}

func (s *Server) handleMarcarPDFGenerado(c *gin.Context) {
	var req marcarPDFRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.EvaluacionID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "evaluacionId es obligatorio"})
		return
	}
	if err := s.repo.MarkPDFGenerated(req.EvaluacionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo actualizar la evaluación"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type resultadosRequest struct {
	UsuarioData  evaluation.UserProfile `json:"usuarioData"`
	Secciones    [][]int                `json:"secciones"`
	EvaluacionID *uint                  `json:"evaluacionId"`
}

// buildReport scores the posted answers and renders the chart and PDF.
func (s *Server) buildReport(ctx context.Context, req resultadosRequest) ([]byte, evaluation.EvaluationResult, error) {
	result, err := evaluation.Aggregate(req.Secciones, evaluation.AggregateOptions{})
	if err != nil {
		return nil, result, err
	}
	if err := evaluation.ValidateUser(req.UsuarioData); err != nil {
		return nil, result, err
	}

	presenter := chart.NewPresenter()
	var chartPNG []byte
	if err := presenter.Render(result.SectionPercentages()); err == nil {
		chartPNG, _ = presenter.PNG()
		defer presenter.Destroy()
	}

	var logo []byte
	if s.logoURL != "" {
		logo, _ = pdfreport.FetchLogo(ctx, s.logoURL)
	}
	pdfBytes, _, err := pdfreport.NewRenderer().Render(pdfreport.Input{
		User:     req.UsuarioData,
		Result:   result,
		ChartPNG: chartPNG,
		Logo:     logo,
	})
	return pdfBytes, result, err
}

func (s *Server) handlePDFResultados(c *gin.Context) {
	var req resultadosRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cuerpo de solicitud inválido"})
		return
	}
	pdfBytes, _, err := s.buildReport(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.EvaluacionID != nil {
		_ = s.repo.MarkPDFGenerated(*req.EvaluacionID)
	}
	c.Header("Content-Disposition", `attachment; filename="Informe_Evaluacion_PDP.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

func (s *Server) handleEmailResultados(c *gin.Context) {
	var req resultadosRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cuerpo de solicitud inválido"})
		return
	}
	pdfBytes, _, err := s.buildReport(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tracking := &store.EmailTracking{
		EvaluacionID: req.EvaluacionID,
		Destinatario: req.UsuarioData.Email,
		Asunto:       emailSubject(req.UsuarioData.Empresa),
	}
	sendErr := s.sender.SendReport(c.Request.Context(), req.UsuarioData.Email, req.UsuarioData.Nombre, req.UsuarioData.Empresa, pdfBytes)
	if sendErr != nil {
		tracking.Estado = "fallido"
		tracking.Error = sendErr.Error()
		_ = s.repo.TrackEmail(tracking)
		c.JSON(http.StatusBadGateway, gin.H{"error": "no se pudo enviar el correo"})
		return
	}
	tracking.Estado = "enviado"
	_ = s.repo.TrackEmail(tracking)
	if req.EvaluacionID != nil {
		_ = s.repo.MarkEmailSent(*req.EvaluacionID)
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type trackSessionRequest struct {
	Pagina           string `json:"pagina"`
	Referrer         string `json:"referrer"`
	DuracionSegundos int    `json:"duracionSegundos"`
	Completo         bool   `json:"completo"`
}

func (s *Server) handleTrackSession(c *gin.Context) {
	var req trackSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cuerpo de solicitud inválido"})
		return
	}
	sid := c.GetString("sessionID")
	_ = s.repo.RecordPageView(&store.PageView{
		SessionID: sid,
		Pagina:    req.Pagina,
		Referrer:  req.Referrer,
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err := s.repo.RecordSession(&store.SessionTrack{
		SessionID:        sid,
		PaginaEntrada:    req.Pagina,
		DuracionSegundos: req.DuracionSegundos,
		Completo:         req.Completo,
	}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo registrar la sesión"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "sessionId": sid})
}

func (s *Server) handleAnalyticsResumen(c *gin.Context) {
	sum, err := s.repo.AnalyticsSummary()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo calcular el resumen"})
		return
	}
	c.JSON(http.StatusOK, sum)
}

func emailSubject(empresa string) string {
	return "Informe de Evaluación de Protección de Datos - " + empresa
}
