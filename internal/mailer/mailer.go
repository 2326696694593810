// Package mailer sends the evaluation report by SMTP. Delivery is
// attempted at most once per request; the caller records the outcome.
package mailer

import (
	"bytes"
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"github.com/agencia43/diagnostico-pdp/internal/config"
)

const attachmentName = "Informe_Evaluacion_PDP.pdf"

// Mailer builds and sends report emails.
type Mailer struct {
	cfg config.EmailConfig
}

func New(cfg config.EmailConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

// Subject returns the subject line for a company's report email.
func Subject(empresa string) string {
	return fmt.Sprintf("Informe de Evaluación de Protección de Datos - %s", empresa)
}

// SendReport emails the PDF to one recipient.
func (m *Mailer) SendReport(ctx context.Context, to, nombre, empresa string, pdf []byte) error {
	if len(pdf) == 0 {
		return fmt.Errorf("empty report")
	}
	msg := gomail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return fmt.Errorf("sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("recipient address: %w", err)
	}
	msg.Subject(Subject(empresa))
	msg.SetBodyString(gomail.TypeTextHTML, body(nombre, empresa))
	if err := msg.AttachReader(attachmentName, bytes.NewReader(pdf)); err != nil {
		return fmt.Errorf("attach report: %w", err)
	}

	client, err := gomail.NewClient(m.cfg.Host,
		gomail.WithPort(m.cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(m.cfg.Username),
		gomail.WithPassword(m.cfg.Password),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send report: %w", err)
	}
	return nil
}

func body(nombre, empresa string) string {
	return fmt.Sprintf(`<p>Estimado(a) %s,</p>
<p>Adjunto encontrará el informe de evaluación de protección de datos personales de <strong>%s</strong>.</p>
<p>El informe incluye los resultados por sección, el nivel de riesgo identificado y las acciones prioritarias recomendadas.</p>
<p>Cordialmente,<br>Equipo Diagnóstico PDP<br>Agencia43 S.A.S.</p>`, nombre, empresa)
}
