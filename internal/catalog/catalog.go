// Package catalog holds the fixed Spanish-language content of the
// evaluation instrument: section titles, tier colors and the narrative
// blocks rendered into the report. The texts are part of the published
// questionnaire and change only with a new edition of the instrument.
package catalog

import (
	"fmt"

	"github.com/agencia43/diagnostico-pdp/internal/evaluation"
)

// SectionTitles in instrument order, as printed in the results table.
var SectionTitles = [evaluation.SectionCount]string{
	"1. Gobierno y Cumplimiento Normativo",
	"2. Gestión de Consentimientos",
	"3. Medidas de Seguridad",
	"4. Derechos de los Titulares",
	"5. Transferencias de Datos",
	"6. Gestión de Proveedores y Terceros",
	"7. Gestión de Incidentes y Continuidad",
}

// ChartLabels are the shortened titles used under the chart bars.
var ChartLabels = [evaluation.SectionCount]string{
	"1. Gobierno y Cumplimiento",
	"2. Gestión de Consentimientos",
	"3. Medidas de Seguridad",
	"4. Derechos de Titulares",
	"5. Transferencias de Datos",
	"6. Gestión de Proveedores",
	"7. Gestión de Incidentes",
}

// RGB is a plain 8-bit color triple shared by the chart and the report.
type RGB struct {
	R, G, B uint8
}

var (
	colorGreen  = RGB{34, 197, 94}
	colorYellow = RGB{245, 158, 11}
	colorOrange = RGB{249, 115, 22}
	colorRed    = RGB{239, 68, 68}
	colorGray   = RGB{107, 114, 128}
)

// ColorFor maps a risk tier to its presentation color.
func ColorFor(tier evaluation.RiskTier) RGB {
	switch tier {
	case evaluation.TierHighCompliance:
		return colorGreen
	case evaluation.TierMediumCompliance:
		return colorYellow
	case evaluation.TierLowCompliance:
		return colorOrange
	case evaluation.TierNilCompliance:
		return colorRed
	default:
		return colorGray
	}
}

// Action is one row of the priority actions table.
type Action struct {
	Area     string
	Action   string
	Deadline string
}

// Narrative is the tier-dependent prose of the report.
type Narrative struct {
	Situation       string
	Impacts         []string
	PriorityActions []Action
	Recommendations []string
}

// NarrativeFor returns the narrative block for a tier. Every tier has a
// complete block; an unknown tier is an error.
func NarrativeFor(tier evaluation.RiskTier) (Narrative, error) {
	n, ok := narratives[tier]
	if !ok {
		return Narrative{}, fmt.Errorf("no narrative for tier %d", int(tier))
	}
	return n, nil
}

var narratives = map[evaluation.RiskTier]Narrative{
	evaluation.TierHighCompliance: {
		Situation: "La organización demuestra un adecuado nivel de cumplimiento en materia de protección de datos personales, con implementación robusta de controles y medidas de seguridad. Se identifican aspectos menores de mejora que permitirían alcanzar la excelencia en el cumplimiento normativo.",
		Impacts: []string{
			"Exposición mínima a sanciones administrativas",
			"Posicionamiento favorable ante autoridades regulatorias",
			"Base sólida para la confianza de titulares y stakeholders",
			"Ventaja competitiva en términos de cumplimiento",
			"Oportunidades de optimización de procesos existentes",
		},
		PriorityActions: []Action{
			{Area: "Capacitación", Action: "Elaborar un programa de capacitación", Deadline: "Trimestral"},
			{Area: "Revisión", Action: "Actualizar documentación", Deadline: "Semestral"},
			{Area: "Auditoría", Action: "Realizar evaluaciones", Deadline: "Anual"},
			{Area: "Mejora", Action: "Optimizar y automatizar procesos", Deadline: "Continuo"},
		},
		Recommendations: []string{
			"Mantener actualizada la documentación de los registros de los procesos",
			"Implementar mejoras tecnológicas para automatización de registros y eliminación de información",
			"Desarrollar métricas avanzadas de cumplimiento",
			"Establecer programa de mejora continua",
			"Fortalecer la cultura de protección de datos",
		},
	},
	evaluation.TierMediumCompliance: {
		Situation: "La organización cuenta con controles básicos, pero requiere fortalecer sus procesos y documentación para alcanzar un nivel óptimo de cumplimiento. Se registra una implementación parcial de controles y medidas de seguridad que no son suficientes para alcanzar un nivel adecuado.",
		Impacts: []string{
			"Exposición moderada a sanciones administrativas",
			"Vulnerabilidades específicas en el tratamiento de datos",
			"Riesgo de pérdida de confianza de titulares",
			"Potencial afectación a la confianza de grupos de interés",
			"Necesidad de fortalecer procesos existentes",
		},
		PriorityActions: []Action{
			{Area: "Documentación", Action: "Completar registros faltantes y actualizar la documentación", Deadline: "1-2 meses"},
			{Area: "Procesos", Action: "Formalizar procedimientos y validar su funcionamiento", Deadline: "2-3 meses"},
			{Area: "Seguridad", Action: "Fortalecer controles existentes", Deadline: "3 meses"},
			{Area: "Monitoreo", Action: "Implementar indicadores", Deadline: "3 meses"},
		},
		Recommendations: []string{
			"Realizar una revisión detallada de los procesos actuales",
			"Actualizar políticas y procedimientos existentes",
			"Fortalecer los controles de seguridad implementados",
			"Mejorar los mecanismos de obtención y gestión de consentimientos",
			"Establecer indicadores de cumplimiento y seguimiento",
		},
	},
	evaluation.TierLowCompliance: {
		Situation: "La organización presenta vulnerabilidades críticas en la protección de datos personales, con ausencia de controles básicos y alto riesgo de incumplimiento normativo. Se identifican brechas críticas que requieren atención inmediata para mitigar riesgos sustanciales.",
		Impacts: []string{
			"Alta exposición a sanciones administrativas y multas",
			"Riesgo significativo de filtración de datos",
			"Afectación grave a la reputación organizacional",
			"Afectación grave a la reputación organizacional",
			"Riesgo de pérdidas económicas significativas",
		},
		PriorityActions: []Action{
			{Area: "Gobierno", Action: "Designar DPO/Oficial de Protección y estructura para cumplimiento", Deadline: "Inmediato"},
			{Area: "Legal", Action: "Desarrollar política de protección", Deadline: "1-2 meses"},
			{Area: "Operativo", Action: "Implementar controles básicos", Deadline: "2-3 meses"},
			{Area: "Capacitación", Action: "Formar al personal clave", Deadline: "1 mes"},
		},
		Recommendations: []string{
			"Designación inmediata de responsables",
			"Realizar una auditoría urgente de la gestión y protección de los datos personales.",
			"Establecer un programa de cumplimiento normativo y el respectivo presupuesto.",
			"Implementar controles de seguridad básicos, tanto a nivel lógico como físico.",
			"Desarrollar procedimientos para la obtención, registro y almacenamiento del consentimiento del titular",
			"Elaborar un plan de respuesta a incidentes",
		},
	},
	evaluation.TierNilCompliance: {
		Situation: "La organización presenta un estado crítico de incumplimiento total en materia de protección de datos personales, con ausencia absoluta de controles y medidas básicas de seguridad. No se identifican políticas, procedimientos ni responsables designados para el tratamiento de datos personales.",
		Impacts: []string{
			"Exposición inmediata a sanciones administrativas máximas",
			"Riesgo inminente de filtración y pérdida de datos",
			"Alta probabilidad de demandas por parte de titulares",
			"Daño severo e inmediato a la reputación empresarial",
			"Posible suspensión de operaciones por incumplimiento grave",
			"Responsabilidad personal de directivos",
		},
		PriorityActions: []Action{
			{Area: "Gobierno", Action: "Designar DPO y un equipo de trabajo", Deadline: "Inmediato"},
			{Area: "Legal", Action: "Implementar medidas básicas de cumplimiento del marco normativo", Deadline: "3 semanas"},
			{Area: "Operativo", Action: "Implementar controles básicos", Deadline: "3 semanas"},
			{Area: "Capacitación", Action: "Capacitación al personal", Deadline: "1 mes"},
		},
		Recommendations: []string{
			"Suspender temporalmente todo tratamiento no esencial de datos personales",
			"Realizar auditoría de protección de datos personales",
			"Implementar controles de seguridad críticos inmediatos",
			"Establecer protocolos de emergencia para protección de datos",
			"Notificar a la dirección sobre riesgos legales personales",
			"Asegurar presupuesto para cumplimiento",
		},
	},
}

// Scope is the fixed "Alcance" paragraph printed in every report.
const Scope = "La presente evaluación preliminar básica abarca la revisión del cumplimiento en materia de protección de datos personales en posición de la organización. El alcance comprende la evaluación de siete dimensiones fundamentales: (1) gobierno y cumplimiento normativo, (2) gestión de consentimientos, (3) medidas de seguridad, (4) derechos de los titulares, (5) transferencias de datos, (6) gestión de proveedores y terceros, y (7) gestión de incidentes y continuidad."

// Observations is the fixed "Observaciones" paragraph.
const Observations = "Es fundamental mantener un programa de revisión continua y actualización de medidas de protección de datos personales. Es necesario enfatizar la importancia crítica de documentar todas las acciones y decisiones tomadas en materia de protección de datos. Para la completa gestión legal para el cumplimiento normativo, se recomienda contratar asesoría especializada."

// Copyright and LegalDisclaimer close the last page of the report.
const (
	Copyright       = "© 2025 Agencia43 S.A.S. Todos los derechos reservados."
	LegalDisclaimer = "Este material es propiedad intelectual protegida. Queda estrictamente prohibida su reproducción total o parcial, su venta, distribución, uso comercial o aprovechamiento para servicios de consultoría sin la autorización expresa de Agencia43 S.A.S. Para solicitar permisos de uso, contactar a: contacto@agencia43.com"
)

const Website = "https://agencia43.com/"

// Validate checks that every tier has a complete narrative block. It runs
// from tests and at pipeline start so a truncated catalog fails loudly.
func Validate() error {
	for _, tier := range evaluation.Tiers() {
		n, ok := narratives[tier]
		if !ok {
			return fmt.Errorf("tier %q: missing narrative", tier.Label())
		}
		if n.Situation == "" {
			return fmt.Errorf("tier %q: empty situation", tier.Label())
		}
		if len(n.Impacts) == 0 {
			return fmt.Errorf("tier %q: no impacts", tier.Label())
		}
		if len(n.PriorityActions) == 0 {
			return fmt.Errorf("tier %q: no priority actions", tier.Label())
		}
		for _, a := range n.PriorityActions {
			if a.Area == "" || a.Action == "" || a.Deadline == "" {
				return fmt.Errorf("tier %q: incomplete priority action", tier.Label())
			}
		}
		if len(n.Recommendations) == 0 {
			return fmt.Errorf("tier %q: no recommendations", tier.Label())
		}
	}
	for i, t := range SectionTitles {
		if t == "" {
			return fmt.Errorf("section %d: empty title", i+1)
		}
	}
	return nil
}
