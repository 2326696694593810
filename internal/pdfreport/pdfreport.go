// Package pdfreport assembles the Spanish-language evaluation report. The
// layout is block based: each block knows its height up front and either
// fits on the current page or opens a new one, so pagination for a given
// input is deterministic.
package pdfreport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/agencia43/diagnostico-pdp/internal/catalog"
	"github.com/agencia43/diagnostico-pdp/internal/evaluation"
)

const (
	pageWidth     = 210.0
	usableBottom  = 280.0
	contentLeft   = 20.0
	contentWidth  = 170.0
	continuedTop  = 40.0
	lineHeight    = 4.0
	logoTimeout   = 5 * time.Second
	maxLogoBytes  = 1 << 20
	chartImageTag = "grafico-secciones"
	logoImageTag  = "logo-agencia"
)

// Input carries everything a report needs. ChartPNG and Logo are optional;
// their absence degrades the report with a warning instead of failing it.
type Input struct {
	User        evaluation.UserProfile
	Result      evaluation.EvaluationResult
	ChartPNG    []byte
	Logo        []byte
	GeneratedAt time.Time
}

// PagePlan records which blocks landed on which page, plus any degraded
// content. Snapshot tests assert on it without parsing PDF bytes.
type PagePlan struct {
	Pages    [][]string
	Warnings []string
}

type block struct {
	id     string
	height float64
	draw   func(y float64)
}

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render produces the report PDF. Identity and score data are required;
// chart and logo are best effort.
func (r *Renderer) Render(in Input) ([]byte, PagePlan, error) {
	var plan PagePlan
	if err := evaluation.ValidateUser(in.User); err != nil {
		return nil, plan, err
	}
	if len(in.Result.Sections) != evaluation.SectionCount {
		return nil, plan, &evaluation.MissingRequiredDataError{Field: "sections"}
	}
	generated := in.GeneratedAt
	if generated.IsZero() {
		generated = in.Result.GeneratedAt
	}
	if generated.IsZero() {
		generated = time.Now().UTC()
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AliasNbPages("")
	pdf.SetHeaderFunc(func() {
		if pdf.PageNo() <= 1 {
			return
		}
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.Text(contentLeft, 12, catalog.Website)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(120, 120, 120)
		label := fmt.Sprintf("Página %d de {nb}", pdf.PageNo())
		pdf.SetXY(0, 287)
		pdf.CellFormat(pageWidth, 5, tr(label), "", 0, "C", false, 0, "")
		pdf.SetXY(pageWidth-60, 287)
		pdf.CellFormat(40, 5, generated.Format("02/01/2006"), "", 0, "R", false, 0, "")
	})

	chartOK := registerChart(pdf, in.ChartPNG, &plan)
	logoOK := registerLogo(pdf, in.Logo, &plan)

	s := &state{pdf: pdf, tr: tr, plan: &plan}
	pdf.AddPage()
	plan.Pages = append(plan.Pages, nil)

	s.place(r.headerBlock(s, in, generated, logoOK))
	s.place(r.identityBlock(s, in, generated))
	s.place(r.riskBannerBlock(s, in.Result))
	s.place(r.paragraphBlock(s, "alcance", "Alcance de la Evaluación", catalog.Scope))
	s.place(r.resultsTableBlock(s, in.Result))
	if chartOK {
		s.place(block{id: "chart", height: 70, draw: func(y float64) {
			pdf.ImageOptions(chartImageTag, contentLeft, y, contentWidth, 65, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
		}})
	}

	narrative, err := catalog.NarrativeFor(in.Result.RiskTier)
	if err != nil {
		return nil, plan, err
	}
	s.place(r.paragraphBlock(s, "situacion", "Situación Actual", narrative.Situation))
	s.place(r.listBlock(s, "repercusiones", "Posibles Repercusiones", narrative.Impacts))
	s.place(r.actionsBlock(s, narrative.PriorityActions))
	s.place(r.listBlock(s, "recomendaciones", "Recomendaciones", narrative.Recommendations))
	s.place(r.paragraphBlock(s, "observaciones", "Observaciones", catalog.Observations))
	s.placeLegal(r.legalBlock(s))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, plan, fmt.Errorf("emit pdf: %w", err)
	}
	return buf.Bytes(), plan, nil
}

type state struct {
	pdf  *fpdf.Fpdf
	tr   func(string) string
	plan *PagePlan
	y    float64
}

func (s *state) place(b block) {
	if s.y+b.height > usableBottom {
		s.newPage()
	}
	b.draw(s.y)
	s.y += b.height
	last := len(s.plan.Pages) - 1
	s.plan.Pages[last] = append(s.plan.Pages[last], b.id)
}

// placeLegal pins the closing legal block near the bottom of the last page.
func (s *state) placeLegal(b block) {
	top := usableBottom - b.height
	if s.y > top {
		s.newPage()
	}
	b.draw(top)
	last := len(s.plan.Pages) - 1
	s.plan.Pages[last] = append(s.plan.Pages[last], b.id)
	s.y = usableBottom
}

func (s *state) newPage() {
	s.pdf.AddPage()
	s.plan.Pages = append(s.plan.Pages, nil)
	s.y = continuedTop
}

func (r *Renderer) headerBlock(s *state, in Input, generated time.Time, logoOK bool) block {
	return block{id: "header", height: 38, draw: func(float64) {
		s.pdf.SetFillColor(240, 240, 240)
		s.pdf.Rect(0, 0, pageWidth, 30, "F")
		if logoOK {
			s.pdf.ImageOptions(logoImageTag, 175, 5, 25, 20, false, fpdf.ImageOptions{}, 0, "")
		}
		s.pdf.SetTextColor(0, 0, 0)
		s.pdf.SetFont("Helvetica", "B", 16)
		s.pdf.SetXY(0, 11)
		s.pdf.CellFormat(pageWidth, 8, s.tr("INFORME DE EVALUACIÓN"), "", 0, "C", false, 0, "")
		s.pdf.SetFont("Helvetica", "", 12)
		s.pdf.SetXY(0, 21)
		s.pdf.CellFormat(pageWidth, 8, s.tr("Protección de Datos Personales"), "", 0, "C", false, 0, "")
	}}
}

func (r *Renderer) identityBlock(s *state, in Input, generated time.Time) block {
	rows := [][2]string{
		{"Elaborado por:", in.User.FullName()},
		{"Correo electrónico:", in.User.Email},
		{"Empresa:", in.User.Empresa},
		{"Fecha:", generated.Format("02/01/2006")},
	}
	height := float64(len(rows))*3.5 + 6
	return block{id: "identity", height: height, draw: func(y float64) {
		s.pdf.SetTextColor(0, 0, 0)
		line := y + 2
		for _, row := range rows {
			s.pdf.SetFont("Helvetica", "B", 9)
			s.pdf.Text(contentLeft, line, s.tr(row[0]))
			s.pdf.SetFont("Helvetica", "", 9)
			s.pdf.Text(70, line, s.tr(row[1]))
			line += 3.5
		}
	}}
}

func (r *Renderer) riskBannerBlock(s *state, result evaluation.EvaluationResult) block {
	return block{id: "risk-banner", height: 22, draw: func(y float64) {
		c := catalog.ColorFor(result.RiskTier)
		s.pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
		s.pdf.Rect(contentLeft, y, contentWidth, 16, "F")
		s.pdf.SetTextColor(255, 255, 255)
		s.pdf.SetFont("Helvetica", "B", 11)
		s.pdf.SetXY(contentLeft, y+3)
		s.pdf.CellFormat(contentWidth, 6, s.tr(strings.ToUpper(result.RiskTier.Label())), "", 0, "C", false, 0, "")
		s.pdf.SetFont("Helvetica", "", 9)
		s.pdf.SetXY(contentLeft, y+10)
		s.pdf.CellFormat(contentWidth, 5, s.tr(fmt.Sprintf("Nivel de cumplimiento: %d%%", result.TotalPercentage)), "", 0, "C", false, 0, "")
		s.pdf.SetTextColor(0, 0, 0)
	}}
}

func (r *Renderer) resultsTableBlock(s *state, result evaluation.EvaluationResult) block {
	height := 6 + float64(len(result.Sections)+1)*5 + 4
	return block{id: "results-table", height: height, draw: func(y float64) {
		s.pdf.SetFont("Helvetica", "B", 8)
		s.pdf.SetFillColor(220, 220, 220)
		s.pdf.Rect(contentLeft, y, contentWidth, 6, "F")
		s.pdf.Text(25, y+4, s.tr("Sección"))
		s.pdf.Text(160, y+4, "Porcentaje")
		line := y + 6
		s.pdf.SetFont("Helvetica", "", 8)
		for i, sec := range result.Sections {
			if i%2 == 1 {
				s.pdf.SetFillColor(250, 250, 250)
				s.pdf.Rect(contentLeft, line, contentWidth, 5, "F")
			}
			s.pdf.Text(25, line+3.5, s.tr(catalog.SectionTitles[i]))
			s.pdf.Text(165, line+3.5, fmt.Sprintf("%d%%", sec.Percentage))
			line += 5
		}
		s.pdf.SetFillColor(200, 200, 200)
		s.pdf.Rect(contentLeft, line, contentWidth, 5, "F")
		s.pdf.SetFont("Helvetica", "B", 8)
		s.pdf.Text(25, line+3.5, "TOTAL")
		s.pdf.Text(165, line+3.5, fmt.Sprintf("%d%%", result.TotalPercentage))
	}}
}

func (r *Renderer) paragraphBlock(s *state, id, heading, body string) block {
	s.pdf.SetFont("Helvetica", "", 9)
	lines := s.pdf.SplitText(s.tr(body), contentWidth)
	height := 7 + float64(len(lines))*lineHeight + 4
	return block{id: id, height: height, draw: func(y float64) {
		s.pdf.SetFont("Helvetica", "B", 11)
		s.pdf.Text(contentLeft, y+5, s.tr(heading))
		s.pdf.SetFont("Helvetica", "", 9)
		line := y + 7 + lineHeight
		for _, l := range lines {
			s.pdf.Text(contentLeft, line, l)
			line += lineHeight
		}
	}}
}

func (r *Renderer) listBlock(s *state, id, heading string, items []string) block {
	s.pdf.SetFont("Helvetica", "", 9)
	type wrapped struct {
		letter string
		lines  []string
	}
	entries := make([]wrapped, len(items))
	total := 0
	for i, item := range items {
		letter := fmt.Sprintf("%c)", 'a'+i)
		lines := s.pdf.SplitText(s.tr(item), contentWidth-5)
		entries[i] = wrapped{letter: letter, lines: lines}
		total += len(lines)
	}
	height := 7 + float64(total)*lineHeight + 4
	return block{id: id, height: height, draw: func(y float64) {
		s.pdf.SetFont("Helvetica", "B", 11)
		s.pdf.Text(contentLeft, y+5, s.tr(heading))
		s.pdf.SetFont("Helvetica", "", 9)
		line := y + 7 + lineHeight
		for _, e := range entries {
			s.pdf.Text(contentLeft, line, e.letter)
			for _, l := range e.lines {
				s.pdf.Text(25, line, l)
				line += lineHeight
			}
		}
	}}
}

func (r *Renderer) actionsBlock(s *state, actions []catalog.Action) block {
	colWidths := [3]float64{50, 85, 35}
	headers := [3]string{"Área", "Acción recomendada", "Plazo máximo sugerido"}
	s.pdf.SetFont("Helvetica", "", 8)
	type row struct {
		cells  [3][]string
		height float64
	}
	rows := make([]row, len(actions))
	total := 0.0
	for i, a := range actions {
		cells := [3][]string{
			s.pdf.SplitText(s.tr(a.Area), colWidths[0]-4),
			s.pdf.SplitText(s.tr(a.Action), colWidths[1]-4),
			s.pdf.SplitText(s.tr(a.Deadline), colWidths[2]-4),
		}
		maxLines := 1
		for _, c := range cells {
			if len(c) > maxLines {
				maxLines = len(c)
			}
		}
		h := float64(maxLines)*lineHeight + 2
		rows[i] = row{cells: cells, height: h}
		total += h
	}
	height := 7 + 6 + total + 4
	return block{id: "acciones", height: height, draw: func(y float64) {
		s.pdf.SetFont("Helvetica", "B", 11)
		s.pdf.Text(contentLeft, y+5, "Acciones Prioritarias")
		top := y + 7
		s.pdf.SetFont("Helvetica", "B", 8)
		s.pdf.SetFillColor(220, 220, 220)
		s.pdf.Rect(contentLeft, top, contentWidth, 6, "F")
		x := contentLeft
		for i, h := range headers {
			s.pdf.Text(x+2, top+4, s.tr(h))
			x += colWidths[i]
		}
		top += 6
		s.pdf.SetFont("Helvetica", "", 8)
		for ri, rw := range rows {
			if ri%2 == 1 {
				s.pdf.SetFillColor(250, 250, 250)
				s.pdf.Rect(contentLeft, top, contentWidth, rw.height, "F")
			}
			x = contentLeft
			for ci, cell := range rw.cells {
				line := top + 3.5
				for _, l := range cell {
					s.pdf.Text(x+2, line, l)
					line += lineHeight
				}
				x += colWidths[ci]
			}
			top += rw.height
		}
	}}
}

func (r *Renderer) legalBlock(s *state) block {
	s.pdf.SetFont("Helvetica", "", 7)
	lines := s.pdf.SplitText(s.tr(catalog.LegalDisclaimer), contentWidth)
	height := 6 + float64(len(lines))*3.2
	return block{id: "legal", height: height, draw: func(y float64) {
		s.pdf.SetTextColor(100, 100, 100)
		s.pdf.SetFont("Helvetica", "B", 8)
		s.pdf.SetXY(0, y)
		s.pdf.CellFormat(pageWidth, 4, s.tr(catalog.Copyright), "", 0, "C", false, 0, "")
		s.pdf.SetFont("Helvetica", "", 7)
		line := y + 7
		for _, l := range lines {
			s.pdf.Text(contentLeft, line, l)
			line += 3.2
		}
		s.pdf.SetTextColor(0, 0, 0)
	}}
}

func registerChart(pdf *fpdf.Fpdf, chartPNG []byte, plan *PagePlan) bool {
	if len(chartPNG) == 0 {
		plan.Warnings = append(plan.Warnings, "chart unavailable, report rendered without it")
		return false
	}
	pdf.RegisterImageOptionsReader(chartImageTag, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(chartPNG))
	if pdf.Err() {
		plan.Warnings = append(plan.Warnings, "chart image rejected, report rendered without it")
		pdf.ClearError()
		return false
	}
	return true
}

func registerLogo(pdf *fpdf.Fpdf, logo []byte, plan *PagePlan) bool {
	if len(logo) == 0 {
		plan.Warnings = append(plan.Warnings, "logo unavailable, header rendered without it")
		return false
	}
	pdf.RegisterImageOptionsReader(logoImageTag, fpdf.ImageOptions{ImageType: imageType(logo)}, bytes.NewReader(logo))
	if pdf.Err() {
		plan.Warnings = append(plan.Warnings, "logo image rejected, header rendered without it")
		pdf.ClearError()
		return false
	}
	return true
}

func imageType(b []byte) string {
	if len(b) >= 3 && b[0] == 0xFF && b[1] == 0xD8 && b[2] == 0xFF {
		return "JPG"
	}
	return "PNG"
}

// FetchLogo downloads the report logo with a bounded wait. Any failure
// returns an error; callers render without the logo and log a warning.
func FetchLogo(ctx context.Context, url string) ([]byte, error) {
	if strings.TrimSpace(url) == "" {
		return nil, fmt.Errorf("empty logo url")
	}
	ctx, cancel := context.WithTimeout(ctx, logoTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("logo fetch: status %d", resp.StatusCode)
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxLogoBytes))
	if err != nil {
		return nil, err
	}
	return b, nil
}
