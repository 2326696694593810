// Package chart renders the per-section percentage bar chart embedded in
// the report. Every bar always carries its percentage label: the primary
// path draws labels through the chart renderer, and if that render fails
// the fallback stamps labels directly onto a bare re-render of the image.
package chart

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/agencia43/diagnostico-pdp/internal/catalog"
	"github.com/agencia43/diagnostico-pdp/internal/evaluation"
)

// ErrAlreadyBound reports a Render on a Presenter that already holds a
// rendered image. Call Destroy first to render again.
var ErrAlreadyBound = errors.New("chart already bound; destroy before rendering again")

const (
	imageWidth  = 850
	imageHeight = 325
	barWidth    = 70
)

// Presenter owns at most one rendered chart at a time.
type Presenter struct {
	img []byte
}

func NewPresenter() *Presenter {
	return &Presenter{}
}

// Render draws one bar per section, colored by that section's own
// percentage. Exactly SectionCount percentages in [0,100] are required.
func (p *Presenter) Render(percentages []int) error {
	if p.img != nil {
		return ErrAlreadyBound
	}
	if len(percentages) != evaluation.SectionCount {
		return fmt.Errorf("expected %d percentages, got %d", evaluation.SectionCount, len(percentages))
	}
	for _, pct := range percentages {
		if pct < 0 || pct > 100 {
			return &evaluation.InvalidPercentageError{Value: pct}
		}
	}

	img, err := renderWithLabels(percentages)
	if err != nil {
		img, err = renderStamped(percentages)
		if err != nil {
			return fmt.Errorf("render chart: %w", err)
		}
	}
	p.img = img
	return nil
}

// PNG returns the rendered image.
func (p *Presenter) PNG() ([]byte, error) {
	if p.img == nil {
		return nil, errors.New("no chart rendered")
	}
	return p.img, nil
}

// Destroy releases the bound image. Destroying an unbound Presenter is a
// no-op, and a destroyed Presenter can render again.
func (p *Presenter) Destroy() {
	p.img = nil
}

func barChart(percentages []int) chart.BarChart {
	bars := make([]chart.Value, len(percentages))
	for i, pct := range percentages {
		c := catalog.ColorFor(evaluation.TierForPercentage(pct))
		fill := drawing.Color{R: c.R, G: c.G, B: c.B, A: 255}
		bars[i] = chart.Value{
			Value: float64(pct),
			Label: catalog.ChartLabels[i],
			Style: chart.Style{FillColor: fill, StrokeColor: fill},
		}
	}
	return chart.BarChart{
		Width:    imageWidth,
		Height:   imageHeight,
		BarWidth: barWidth,
		Background: chart.Style{
			Padding: chart.Box{Top: 30, Left: 10, Right: 10, Bottom: 10},
		},
		XAxis: chart.Style{FontSize: 7},
		YAxis: chart.YAxis{
			Style: chart.Style{FontSize: 8},
			Range: &chart.ContinuousRange{Min: 0, Max: 100},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f%%", f)
				}
				return ""
			},
		},
		Bars: bars,
	}
}

func renderWithLabels(percentages []int) ([]byte, error) {
	bc := barChart(percentages)
	bc.Elements = []chart.Renderable{valueLabels(percentages)}
	var buf bytes.Buffer
	if err := bc.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// valueLabels writes each bar's percentage just above its top edge. Bars
// are evenly distributed across the canvas, so the slot midpoint locates
// each bar without re-deriving the exact spacing.
func valueLabels(percentages []int) chart.Renderable {
	return func(r chart.Renderer, canvasBox chart.Box, defaults chart.Style) {
		r.SetFontSize(9)
		r.SetFontColor(drawing.ColorBlack)
		slot := canvasBox.Width() / len(percentages)
		for i, pct := range percentages {
			label := fmt.Sprintf("%d%%", pct)
			tb := r.MeasureText(label)
			cx := canvasBox.Left + slot*i + slot/2
			barTop := canvasBox.Bottom - int(float64(canvasBox.Height())*float64(pct)/100.0)
			y := barTop - 4
			if y < canvasBox.Top+tb.Height() {
				y = canvasBox.Top + tb.Height()
			}
			r.Text(label, cx-tb.Width()/2, y)
		}
	}
}

// renderStamped is the degraded path: render the bare chart, then draw the
// percentage labels onto the decoded image with a fixed bitmap face.
func renderStamped(percentages []int) ([]byte, error) {
	var buf bytes.Buffer
	bc := barChart(percentages)
	if err := bc.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	src, err := png.Decode(&buf)
	if err != nil {
		return nil, err
	}
	bounds := src.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, src, bounds.Min, draw.Src)

	face := basicfont.Face7x13
	slot := bounds.Dx() / len(percentages)
	for i, pct := range percentages {
		label := fmt.Sprintf("%d%%", pct)
		w := font.MeasureString(face, label).Ceil()
		cx := bounds.Min.X + slot*i + slot/2
		barTop := bounds.Max.Y - int(float64(bounds.Dy()-60)*float64(pct)/100.0) - 30
		if barTop < bounds.Min.Y+face.Height {
			barTop = bounds.Min.Y + face.Height
		}
		d := &font.Drawer{
			Dst:  rgba,
			Src:  image.NewUniform(color.Black),
			Face: face,
			Dot:  fixed.P(cx-w/2, barTop-4),
		}
		d.DrawString(label)
	}

	var out bytes.Buffer
	if err := png.Encode(&out, rgba); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
