package pdfreport

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/agencia43/diagnostico-pdp/internal/chart"
	"github.com/agencia43/diagnostico-pdp/internal/evaluation"
)

func sampleInput(t *testing.T) Input {
	t.Helper()
	result, err := evaluation.Aggregate(evaluation.DemoAnswerSet(), evaluation.AggregateOptions{
		Now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	p := chart.NewPresenter()
	if err := p.Render(result.SectionPercentages()); err != nil {
		t.Fatalf("chart: %v", err)
	}
	png, err := p.PNG()
	if err != nil {
		t.Fatalf("png: %v", err)
	}
	return Input{
		User:     evaluation.DemoUser(),
		Result:   result,
		ChartPNG: png,
	}
}

func TestRenderProducesPDF(t *testing.T) {
	pdfBytes, plan, err := NewRenderer().Render(sampleInput(t))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(pdfBytes, []byte("%PDF")) {
		t.Fatal("output is not a PDF")
	}
	if len(plan.Pages) == 0 {
		t.Fatal("empty page plan")
	}
	if plan.Pages[0][0] != "header" {
		t.Fatalf("first block = %q, want header", plan.Pages[0][0])
	}
	last := plan.Pages[len(plan.Pages)-1]
	if last[len(last)-1] != "legal" {
		t.Fatalf("last block = %q, want legal", last[len(last)-1])
	}
	seen := map[string]bool{}
	for _, page := range plan.Pages {
		for _, id := range page {
			seen[id] = true
		}
	}
	for _, id := range []string{"identity", "risk-banner", "results-table", "chart", "situacion", "repercusiones", "acciones", "recomendaciones", "alcance", "observaciones"} {
		if !seen[id] {
			t.Fatalf("block %q missing from plan", id)
		}
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	in := sampleInput(t)
	_, plan1, err := NewRenderer().Render(in)
	if err != nil {
		t.Fatalf("first render: %v", err)
	}
	_, plan2, err := NewRenderer().Render(in)
	if err != nil {
		t.Fatalf("second render: %v", err)
	}
	if !reflect.DeepEqual(plan1.Pages, plan2.Pages) {
		t.Fatalf("page plans differ:\n%v\n%v", plan1.Pages, plan2.Pages)
	}
}

func TestRenderRequiresIdentity(t *testing.T) {
	in := sampleInput(t)
	in.User.Email = ""
	_, _, err := NewRenderer().Render(in)
	var missing *evaluation.MissingRequiredDataError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingRequiredDataError, got %v", err)
	}
}

func TestRenderRequiresSections(t *testing.T) {
	in := sampleInput(t)
	in.Result.Sections = nil
	_, _, err := NewRenderer().Render(in)
	var missing *evaluation.MissingRequiredDataError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingRequiredDataError, got %v", err)
	}
}

func TestRenderDegradesWithoutChart(t *testing.T) {
	in := sampleInput(t)
	in.ChartPNG = nil
	pdfBytes, plan, err := NewRenderer().Render(in)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(pdfBytes) == 0 {
		t.Fatal("empty pdf")
	}
	if len(plan.Warnings) == 0 {
		t.Fatal("expected a chart warning")
	}
	for _, page := range plan.Pages {
		for _, id := range page {
			if id == "chart" {
				t.Fatal("chart block should be absent")
			}
		}
	}
}

func TestRenderDegradesOnBadLogo(t *testing.T) {
	in := sampleInput(t)
	in.Logo = []byte("not an image")
	_, plan, err := NewRenderer().Render(in)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	found := false
	for _, w := range plan.Warnings {
		if w == "logo image rejected, header rendered without it" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected logo warning, got %v", plan.Warnings)
	}
}

func TestFetchLogoRejectsEmptyURL(t *testing.T) {
	if _, err := FetchLogo(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty url")
	}
}
