// Package pipeline runs one evaluation end to end: load answers, score,
// classify, render the chart and the PDF, and emit the JSON artifact with
// its checksums and run log.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/agencia43/diagnostico-pdp/internal/catalog"
	"github.com/agencia43/diagnostico-pdp/internal/chart"
	"github.com/agencia43/diagnostico-pdp/internal/evaluation"
	"github.com/agencia43/diagnostico-pdp/internal/pdfreport"
)

type Config struct {
	AnswersPath   string
	Demo          bool
	AllowZeroFill bool
	OutPDFPath    string
	OutJSONPath   string
	ChartPNGPath  string
	ChecksumsPath string
	RunLogPath    string
	LogoURL       string
	WritePDF      bool
}

// RunResult summarizes a completed run for the CLI.
type RunResult struct {
	User      evaluation.UserProfile
	Result    evaluation.EvaluationResult
	Artifacts []string
	Warnings  []string
}

// Artifact is the JSON document written next to the PDF.
type Artifact struct {
	User      evaluation.UserProfile      `json:"user"`
	Resultado evaluation.EvaluationResult `json:"resultado"`
}

func Run(cfg Config) (RunResult, error) {
	var out RunResult

	if strings.TrimSpace(cfg.OutJSONPath) == "" {
		cfg.OutJSONPath = "resultado.json"
	}
	if strings.TrimSpace(cfg.ChecksumsPath) == "" {
		cfg.ChecksumsPath = evaluation.DefaultChecksumsPath(cfg.OutJSONPath)
	}
	if strings.TrimSpace(cfg.RunLogPath) == "" {
		cfg.RunLogPath = evaluation.DefaultRunLogPath(cfg.OutJSONPath)
	}
	if cfg.WritePDF && strings.TrimSpace(cfg.OutPDFPath) == "" {
		cfg.OutPDFPath = filepath.Join(filepath.Dir(cfg.OutJSONPath), "Informe_Evaluacion_PDP.pdf")
	}

	logger, err := evaluation.NewAuditLogger(cfg.RunLogPath)
	if err != nil {
		return out, fmt.Errorf("open run log: %w", err)
	}
	defer logger.Close()

	if err := catalog.Validate(); err != nil {
		return out, fmt.Errorf("catalog: %w", err)
	}

	var answers [][]int
	switch {
	case cfg.Demo:
		answers = evaluation.DemoAnswerSet()
		out.User = evaluation.DemoUser()
		logger.Info("answers_loaded", map[string]interface{}{"source": "demo"})
	case strings.TrimSpace(cfg.AnswersPath) != "":
		set, hash, err := evaluation.LoadAnswerSet(cfg.AnswersPath)
		if err != nil {
			logger.Warn("answers_rejected", map[string]interface{}{"path": cfg.AnswersPath, "error": err.Error()})
			return out, err
		}
		answers = set.Secciones
		out.User = set.User
		logger.Info("answers_loaded", map[string]interface{}{"path": cfg.AnswersPath, "sha256": hash})
	default:
		return out, fmt.Errorf("no answers: provide an answers file or enable demo mode")
	}

	if err := evaluation.ValidateUser(out.User); err != nil {
		return out, err
	}

	result, err := evaluation.Aggregate(answers, evaluation.AggregateOptions{AllowZeroFill: cfg.AllowZeroFill})
	if err != nil {
		logger.Warn("aggregate_failed", map[string]interface{}{"error": err.Error()})
		return out, err
	}
	out.Result = result
	logger.Info("evaluation_scored", map[string]interface{}{
		"total_score":      result.TotalScore,
		"total_percentage": result.TotalPercentage,
		"risk_tier":        result.RiskTier.Label(),
	})
	if len(result.ZeroFilledSections) > 0 {
		warn := fmt.Sprintf("sections zero-filled: %v", result.ZeroFilledSections)
		out.Warnings = append(out.Warnings, warn)
		logger.Warn("sections_zero_filled", map[string]interface{}{"sections": result.ZeroFilledSections})
	}

	presenter := chart.NewPresenter()
	var chartPNG []byte
	if err := presenter.Render(result.SectionPercentages()); err != nil {
		out.Warnings = append(out.Warnings, "chart render failed: "+err.Error())
		logger.Warn("chart_failed", map[string]interface{}{"error": err.Error()})
	} else {
		chartPNG, _ = presenter.PNG()
		defer presenter.Destroy()
	}
	if len(chartPNG) > 0 && strings.TrimSpace(cfg.ChartPNGPath) != "" {
		if err := writeFile(cfg.ChartPNGPath, chartPNG); err != nil {
			return out, fmt.Errorf("write chart: %w", err)
		}
		out.Artifacts = append(out.Artifacts, cfg.ChartPNGPath)
	}

	if cfg.WritePDF {
		var logo []byte
		if strings.TrimSpace(cfg.LogoURL) != "" {
			logo, err = pdfreport.FetchLogo(context.Background(), cfg.LogoURL)
			if err != nil {
				out.Warnings = append(out.Warnings, "logo fetch failed: "+err.Error())
				logger.Warn("logo_failed", map[string]interface{}{"url": cfg.LogoURL, "error": err.Error()})
				logo = nil
			}
		}
		pdfBytes, plan, err := pdfreport.NewRenderer().Render(pdfreport.Input{
			User:     out.User,
			Result:   result,
			ChartPNG: chartPNG,
			Logo:     logo,
		})
		if err != nil {
			logger.Warn("pdf_failed", map[string]interface{}{"error": err.Error()})
			return out, fmt.Errorf("render pdf: %w", err)
		}
		out.Warnings = append(out.Warnings, plan.Warnings...)
		for _, w := range plan.Warnings {
			logger.Warn("report_degraded", map[string]interface{}{"detail": w})
		}
		if err := writeFile(cfg.OutPDFPath, pdfBytes); err != nil {
			return out, fmt.Errorf("write pdf: %w", err)
		}
		out.Artifacts = append(out.Artifacts, cfg.OutPDFPath)
		logger.Info("pdf_written", map[string]interface{}{"path": cfg.OutPDFPath, "pages": len(plan.Pages)})
	}

	if err := evaluation.WriteJSON(cfg.OutJSONPath, Artifact{User: out.User, Resultado: result}); err != nil {
		return out, fmt.Errorf("write json: %w", err)
	}
	out.Artifacts = append(out.Artifacts, cfg.OutJSONPath)

	if err := evaluation.WriteChecksums(cfg.ChecksumsPath, out.Artifacts); err != nil {
		return out, fmt.Errorf("write checksums: %w", err)
	}
	logger.Info("run_complete", map[string]interface{}{
		"artifacts": out.Artifacts,
		"warnings":  len(out.Warnings),
	})
	return out, nil
}

func writeFile(path string, b []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil && dir != "." {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
