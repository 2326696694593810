package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/agencia43/diagnostico-pdp/internal/evaluation"
	"github.com/agencia43/diagnostico-pdp/internal/pipeline"
)

func main() {
	var answersPath string
	var demo bool
	var zeroFill bool
	var outPDF string
	var outJSON string
	var chartPNG string
	var checksumsPath string
	var runLogPath string
	var noPDF bool
	var logoURL string

	flag.StringVar(&answersPath, "answers", "", "Path to answers YAML")
	flag.BoolVar(&demo, "demo", false, "Use the built-in demo answers instead of a file")
	flag.BoolVar(&zeroFill, "zero-fill", false, "Score missing sections as zero instead of failing")
	flag.StringVar(&outPDF, "out-pdf", "", "Output PDF path (default next to out-json)")
	flag.StringVar(&outJSON, "out-json", "resultado.json", "Output resultado.json path")
	flag.StringVar(&chartPNG, "chart-png", "", "Also write the chart PNG to this path")
	flag.StringVar(&checksumsPath, "checksums", "", "Output checksums.sha256 path (default next to out-json)")
	flag.StringVar(&runLogPath, "run-log", "", "Output run log path (default next to out-json)")
	flag.BoolVar(&noPDF, "no-pdf", false, "Disable PDF output")
	flag.StringVar(&logoURL, "logo-url", "", "URL of the logo to embed in the report header")
	flag.Parse()

	result, err := pipeline.Run(pipeline.Config{
		AnswersPath:   answersPath,
		Demo:          demo,
		AllowZeroFill: zeroFill,
		OutPDFPath:    outPDF,
		OutJSONPath:   outJSON,
		ChartPNGPath:  chartPNG,
		ChecksumsPath: checksumsPath,
		RunLogPath:    runLogPath,
		LogoURL:       logoURL,
		WritePDF:      !noPDF,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "diagnostico-pdp error:", err)
		os.Exit(2)
	}
	if strings.TrimSpace(checksumsPath) == "" {
		checksumsPath = evaluation.DefaultChecksumsPath(outJSON)
	}
	if strings.TrimSpace(runLogPath) == "" {
		runLogPath = evaluation.DefaultRunLogPath(outJSON)
	}
	for _, w := range result.Warnings {
		fmt.Fprintln(os.Stderr, "warning:", w)
	}
	fmt.Printf("score=%d percentage=%d tier=%q artifacts=%d json=%s checksums=%s run_log=%s\n",
		result.Result.TotalScore, result.Result.TotalPercentage, result.Result.RiskTier.Label(),
		len(result.Artifacts), outJSON, checksumsPath, runLogPath)
}
