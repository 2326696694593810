package evaluation

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestWriteJSONRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "resultado.json")
	original, err := Aggregate(DemoAnswerSet(), AggregateOptions{Now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)})
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if err := WriteJSON(path, original); err != nil {
		t.Fatalf("write: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	var decoded EvaluationResult
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.TotalScore != original.TotalScore ||
		decoded.TotalPercentage != original.TotalPercentage ||
		decoded.RiskTier != original.RiskTier ||
		!decoded.GeneratedAt.Equal(original.GeneratedAt) {
		t.Fatalf("round trip mismatch: %+v vs %+v", decoded, original)
	}
}

func TestWriteChecksums(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.json")
	b := filepath.Join(dir, "b.pdf")
	if err := os.WriteFile(a, []byte("alpha"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(b, []byte("beta"), 0o644); err != nil {
		t.Fatal(err)
	}
	sums := filepath.Join(dir, "checksums.sha256")
	if err := WriteChecksums(sums, []string{b, "", a}); err != nil {
		t.Fatalf("write checksums: %v", err)
	}
	content, err := os.ReadFile(sums)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	if !strings.HasSuffix(lines[0], "  a.json") || !strings.HasSuffix(lines[1], "  b.pdf") {
		t.Fatalf("unexpected ordering: %v", lines)
	}
	for _, line := range lines {
		if len(strings.Fields(line)[0]) != 64 {
			t.Fatalf("not a sha256 line: %q", line)
		}
	}
}

func TestWriteChecksumsFailsOnMissingArtifact(t *testing.T) {
	dir := t.TempDir()
	err := WriteChecksums(filepath.Join(dir, "sums"), []string{filepath.Join(dir, "nope.json")})
	if err == nil {
		t.Fatal("expected error for missing artifact")
	}
}

func TestDefaultPaths(t *testing.T) {
	if got := DefaultChecksumsPath("out/resultado.json"); got != filepath.Join("out", "checksums.sha256") {
		t.Fatalf("checksums path = %q", got)
	}
	if got := DefaultRunLogPath(""); got != "diagnostico-pdp.run.log" {
		t.Fatalf("run log path = %q", got)
	}
}

func TestAuditLoggerWritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	logger, err := NewAuditLogger(path)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Info("evaluation_scored", map[string]interface{}{"total_score": 48})
	logger.Warn("chart_failed", nil)
	logger.Close()

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	var first AuditEvent
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if first.Level != "INFO" || first.Event != "evaluation_scored" {
		t.Fatalf("unexpected event: %+v", first)
	}
	if _, err := time.Parse(time.RFC3339Nano, first.Timestamp); err != nil {
		t.Fatalf("timestamp not RFC3339Nano: %v", err)
	}
}

func TestNilAuditLoggerIsSafe(t *testing.T) {
	var logger *AuditLogger
	logger.Info("noop", nil)
	logger.Warn("noop", nil)
	logger.Close()
}
