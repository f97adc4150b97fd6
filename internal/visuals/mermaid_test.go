package visuals

import (
	"strings"
	"testing"

	"pdm-mcp/internal/engine"
)

func chartResult(t *testing.T) *engine.CandidateResult {
	t.Helper()
	c := engine.Candidate{
		Name: "Design-Build (DB)",
		Criteria: map[string]engine.Criterion{
			"time": {Min: 5, MostLikely: 10, Max: 18, Direction: engine.LowerIsBetter},
			"cost": {Min: 2.5, MostLikely: 4.5, Max: 6.5, Direction: engine.LowerIsBetter},
		},
	}
	e := engine.NewEngine(engine.DefaultPolicy())
	res, err := e.RunCandidate(c, engine.WeightVector{"time": 0.5, "cost": 0.5}, 1000, engine.NewSampler(3))
	if err != nil {
		t.Fatalf("Simulation failed: %v", err)
	}
	return res
}

func TestGenerateScorePDFChart(t *testing.T) {
	chart := GenerateScorePDFChart(chartResult(t))

	if !strings.Contains(chart, "xychart-beta") {
		t.Error("Expected a Mermaid xychart")
	}
	if !strings.Contains(chart, "Score Distribution (PDF) - Design-Build (DB)") {
		t.Errorf("Missing title in chart:\n%s", chart)
	}
	if !strings.Contains(chart, "bar [") {
		t.Error("Expected a bar series")
	}
}

func TestGenerateScoreCDFChart(t *testing.T) {
	chart := GenerateScoreCDFChart(chartResult(t), 40)

	if !strings.Contains(chart, "Score Probabilities (CDF)") {
		t.Errorf("Missing title in chart:\n%s", chart)
	}
	if !strings.Contains(chart, "line [") {
		t.Error("Expected a line series")
	}
	if !strings.Contains(chart, "0 --> 1") {
		t.Error("CDF y-axis must span [0,1]")
	}
}

func TestCharts_EmptyResult(t *testing.T) {
	empty := &engine.CandidateResult{Candidate: engine.Candidate{Name: "X"}}
	if GenerateScorePDFChart(empty) != "" {
		t.Error("Expected empty chart for empty histogram")
	}
	if GenerateScoreCDFChart(empty, 40) != "" {
		t.Error("Expected empty chart for empty CDF")
	}
}
