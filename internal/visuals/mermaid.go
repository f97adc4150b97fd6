package visuals

import (
	"fmt"
	"math"
	"strings"

	"pdm-mcp/internal/engine"
)

// GenerateScorePDFChart creates a Mermaid xychart-beta bar chart of one
// candidate's score distribution (probability density per histogram bucket).
func GenerateScorePDFChart(result *engine.CandidateResult) string {
	h := result.Histogram
	if h == nil || len(h.Counts) == 0 {
		return ""
	}

	var labels []string
	var values []string

	maxDensity := 0.0
	for i, d := range h.Densities {
		center := h.Min + (float64(i)+0.5)*h.BinWidth
		labels = append(labels, fmt.Sprintf("\"%.2f\"", center))
		values = append(values, fmt.Sprintf("%.2f", d))
		if d > maxDensity {
			maxDensity = d
		}
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString(fmt.Sprintf("    title \"Score Distribution (PDF) - %s\"\n", sanitizeTitle(result.Candidate.Name)))
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Density\" 0 --> %d\n", int(math.Ceil(maxDensity*1.2))+1))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// GenerateScoreCDFChart creates a Mermaid line chart of one candidate's
// empirical CDF, downsampled to keep the chart readable.
func GenerateScoreCDFChart(result *engine.CandidateResult, maxPoints int) string {
	if len(result.CDF) == 0 {
		return ""
	}
	if maxPoints < 2 {
		maxPoints = 2
	}

	step := 1
	if len(result.CDF) > maxPoints {
		step = len(result.CDF) / maxPoints
	}

	var labels []string
	var values []string
	for i := 0; i < len(result.CDF); i += step {
		p := result.CDF[i]
		labels = append(labels, fmt.Sprintf("\"%.3f\"", p.Score))
		values = append(values, fmt.Sprintf("%.3f", p.Cumulative))
	}
	// Always close the curve at the last point
	last := result.CDF[len(result.CDF)-1]
	labels = append(labels, fmt.Sprintf("\"%.3f\"", last.Score))
	values = append(values, fmt.Sprintf("%.3f", last.Cumulative))

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString(fmt.Sprintf("    title \"Score Probabilities (CDF) - %s\"\n", sanitizeTitle(result.Candidate.Name)))
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString("    y-axis \"Cumulative Probability\" 0 --> 1\n")
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}

func sanitizeTitle(name string) string {
	return strings.ReplaceAll(name, "\"", "'")
}
