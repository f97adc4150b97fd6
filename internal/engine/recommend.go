package engine

import (
	"fmt"

	"pdm-mcp/internal/stats"
)

// SignificanceLevel is the fixed alpha for the statistical verdict. It is
// deliberately not configurable so that "significantly different" always
// means the same thing in the output.
const SignificanceLevel = 0.05

// MetricDelta is the practical difference in one raw metric between the best
// candidate and another one.
type MetricDelta struct {
	Absolute float64 `json:"absolute"` // best mean - other mean
	Percent  float64 `json:"percent"`  // absolute relative to the other candidate's mean
}

// Comparison is the recommendation's verdict for one non-best candidate.
type Comparison struct {
	Candidate   string                 `json:"candidate"`
	ScoreGap    float64                `json:"score_gap"` // best mean score - this mean score
	PValue      float64                `json:"p_value"`
	Significant bool                   `json:"significant"` // p < 0.05
	RawDeltas   map[string]MetricDelta `json:"raw_deltas"`
}

// CandidateAssessment is the per-candidate risk readout.
type CandidateAssessment struct {
	Candidate string  `json:"candidate"`
	Mean      float64 `json:"mean"`
	StdDev    float64 `json:"std_dev"`
	Risk      string  `json:"risk"`
	Guidance  string  `json:"guidance"`
}

// Recommendation selects the best candidate and reports statistical and
// practical differences against the rest.
type Recommendation struct {
	Best        string                `json:"best"`
	BestMean    float64               `json:"best_mean"`
	Comparisons []Comparison          `json:"comparisons"`
	Assessments []CandidateAssessment `json:"assessments"`
}

var riskGuidance = map[string]string{
	"consistent": "Consistent performance, suitable for predictable projects.",
	"moderate":   "Moderate variability, use with some risk planning.",
	"high":       "High variability, choose only if flexibility is acceptable.",
}

// Recommend picks the candidate with the maximum mean score. Ties break by
// lowest standard deviation, then by input order, so the choice is
// deterministic.
func Recommend(results []*CandidateResult, significance stats.PairwiseSignificance, risk RiskThresholds) *Recommendation {
	if len(results) == 0 {
		return nil
	}

	best := 0
	for i := 1; i < len(results); i++ {
		if results[i].Mean > results[best].Mean ||
			(results[i].Mean == results[best].Mean && results[i].StdDev < results[best].StdDev) {
			best = i
		}
	}
	winner := results[best]

	rec := &Recommendation{
		Best:        winner.Candidate.Name,
		BestMean:    winner.Mean,
		Comparisons: make([]Comparison, 0, len(results)-1),
		Assessments: make([]CandidateAssessment, 0, len(results)),
	}

	for _, r := range results {
		label := risk.Classify(r.StdDev)
		rec.Assessments = append(rec.Assessments, CandidateAssessment{
			Candidate: r.Candidate.Name,
			Mean:      r.Mean,
			StdDev:    r.StdDev,
			Risk:      label,
			Guidance:  riskGuidance[label],
		})

		if r == winner {
			continue
		}

		cmp := Comparison{
			Candidate: r.Candidate.Name,
			ScoreGap:  winner.Mean - r.Mean,
			RawDeltas: make(map[string]MetricDelta, len(winner.RawMeans)),
		}
		if p, ok := significance.P(winner.Candidate.Name, r.Candidate.Name); ok {
			cmp.PValue = p
			cmp.Significant = p < SignificanceLevel
		}
		for key, bestRaw := range winner.RawMeans {
			otherRaw, ok := r.RawMeans[key]
			if !ok {
				continue
			}
			delta := MetricDelta{Absolute: bestRaw - otherRaw}
			if otherRaw != 0 {
				delta.Percent = delta.Absolute / otherRaw * 100
			}
			cmp.RawDeltas[key] = delta
		}
		rec.Comparisons = append(rec.Comparisons, cmp)
	}

	return rec
}

// Summary renders the recommendation as short human-readable lines. Kept as
// plain strings so callers can embed them in any surface.
func (r *Recommendation) Summary() []string {
	lines := []string{fmt.Sprintf("Recommended: %s (mean score %.3f)", r.Best, r.BestMean)}
	for _, c := range r.Comparisons {
		verdict := "not significantly different"
		if c.Significant {
			verdict = "significantly different"
		}
		lines = append(lines, fmt.Sprintf("vs %s: score gap %.3f, p=%.4f (%s)", c.Candidate, c.ScoreGap, c.PValue, verdict))
	}
	for _, a := range r.Assessments {
		lines = append(lines, fmt.Sprintf("%s: mean %.3f, std dev %.3f, %s risk profile. %s", a.Candidate, a.Mean, a.StdDev, a.Risk, a.Guidance))
	}
	return lines
}
