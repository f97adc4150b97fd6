package engine

import (
	"fmt"
	"sort"

	"pdm-mcp/internal/stats"
)

// InvalidTrialCountError signals a trial count below 1.
type InvalidTrialCountError struct {
	Trials int
}

func (e *InvalidTrialCountError) Error() string {
	return fmt.Sprintf("trial count must be >= 1, got %d", e.Trials)
}

// CDFPoint is one step of the empirical CDF: the fraction of trials at or
// below Score.
type CDFPoint struct {
	Score      float64 `json:"score"`
	Cumulative float64 `json:"cumulative"`
}

// CandidateResult is the reduction of N independent trials for one candidate.
// Owned by the run that produced it; immutable after creation.
type CandidateResult struct {
	Candidate Candidate `json:"candidate"`

	// Scores holds the composite score of each trial in trial order, kept
	// for reproducibility and downstream distributional use.
	Scores []float64 `json:"scores"`

	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"` // population standard deviation

	// RawMeans tracks the mean raw draw per criterion (mean time, mean
	// cost, ...) for the Recommender's practical comparison.
	RawMeans map[string]float64 `json:"raw_means"`

	Histogram *ScoreHistogram `json:"histogram"`
	CDF       []CDFPoint      `json:"cdf"`
}

// ECDF returns the empirical CDF over the result's scores: sorted ascending,
// the value at 1-indexed rank k is k/N.
func ECDF(scores []float64) []CDFPoint {
	n := len(scores)
	sorted := make([]float64, n)
	copy(sorted, scores)
	sort.Float64s(sorted)

	points := make([]CDFPoint, n)
	for k, s := range sorted {
		points[k] = CDFPoint{Score: s, Cumulative: float64(k+1) / float64(n)}
	}
	return points
}

// RunCandidate executes trials independent draws through the
// sampler -> normalizer -> scorer pipeline and reduces them to a
// CandidateResult. The sampler must be dedicated to this candidate so that
// parallel candidates never share a generator.
func (e *Engine) RunCandidate(c Candidate, weights WeightVector, trials int, sampler *Sampler) (*CandidateResult, error) {
	if trials < 1 {
		return nil, &InvalidTrialCountError{Trials: trials}
	}

	keys := c.CriterionKeys()
	scores := make([]float64, trials)
	rawSums := make(map[string]float64, len(keys))

	for i := 0; i < trials; i++ {
		draws := sampler.Sample(c, keys)

		normalized := make(map[string]float64, len(keys))
		for _, key := range keys {
			rawSums[key] += draws[key]
			normalized[key] = e.policy.Normalize(draws[key], c.Criteria[key])
		}

		scores[i] = e.policy.CompositeScore(normalized, weights)
	}

	// All trials are complete here; mean/std_dev are only valid after this
	// barrier.
	mean := stats.Mean(scores)

	rawMeans := make(map[string]float64, len(keys))
	for _, key := range keys {
		rawMeans[key] = rawSums[key] / float64(trials)
	}

	return &CandidateResult{
		Candidate: c,
		Scores:    scores,
		Mean:      mean,
		StdDev:    stats.StdDev(scores, mean),
		RawMeans:  rawMeans,
		Histogram: NewScoreHistogram(scores, defaultHistogramBuckets),
		CDF:       ECDF(scores),
	}, nil
}
