package engine

import (
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"pdm-mcp/internal/stats"
)

// candidateSeedStride separates per-candidate sub-seeds so that parallel
// candidates draw from independent deterministic streams.
const candidateSeedStride = 0x9E3779B9

// Engine runs the full comparison pipeline: sample, normalize, score,
// aggregate, test, recommend.
type Engine struct {
	policy ScoringPolicy
	seed   int64
}

// RunResult is the complete output of one simulation run. Plain data for a
// caller to render; a new run produces a fresh set.
type RunResult struct {
	Results          []*CandidateResult         `json:"results"`
	Significance     stats.PairwiseSignificance `json:"significance"`
	Recommendation   *Recommendation            `json:"recommendation"`
	EffectiveWeights WeightVector               `json:"effective_weights"`
	WeightsCorrected bool                       `json:"weights_corrected"`
	Trials           int                        `json:"trials"`
	Seed             int64                      `json:"seed"`
	Warnings         []string                   `json:"warnings,omitempty"`
}

// NewEngine creates an engine with the given scoring policy and a
// wall-clock seed. Use SetSeed for reproducible runs.
func NewEngine(policy ScoringPolicy) *Engine {
	return &Engine{
		policy: policy,
		seed:   time.Now().UnixNano(),
	}
}

// SetSeed pins the run seed so a run reproduces an identical trial sequence.
func (e *Engine) SetSeed(seed int64) {
	e.seed = seed
}

// candidateSampler derives the dedicated generator for the candidate at the
// given input position.
func (e *Engine) candidateSampler(index int) *Sampler {
	return NewSampler(e.seed + int64(index)*candidateSeedStride)
}

// Run simulates every candidate for the requested trial count and reduces
// the results to distributional statistics, the pairwise significance
// matrix, and a recommendation. Candidates are simulated in parallel; each
// reads only the immutable configuration and writes its own result slot.
//
// All validation happens before any sampling begins. Candidate order is
// preserved throughout, including recommendation tie-breaking.
func (e *Engine) Run(candidates []Candidate, weights WeightVector, trials int) (*RunResult, error) {
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no candidates to simulate")
	}
	if trials < 1 {
		return nil, &InvalidTrialCountError{Trials: trials}
	}
	if err := e.policy.Validate(); err != nil {
		return nil, err
	}
	for _, c := range candidates {
		if err := c.Validate(); err != nil {
			return nil, err
		}
	}

	effective, corrected, err := weights.Normalized()
	if err != nil {
		return nil, err
	}

	result := &RunResult{
		Results:          make([]*CandidateResult, len(candidates)),
		EffectiveWeights: effective,
		WeightsCorrected: corrected,
		Trials:           trials,
		Seed:             e.seed,
	}
	if corrected {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Weights summed to %.4f and were rescaled to 1.0 before scoring.", weights.Sum()))
	}

	var g errgroup.Group
	for i, c := range candidates {
		g.Go(func() error {
			sampler := e.candidateSampler(i)
			cr, err := e.RunCandidate(c, effective, trials, sampler)
			if err != nil {
				return err
			}
			result.Results[i] = cr
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(candidates) > 1 {
		samples := make([]stats.ScoreSample, len(result.Results))
		for i, cr := range result.Results {
			samples[i] = stats.ScoreSample{Name: cr.Candidate.Name, Scores: cr.Scores}
		}
		matrix, err := stats.PairwiseWelch(samples)
		if err != nil {
			return nil, err
		}
		result.Significance = matrix
	} else {
		result.Significance = stats.PairwiseSignificance{}
	}

	result.Recommendation = Recommend(result.Results, result.Significance, e.policy.Risk)
	return result, nil
}
