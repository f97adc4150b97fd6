package engine

import (
	"fmt"
	"math"
)

// Shaping transforms bend a normalized value before weighting, e.g. squaring
// schedule scores to penalize overruns more strongly. They are named so that
// scoring policy stays configuration, not code.
const (
	ShapeIdentity = "identity"
	ShapeSquare   = "square"
	ShapeSqrt     = "sqrt"
)

var shapeFuncs = map[string]func(float64) float64{
	ShapeIdentity: func(v float64) float64 { return v },
	ShapeSquare:   func(v float64) float64 { return v * v },
	ShapeSqrt:     math.Sqrt,
}

// RiskThresholds classifies candidates by score standard deviation. These are
// policy constants, not statistically derived; callers may override them.
type RiskThresholds struct {
	ConsistentMax float64 `json:"consistent_max"` // std_dev below this -> consistent
	ModerateMax   float64 `json:"moderate_max"`   // std_dev below this -> moderate, else high
}

// DefaultRiskThresholds matches the documented interpretation bands.
func DefaultRiskThresholds() RiskThresholds {
	return RiskThresholds{ConsistentMax: 0.10, ModerateMax: 0.20}
}

// Classify maps a standard deviation onto a risk label.
func (r RiskThresholds) Classify(stdDev float64) string {
	switch {
	case stdDev < r.ConsistentMax:
		return "consistent"
	case stdDev < r.ModerateMax:
		return "moderate"
	default:
		return "high"
	}
}

// ScoringPolicy collects every tunable of the scoring pipeline so that all
// historical variants of the model become configuration instances of one core.
type ScoringPolicy struct {
	// DegenerateScore is the fixed neutral value returned when a criterion
	// cannot vary (min == max). Applied uniformly for both directions.
	DegenerateScore float64 `json:"degenerate_score"`

	// Shaping maps criterion keys to a named transform applied to the
	// normalized value before weighting. Missing keys mean identity.
	Shaping map[string]string `json:"shaping,omitempty"`

	Risk RiskThresholds `json:"risk"`
}

// DefaultPolicy returns the neutral scoring policy: degenerate criteria score
// 1.0 (no penalty, no bonus), no shaping, documented risk bands.
func DefaultPolicy() ScoringPolicy {
	return ScoringPolicy{
		DegenerateScore: 1.0,
		Risk:            DefaultRiskThresholds(),
	}
}

// Validate rejects unknown shaping transform names.
func (p ScoringPolicy) Validate() error {
	for key, name := range p.Shaping {
		if _, ok := shapeFuncs[name]; !ok {
			return fmt.Errorf("criterion %q: unknown shaping transform %q", key, name)
		}
	}
	return nil
}

// shape applies the configured transform for a criterion key.
func (p ScoringPolicy) shape(key string, v float64) float64 {
	if name, ok := p.Shaping[key]; ok {
		return shapeFuncs[name](v)
	}
	return v
}
