package engine

// Normalize maps a raw sampled value onto [0,1] against the criterion's
// declared min/max, direction-aware. Normalization always uses the declared
// triangular bounds, never the empirical range of a run's trials: the
// empirical basis would couple score magnitude to trial count and break
// cross-run comparability.
//
// A degenerate criterion (max == min) returns the policy's fixed neutral
// value for both directions.
func (p ScoringPolicy) Normalize(value float64, c Criterion) float64 {
	if c.Degenerate() {
		return p.DegenerateScore
	}

	n := (value - c.Min) / (c.Max - c.Min)
	if c.Direction == LowerIsBetter {
		n = 1 - n
	}
	return n
}
