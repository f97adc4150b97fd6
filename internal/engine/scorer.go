package engine

import "sort"

// CompositeScore combines normalized per-criterion values into one weighted
// scalar: sum of w_i * shape(n_i). Pure function; weights must already be
// normalized to sum to 1, which keeps the result inside [0,1] whenever every
// shaped input is inside [0,1].
//
// Keys are summed in sorted order so that replaying a seed reproduces scores
// bit-for-bit.
func (p ScoringPolicy) CompositeScore(normalized map[string]float64, weights WeightVector) float64 {
	keys := make([]string, 0, len(normalized))
	for key := range normalized {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	score := 0.0
	for _, key := range keys {
		score += weights[key] * p.shape(key, normalized[key])
	}
	return score
}
