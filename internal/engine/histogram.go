package engine

// defaultHistogramBuckets is the bucket count used for score distributions.
const defaultHistogramBuckets = 20

// ScoreHistogram buckets a score sample into equal-width bins over the
// observed range, plus densities for probability-density rendering by a
// presentation layer.
type ScoreHistogram struct {
	Min       float64   `json:"min"`
	Max       float64   `json:"max"`
	BinWidth  float64   `json:"bin_width"`
	Counts    []int     `json:"counts"`
	Densities []float64 `json:"densities"`
}

// NewScoreHistogram buckets scores into the requested number of bins. A
// sample with zero spread collapses into a single bin holding every trial.
func NewScoreHistogram(scores []float64, bins int) *ScoreHistogram {
	if len(scores) == 0 || bins < 1 {
		return &ScoreHistogram{Counts: []int{}, Densities: []float64{}}
	}

	min, max := scores[0], scores[0]
	for _, s := range scores {
		if s < min {
			min = s
		}
		if s > max {
			max = s
		}
	}

	if max == min {
		return &ScoreHistogram{
			Min:       min,
			Max:       max,
			BinWidth:  0,
			Counts:    []int{len(scores)},
			Densities: []float64{1},
		}
	}

	width := (max - min) / float64(bins)
	counts := make([]int, bins)
	for _, s := range scores {
		idx := int((s - min) / width)
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
	}

	densities := make([]float64, bins)
	total := float64(len(scores))
	for i, c := range counts {
		densities[i] = float64(c) / (total * width)
	}

	return &ScoreHistogram{
		Min:       min,
		Max:       max,
		BinWidth:  width,
		Counts:    counts,
		Densities: densities,
	}
}
