package stats

// PairwiseSignificance holds the two-sided p-value for every unordered pair
// of candidates. Symmetric by construction; the diagonal is absent.
type PairwiseSignificance map[string]map[string]float64

// ScoreSample is one candidate's score sequence, in input order.
type ScoreSample struct {
	Name   string
	Scores []float64
}

// P looks up the p-value for a pair. The second return is false on the
// diagonal or for unknown candidates.
func (m PairwiseSignificance) P(a, b string) (float64, bool) {
	row, ok := m[a]
	if !ok {
		return 0, false
	}
	p, ok := row[b]
	return p, ok
}

// PairwiseWelch runs Welch's t-test across all candidate pairs and returns
// the symmetric p-value matrix. Every sample must have at least 2 trials.
func PairwiseWelch(samples []ScoreSample) (PairwiseSignificance, error) {
	matrix := make(PairwiseSignificance, len(samples))
	for _, s := range samples {
		matrix[s.Name] = make(map[string]float64, len(samples)-1)
	}

	for i := 0; i < len(samples); i++ {
		for j := i + 1; j < len(samples); j++ {
			a, b := samples[i], samples[j]
			res, err := WelchTTest(a.Scores, b.Scores, a.Name, b.Name)
			if err != nil {
				return nil, err
			}
			matrix[a.Name][b.Name] = res.PValue
			matrix[b.Name][a.Name] = res.PValue
		}
	}
	return matrix, nil
}
