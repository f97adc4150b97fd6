package engine

import (
	"math"
	"math/rand"
)

// Sampler draws values from triangular distributions using an explicitly
// owned generator, never the global rand source. A given seed reproduces an
// identical trial sequence.
type Sampler struct {
	rng *rand.Rand
}

// NewSampler creates a sampler seeded for deterministic replay.
func NewSampler(seed int64) *Sampler {
	return &Sampler{rng: rand.New(rand.NewSource(seed))}
}

// Triangular draws one value from the triangular distribution defined by
// (min, mode, max) via inverse-transform sampling. A point mass
// (min == max) returns min deterministically.
func (s *Sampler) Triangular(min, mode, max float64) float64 {
	if max == min {
		return min
	}

	u := s.rng.Float64()
	cut := (mode - min) / (max - min)
	if u < cut {
		return min + math.Sqrt(u*(max-min)*(mode-min))
	}
	return max - math.Sqrt((1-u)*(max-min)*(max-mode))
}

// Sample draws one raw value per criterion for a candidate's trial.
// Keys are iterated in deterministic order so the draw sequence is stable
// for a given seed.
func (s *Sampler) Sample(c Candidate, keys []string) map[string]float64 {
	draws := make(map[string]float64, len(keys))
	for _, key := range keys {
		crit := c.Criteria[key]
		draws[key] = s.Triangular(crit.Min, crit.MostLikely, crit.Max)
	}
	return draws
}
