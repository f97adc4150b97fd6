package engine

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

// Direction states whether larger raw values are desirable for a criterion.
type Direction int

const (
	HigherIsBetter Direction = iota
	LowerIsBetter
)

func (d Direction) String() string {
	if d == LowerIsBetter {
		return "lower_is_better"
	}
	return "higher_is_better"
}

// MarshalJSON encodes the direction as its string form.
func (d Direction) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts "higher_is_better" or "lower_is_better".
func (d *Direction) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "higher_is_better":
		*d = HigherIsBetter
	case "lower_is_better":
		*d = LowerIsBetter
	default:
		return fmt.Errorf("unknown direction %q", s)
	}
	return nil
}

// Criterion is a three-point (min, most-likely, max) triangular estimate.
type Criterion struct {
	Min        float64   `json:"min"`
	MostLikely float64   `json:"most_likely"`
	Max        float64   `json:"max"`
	Direction  Direction `json:"direction"`
}

// Degenerate reports whether the criterion collapses to a point mass.
func (c Criterion) Degenerate() bool {
	return c.Max == c.Min
}

// InvalidCriterionError signals a violated min <= most_likely <= max ordering.
type InvalidCriterionError struct {
	Candidate string
	Key       string
	Criterion Criterion
}

func (e *InvalidCriterionError) Error() string {
	return fmt.Sprintf("candidate %q criterion %q: parameters (%g, %g, %g) violate min <= most_likely <= max",
		e.Candidate, e.Key, e.Criterion.Min, e.Criterion.MostLikely, e.Criterion.Max)
}

// InvalidWeightError signals a negative or unnormalizable weight vector.
type InvalidWeightError struct {
	Key    string
	Weight float64
	Reason string
}

func (e *InvalidWeightError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("weight %q = %g: %s", e.Key, e.Weight, e.Reason)
	}
	return fmt.Sprintf("weight vector: %s", e.Reason)
}

// Candidate is a named delivery strategy with one Criterion per criterion key.
// Immutable once validated.
type Candidate struct {
	Name     string               `json:"name"`
	Criteria map[string]Criterion `json:"criteria"`
}

// Validate checks every criterion's parameter ordering.
func (c Candidate) Validate() error {
	for key, crit := range c.Criteria {
		if crit.Min > crit.MostLikely || crit.MostLikely > crit.Max {
			return &InvalidCriterionError{Candidate: c.Name, Key: key, Criterion: crit}
		}
	}
	return nil
}

// CriterionKeys returns the candidate's criterion keys in deterministic order.
func (c Candidate) CriterionKeys() []string {
	keys := make([]string, 0, len(c.Criteria))
	for k := range c.Criteria {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// weightSumTolerance is the accepted drift from 1.0 before renormalization.
const weightSumTolerance = 0.001

// WeightVector maps criterion keys to non-negative weights summing to 1.
type WeightVector map[string]float64

// Sum returns the total of all weights.
func (w WeightVector) Sum() float64 {
	s := 0.0
	for _, v := range w {
		s += v
	}
	return s
}

// Normalized returns a weight vector guaranteed to sum to 1. If the input
// already sums to 1 within tolerance it is returned as-is and corrected is
// false; otherwise a rescaled copy is returned and corrected is true so the
// run can record the adjustment.
func (w WeightVector) Normalized() (normalized WeightVector, corrected bool, err error) {
	if len(w) == 0 {
		return nil, false, &InvalidWeightError{Reason: "empty"}
	}
	for k, v := range w {
		if v < 0 {
			return nil, false, &InvalidWeightError{Key: k, Weight: v, Reason: "negative weight"}
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, false, &InvalidWeightError{Key: k, Weight: v, Reason: "not a finite number"}
		}
	}

	sum := w.Sum()
	if sum == 0 {
		return nil, false, &InvalidWeightError{Reason: "weights sum to 0, cannot normalize"}
	}
	if math.Abs(sum-1.0) <= weightSumTolerance {
		return w, false, nil
	}

	scaled := make(WeightVector, len(w))
	for k, v := range w {
		scaled[k] = v / sum
	}
	return scaled, true, nil
}
