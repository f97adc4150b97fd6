package engine

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
)

func TestCandidate_ValidateOrdering(t *testing.T) {
	bad := Candidate{
		Name: "Broken",
		Criteria: map[string]Criterion{
			"time": {Min: 24, MostLikely: 12, Max: 6, Direction: LowerIsBetter},
		},
	}

	err := bad.Validate()
	var ice *InvalidCriterionError
	if !errors.As(err, &ice) {
		t.Fatalf("Expected InvalidCriterionError, got %v", err)
	}
	if ice.Key != "time" {
		t.Errorf("Expected offending key 'time', got %q", ice.Key)
	}
}

func TestCandidate_DegenerateIsValid(t *testing.T) {
	c := Candidate{
		Name: "Fixed",
		Criteria: map[string]Criterion{
			"cost": {Min: 10, MostLikely: 10, Max: 10, Direction: LowerIsBetter},
		},
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Degenerate-but-ordered criterion must be valid, got %v", err)
	}
}

func TestWeightVector_NormalizedPassthrough(t *testing.T) {
	w := WeightVector{"time": 0.4, "cost": 0.4, "quality": 0.2}
	normalized, corrected, err := w.Normalized()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if corrected {
		t.Error("Weights already summing to 1 must not be flagged as corrected")
	}
	if math.Abs(normalized.Sum()-1.0) > 1e-12 {
		t.Errorf("Expected sum 1, got %f", normalized.Sum())
	}
}

func TestWeightVector_NormalizedRescales(t *testing.T) {
	w := WeightVector{"time": 2, "cost": 2, "quality": 1}
	normalized, corrected, err := w.Normalized()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !corrected {
		t.Error("Rescaled weights must be recorded as corrected")
	}
	if math.Abs(normalized.Sum()-1.0) > 1e-12 {
		t.Errorf("Expected sum 1 after rescale, got %f", normalized.Sum())
	}
	if math.Abs(normalized["time"]-0.4) > 1e-12 {
		t.Errorf("Expected time weight 0.4, got %f", normalized["time"])
	}
	// The input vector must stay untouched
	if w["time"] != 2 {
		t.Errorf("Input vector was mutated: %v", w)
	}
}

func TestWeightVector_Invalid(t *testing.T) {
	cases := []struct {
		name string
		w    WeightVector
	}{
		{"negative", WeightVector{"time": -0.5, "cost": 1.5}},
		{"all zero", WeightVector{"time": 0, "cost": 0}},
		{"empty", WeightVector{}},
		{"nan", WeightVector{"time": math.NaN()}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := tc.w.Normalized()
			var iwe *InvalidWeightError
			if !errors.As(err, &iwe) {
				t.Errorf("Expected InvalidWeightError, got %v", err)
			}
		})
	}
}

func TestDirection_JSONRoundTrip(t *testing.T) {
	c := Criterion{Min: 1, MostLikely: 2, Max: 3, Direction: LowerIsBetter}
	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var back Criterion
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if back.Direction != LowerIsBetter {
		t.Errorf("Direction lost in round trip: %v", back.Direction)
	}

	if err := json.Unmarshal([]byte(`{"direction":"sideways"}`), &back); err == nil {
		t.Error("Expected error for unknown direction string")
	}
}
