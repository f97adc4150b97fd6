// Package scenario loads comparison scenarios from JSON documents. It is the
// configuration boundary of the engine: it collects raw numbers, while the
// engine itself rejects structurally invalid configurations before sampling.
package scenario

import (
	"encoding/json"
	"fmt"
	"os"

	"pdm-mcp/internal/engine"
)

// Scenario is a complete comparison request: candidates in input order, a
// weight vector, trial count, and optional policy overrides.
type Scenario struct {
	Candidates []engine.Candidate  `json:"candidates"`
	Weights    engine.WeightVector `json:"weights"`
	Trials     int                 `json:"trials"`

	// Seed pins the run for reproducibility. Zero means wall-clock seeding.
	Seed int64 `json:"seed,omitempty"`

	// Shaping and Risk override the default scoring policy when present.
	Shaping map[string]string      `json:"shaping,omitempty"`
	Risk    *engine.RiskThresholds `json:"risk,omitempty"`
}

// Policy builds the scoring policy for this scenario on top of defaults.
func (s *Scenario) Policy() engine.ScoringPolicy {
	p := engine.DefaultPolicy()
	if len(s.Shaping) > 0 {
		p.Shaping = s.Shaping
	}
	if s.Risk != nil {
		p.Risk = *s.Risk
	}
	return p
}

// Load reads and decodes a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var s Scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse scenario file %s: %w", path, err)
	}
	if len(s.Candidates) == 0 {
		return nil, fmt.Errorf("scenario %s defines no candidates", path)
	}
	return &s, nil
}
