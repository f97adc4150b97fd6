package scenario

import "pdm-mcp/internal/engine"

// Example returns the built-in delivery-method comparison: Design-Bid-Build,
// Design-Build, and Construction Manager at Risk, with time in months, cost
// in millions, and quality as an inspection score. Time and cost are
// lower-is-better; quality is higher-is-better.
func Example() *Scenario {
	return &Scenario{
		Candidates: []engine.Candidate{
			{
				Name: "Design-Bid-Build (DBB)",
				Criteria: map[string]engine.Criterion{
					"time":    {Min: 6, MostLikely: 12, Max: 24, Direction: engine.LowerIsBetter},
					"cost":    {Min: 3.0, MostLikely: 5.0, Max: 7.0, Direction: engine.LowerIsBetter},
					"quality": {Min: 75, MostLikely: 88, Max: 98, Direction: engine.HigherIsBetter},
				},
			},
			{
				Name: "Design-Build (DB)",
				Criteria: map[string]engine.Criterion{
					"time":    {Min: 5, MostLikely: 10, Max: 18, Direction: engine.LowerIsBetter},
					"cost":    {Min: 2.5, MostLikely: 4.5, Max: 6.5, Direction: engine.LowerIsBetter},
					"quality": {Min: 80, MostLikely: 90, Max: 99, Direction: engine.HigherIsBetter},
				},
			},
			{
				Name: "Construction Manager at Risk (CMAR)",
				Criteria: map[string]engine.Criterion{
					"time":    {Min: 7, MostLikely: 14, Max: 22, Direction: engine.LowerIsBetter},
					"cost":    {Min: 3.2, MostLikely: 4.8, Max: 6.8, Direction: engine.LowerIsBetter},
					"quality": {Min: 78, MostLikely: 89, Max: 98, Direction: engine.HigherIsBetter},
				},
			},
		},
		Weights: engine.WeightVector{"time": 0.4, "cost": 0.4, "quality": 0.2},
		Trials:  10000,
	}
}
