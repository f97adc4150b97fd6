package mcp

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"pdm-mcp/internal/engine"
	"pdm-mcp/internal/scenario"
	"pdm-mcp/internal/stats"
	"pdm-mcp/internal/visuals"
)

type compareArgs struct {
	Candidates    []engine.Candidate     `json:"candidates"`
	Weights       engine.WeightVector    `json:"weights"`
	Trials        int                    `json:"trials"`
	Seed          *int64                 `json:"seed"`
	Shaping       map[string]string      `json:"shaping"`
	IncludeCharts bool                   `json:"include_charts"`
	Risk          *engine.RiskThresholds `json:"risk"`
}

func (s *Server) handleCompareStrategies(raw json.RawMessage) (string, error) {
	var args compareArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return "", fmt.Errorf("failed to decode arguments: %w", err)
	}
	if len(args.Candidates) < 2 {
		return "", fmt.Errorf("comparison needs at least 2 candidates, got %d", len(args.Candidates))
	}

	result, err := s.runComparison(args)
	if err != nil {
		return "", err
	}

	body, err := formatResult(result)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, line := range result.Recommendation.Summary() {
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(body)

	if args.IncludeCharts || s.cfg.EnableMermaidCharts {
		for _, cr := range result.Results {
			sb.WriteString("\n\n")
			sb.WriteString(visuals.GenerateScorePDFChart(cr))
			sb.WriteString("\n\n")
			sb.WriteString(visuals.GenerateScoreCDFChart(cr, 40))
		}
	}

	return sb.String(), nil
}

func (s *Server) runComparison(args compareArgs) (*engine.RunResult, error) {
	trials := args.Trials
	if trials == 0 {
		trials = s.cfg.DefaultTrials
	}

	policy := engine.DefaultPolicy()
	policy.Risk = s.cfg.RiskThresholds
	if len(args.Shaping) > 0 {
		policy.Shaping = args.Shaping
	}
	if args.Risk != nil {
		policy.Risk = *args.Risk
	}

	eng := engine.NewEngine(policy)
	if args.Seed != nil {
		eng.SetSeed(*args.Seed)
	}

	log.Info().
		Int("candidates", len(args.Candidates)).
		Int("trials", trials).
		Msg("Running strategy comparison")

	return eng.Run(args.Candidates, args.Weights, trials)
}

type simulateArgs struct {
	Candidate engine.Candidate    `json:"candidate"`
	Weights   engine.WeightVector `json:"weights"`
	Trials    int                 `json:"trials"`
	Seed      *int64              `json:"seed"`
}

func (s *Server) handleRunCandidateSimulation(raw json.RawMessage) (string, error) {
	var args simulateArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return "", fmt.Errorf("failed to decode arguments: %w", err)
	}

	result, err := s.runComparison(compareArgs{
		Candidates: []engine.Candidate{args.Candidate},
		Weights:    args.Weights,
		Trials:     args.Trials,
		Seed:       args.Seed,
	})
	if err != nil {
		return "", err
	}

	cr := result.Results[0]
	ci := stats.BootstrapCI(cr.Scores, 0.95, result.Seed)

	payload := map[string]interface{}{
		"result":              cr,
		"risk":                s.cfg.RiskThresholds.Classify(cr.StdDev),
		"confidence_interval": ci,
		"trials":              result.Trials,
		"seed":                result.Seed,
		"warnings":            result.Warnings,
	}
	return formatResult(payload)
}

type significanceArgs struct {
	Candidates []engine.Candidate  `json:"candidates"`
	Weights    engine.WeightVector `json:"weights"`
	Trials     int                 `json:"trials"`
	Seed       *int64              `json:"seed"`
}

func (s *Server) handleGetSignificanceMatrix(raw json.RawMessage) (string, error) {
	var args significanceArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return "", fmt.Errorf("failed to decode arguments: %w", err)
	}
	if len(args.Candidates) < 2 {
		return "", fmt.Errorf("significance testing needs at least 2 candidates, got %d", len(args.Candidates))
	}

	result, err := s.runComparison(compareArgs{
		Candidates: args.Candidates,
		Weights:    args.Weights,
		Trials:     args.Trials,
		Seed:       args.Seed,
	})
	if err != nil {
		return "", err
	}

	means := make(map[string]float64, len(result.Results))
	for _, cr := range result.Results {
		means[cr.Candidate.Name] = cr.Mean
	}

	return formatResult(map[string]interface{}{
		"significance":       result.Significance,
		"means":              means,
		"significance_level": engine.SignificanceLevel,
		"trials":             result.Trials,
		"seed":               result.Seed,
	})
}

type exampleArgs struct {
	Trials int    `json:"trials"`
	Seed   *int64 `json:"seed"`
}

func (s *Server) handleRunExampleComparison(raw json.RawMessage) (string, error) {
	var args exampleArgs
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &args); err != nil {
			return "", fmt.Errorf("failed to decode arguments: %w", err)
		}
	}

	example := scenario.Example()
	trials := args.Trials
	if trials == 0 {
		trials = example.Trials
	}

	return s.handleCompareStrategies(mustMarshal(compareArgs{
		Candidates: example.Candidates,
		Weights:    example.Weights,
		Trials:     trials,
		Seed:       args.Seed,
	}))
}

func mustMarshal(v interface{}) json.RawMessage {
	out, _ := json.Marshal(v)
	return out
}
