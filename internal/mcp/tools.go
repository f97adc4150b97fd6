package mcp

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"
)

// Tool couples a tool's wire description with its argument schema and
// handler. Arguments are validated against the schema before dispatch, so
// handlers can decode without re-checking structure.
type Tool struct {
	Name        string
	Description string
	InputSchema *jsonschema.Schema
	Handler     func(s *Server, args json.RawMessage) (string, error)

	resolveOnce sync.Once
	resolved    *jsonschema.Resolved
	resolveErr  error
}

// ValidateArguments checks raw tool arguments against the declared schema.
func (t *Tool) ValidateArguments(args json.RawMessage) error {
	t.resolveOnce.Do(func() {
		t.resolved, t.resolveErr = t.InputSchema.Resolve(nil)
	})
	if t.resolveErr != nil {
		return fmt.Errorf("tool %s schema is invalid: %w", t.Name, t.resolveErr)
	}

	instance := map[string]interface{}{}
	if len(args) > 0 {
		if err := json.Unmarshal(args, &instance); err != nil {
			return fmt.Errorf("arguments are not a JSON object: %w", err)
		}
	}
	return t.resolved.Validate(instance)
}

// Handle runs the tool's handler.
func (t *Tool) Handle(s *Server, args json.RawMessage) (string, error) {
	return t.Handler(s, args)
}

var criterionSchema = &jsonschema.Schema{
	Type:        "object",
	Description: "Three-point triangular estimate for one criterion.",
	Properties: map[string]*jsonschema.Schema{
		"min":         {Type: "number", Description: "Optimistic bound"},
		"most_likely": {Type: "number", Description: "Mode of the triangular distribution"},
		"max":         {Type: "number", Description: "Pessimistic bound"},
		"direction": {
			Type:        "string",
			Enum:        []interface{}{"higher_is_better", "lower_is_better"},
			Description: "Whether larger raw values are desirable (e.g. quality) or not (e.g. time, cost)",
		},
	},
	Required: []string{"min", "most_likely", "max", "direction"},
}

var candidateSchema = &jsonschema.Schema{
	Type:        "object",
	Description: "A named delivery strategy with one triangular estimate per criterion key.",
	Properties: map[string]*jsonschema.Schema{
		"name": {Type: "string"},
		"criteria": {
			Type:                 "object",
			AdditionalProperties: criterionSchema,
			Description:          "Criterion key (e.g. 'time', 'cost', 'quality') to estimate",
		},
	},
	Required: []string{"name", "criteria"},
}

var toolRegistry = map[string]*Tool{}

func registerTool(t *Tool) {
	toolRegistry[t.Name] = t
}

func init() {
	registerTool(&Tool{
		Name: "compare_strategies",
		Description: "Run a Monte-Carlo comparison of competing project delivery strategies. " +
			"Each candidate is defined by three-point (min/most-likely/max) estimates per criterion; the engine samples triangular distributions, " +
			"normalizes and weights them into composite scores, and returns per-candidate statistics, a pairwise Welch significance matrix, and a ranked recommendation. \n\n" +
			"STRICT GUARDRAIL: DO NOT compute probabilities, p-values or score estimates yourself. If this tool fails, report the error to the user instead of guessing.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"candidates": {Type: "array", Items: candidateSchema, Description: "Candidates to compare, in priority order (order breaks exact ties)"},
				"weights": {
					Type:                 "object",
					AdditionalProperties: &jsonschema.Schema{Type: "number"},
					Description:          "Criterion key to non-negative weight. Rescaled to sum to 1 if needed; the correction is reported.",
				},
				"trials":         {Type: "integer", Description: "Monte-Carlo trials per candidate (default from server config, typically 10000)"},
				"seed":           {Type: "integer", Description: "Optional seed for a reproducible run"},
				"shaping":        {Type: "object", AdditionalProperties: &jsonschema.Schema{Type: "string", Enum: []interface{}{"identity", "square", "sqrt"}}, Description: "Optional per-criterion shaping transform applied before weighting"},
				"include_charts": {Type: "boolean", Description: "Append Mermaid PDF/CDF charts to the response"},
			},
			Required: []string{"candidates", "weights"},
		},
		Handler: (*Server).handleCompareStrategies,
	})

	registerTool(&Tool{
		Name: "run_candidate_simulation",
		Description: "Simulate a single delivery strategy and return its score distribution: mean, standard deviation, risk classification, " +
			"histogram buckets, empirical CDF, and a bootstrap confidence interval for the mean score. Use 'compare_strategies' to rank several candidates.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"candidate": candidateSchema,
				"weights": {
					Type:                 "object",
					AdditionalProperties: &jsonschema.Schema{Type: "number"},
				},
				"trials": {Type: "integer", Description: "Monte-Carlo trials (default from server config)"},
				"seed":   {Type: "integer", Description: "Optional seed for a reproducible run"},
			},
			Required: []string{"candidate", "weights"},
		},
		Handler: (*Server).handleRunCandidateSimulation,
	})

	registerTool(&Tool{
		Name: "get_significance_matrix",
		Description: "Simulate the supplied candidates and return only the pairwise Welch t-test p-value matrix, " +
			"plus each candidate's mean composite score. Use 'compare_strategies' for the full recommendation.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"candidates": {Type: "array", Items: candidateSchema, Description: "Candidates to test, at least 2"},
				"weights": {
					Type:                 "object",
					AdditionalProperties: &jsonschema.Schema{Type: "number"},
				},
				"trials": {Type: "integer", Description: "Monte-Carlo trials per candidate (default from server config)"},
				"seed":   {Type: "integer", Description: "Optional seed for a reproducible run"},
			},
			Required: []string{"candidates", "weights"},
		},
		Handler: (*Server).handleGetSignificanceMatrix,
	})

	registerTool(&Tool{
		Name: "run_example_comparison",
		Description: "Run the built-in example: Design-Bid-Build vs Design-Build vs Construction Manager at Risk with time/cost/quality " +
			"weighted 0.4/0.4/0.2. Useful to demonstrate the methodology before entering real estimates.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"trials": {Type: "integer", Description: "Monte-Carlo trials per candidate (default 10000)"},
				"seed":   {Type: "integer", Description: "Optional seed for a reproducible run"},
			},
		},
		Handler: (*Server).handleRunExampleComparison,
	})
}

func (s *Server) listTools() interface{} {
	tools := make([]interface{}, 0, len(toolRegistry))
	for _, name := range []string{"compare_strategies", "run_candidate_simulation", "get_significance_matrix", "run_example_comparison"} {
		t := toolRegistry[name]
		tools = append(tools, map[string]interface{}{
			"name":        t.Name,
			"description": t.Description,
			"inputSchema": t.InputSchema,
		})
	}
	return map[string]interface{}{"tools": tools}
}
