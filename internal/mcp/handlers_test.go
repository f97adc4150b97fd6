package mcp

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdm-mcp/internal/config"
	"pdm-mcp/internal/engine"
)

func testServer() *Server {
	return NewServer(&config.AppConfig{
		DefaultTrials:  500,
		RiskThresholds: engine.DefaultRiskThresholds(),
	})
}

func compareArguments(t *testing.T) json.RawMessage {
	t.Helper()
	args := map[string]interface{}{
		"candidates": []map[string]interface{}{
			{
				"name": "Design-Bid-Build (DBB)",
				"criteria": map[string]interface{}{
					"time":    map[string]interface{}{"min": 6, "most_likely": 12, "max": 24, "direction": "lower_is_better"},
					"cost":    map[string]interface{}{"min": 3.0, "most_likely": 5.0, "max": 7.0, "direction": "lower_is_better"},
					"quality": map[string]interface{}{"min": 75, "most_likely": 88, "max": 98, "direction": "higher_is_better"},
				},
			},
			{
				"name": "Design-Build (DB)",
				"criteria": map[string]interface{}{
					"time":    map[string]interface{}{"min": 5, "most_likely": 10, "max": 18, "direction": "lower_is_better"},
					"cost":    map[string]interface{}{"min": 2.5, "most_likely": 4.5, "max": 6.5, "direction": "lower_is_better"},
					"quality": map[string]interface{}{"min": 80, "most_likely": 90, "max": 99, "direction": "higher_is_better"},
				},
			},
		},
		"weights": map[string]interface{}{"time": 0.4, "cost": 0.4, "quality": 0.2},
		"trials":  1000,
		"seed":    42,
	}
	raw, err := json.Marshal(args)
	require.NoError(t, err)
	return raw
}

func TestCompareStrategies_EndToEnd(t *testing.T) {
	s := testServer()
	text, err := s.handleCompareStrategies(compareArguments(t))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(text, "Recommended:"), "response should lead with the recommendation")
	assert.Contains(t, text, "p=")
	assert.Contains(t, text, `"significance"`)
	assert.Contains(t, text, `"recommendation"`)
	assert.NotContains(t, text, "mermaid", "charts are off by default")
}

func TestCompareStrategies_SeededRunsAgree(t *testing.T) {
	s := testServer()
	first, err := s.handleCompareStrategies(compareArguments(t))
	require.NoError(t, err)
	second, err := s.handleCompareStrategies(compareArguments(t))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCompareStrategies_ChartsOnRequest(t *testing.T) {
	var args map[string]interface{}
	require.NoError(t, json.Unmarshal(compareArguments(t), &args))
	args["include_charts"] = true
	raw, _ := json.Marshal(args)

	text, err := testServer().handleCompareStrategies(raw)
	require.NoError(t, err)
	assert.Contains(t, text, "xychart-beta")
}

func TestCompareStrategies_RequiresTwoCandidates(t *testing.T) {
	raw, _ := json.Marshal(map[string]interface{}{
		"candidates": []map[string]interface{}{},
		"weights":    map[string]interface{}{"time": 1.0},
	})

	_, err := testServer().handleCompareStrategies(raw)
	assert.Error(t, err)
}

func TestCompareStrategies_InvalidCriterionSurfaces(t *testing.T) {
	var args map[string]interface{}
	require.NoError(t, json.Unmarshal(compareArguments(t), &args))
	candidates := args["candidates"].([]interface{})
	candidates[0].(map[string]interface{})["criteria"].(map[string]interface{})["time"] = map[string]interface{}{
		"min": 24, "most_likely": 12, "max": 6, "direction": "lower_is_better",
	}
	raw, _ := json.Marshal(args)

	_, err := testServer().handleCompareStrategies(raw)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "min <= most_likely <= max")
}

func TestRunCandidateSimulation(t *testing.T) {
	raw, _ := json.Marshal(map[string]interface{}{
		"candidate": map[string]interface{}{
			"name": "Design-Build (DB)",
			"criteria": map[string]interface{}{
				"time": map[string]interface{}{"min": 5, "most_likely": 10, "max": 18, "direction": "lower_is_better"},
				"cost": map[string]interface{}{"min": 2.5, "most_likely": 4.5, "max": 6.5, "direction": "lower_is_better"},
			},
		},
		"weights": map[string]interface{}{"time": 0.5, "cost": 0.5},
		"trials":  500,
		"seed":    7,
	})

	text, err := testServer().handleRunCandidateSimulation(raw)
	require.NoError(t, err)

	var payload struct {
		Risk               string `json:"risk"`
		Trials             int    `json:"trials"`
		Seed               int64  `json:"seed"`
		ConfidenceInterval struct {
			Lower float64 `json:"lower"`
			Upper float64 `json:"upper"`
		} `json:"confidence_interval"`
		Result struct {
			Mean   float64 `json:"mean"`
			StdDev float64 `json:"std_dev"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(text), &payload))

	assert.Equal(t, 500, payload.Trials)
	assert.Equal(t, int64(7), payload.Seed)
	assert.Contains(t, []string{"consistent", "moderate", "high"}, payload.Risk)
	assert.Greater(t, payload.Result.Mean, 0.0)
	assert.Less(t, payload.Result.Mean, 1.0)
	assert.LessOrEqual(t, payload.ConfidenceInterval.Lower, payload.Result.Mean)
	assert.GreaterOrEqual(t, payload.ConfidenceInterval.Upper, payload.Result.Mean)
}

func TestGetSignificanceMatrix(t *testing.T) {
	text, err := testServer().handleGetSignificanceMatrix(compareArguments(t))
	require.NoError(t, err)

	var payload struct {
		Significance      map[string]map[string]float64 `json:"significance"`
		Means             map[string]float64            `json:"means"`
		SignificanceLevel float64                       `json:"significance_level"`
		Trials            int                           `json:"trials"`
		Seed              int64                         `json:"seed"`
	}
	require.NoError(t, json.Unmarshal([]byte(text), &payload))

	assert.Equal(t, 0.05, payload.SignificanceLevel)
	assert.Equal(t, 1000, payload.Trials)
	assert.Equal(t, int64(42), payload.Seed)
	require.Len(t, payload.Means, 2)

	pAB, ok := payload.Significance["Design-Bid-Build (DBB)"]["Design-Build (DB)"]
	require.True(t, ok)
	pBA := payload.Significance["Design-Build (DB)"]["Design-Bid-Build (DBB)"]
	assert.Equal(t, pAB, pBA)
	assert.NotContains(t, text, "recommendation", "matrix tool must not carry the full comparison")
}

func TestGetSignificanceMatrix_RequiresTwoCandidates(t *testing.T) {
	raw, _ := json.Marshal(map[string]interface{}{
		"candidates": []map[string]interface{}{},
		"weights":    map[string]interface{}{"time": 1.0},
	})

	_, err := testServer().handleGetSignificanceMatrix(raw)
	assert.Error(t, err)
}

func TestFormatResult_ReportsUnserializableValues(t *testing.T) {
	_, err := formatResult(map[string]interface{}{"score": math.NaN()})
	assert.Error(t, err, "NaN must surface as an error, not an empty response")

	text, err := formatResult(map[string]interface{}{"score": 0.5})
	require.NoError(t, err)
	assert.Contains(t, text, `"score"`)
}

func TestRunExampleComparison(t *testing.T) {
	raw, _ := json.Marshal(map[string]interface{}{"trials": 1000, "seed": 42})

	text, err := testServer().handleRunExampleComparison(raw)
	require.NoError(t, err)

	assert.Contains(t, text, "Design-Bid-Build (DBB)")
	assert.Contains(t, text, "Design-Build (DB)")
	assert.Contains(t, text, "Construction Manager at Risk (CMAR)")
}

func TestToolSchema_RejectsBadArguments(t *testing.T) {
	tool := toolRegistry["compare_strategies"]
	require.NotNil(t, tool)

	// Missing required weights
	raw, _ := json.Marshal(map[string]interface{}{
		"candidates": []map[string]interface{}{},
	})
	assert.Error(t, tool.ValidateArguments(raw))

	// Unknown direction enum value
	raw, _ = json.Marshal(map[string]interface{}{
		"candidates": []map[string]interface{}{
			{
				"name": "X",
				"criteria": map[string]interface{}{
					"time": map[string]interface{}{"min": 1, "most_likely": 2, "max": 3, "direction": "sideways"},
				},
			},
		},
		"weights": map[string]interface{}{"time": 1.0},
	})
	assert.Error(t, tool.ValidateArguments(raw))

	// Well-formed arguments pass
	assert.NoError(t, tool.ValidateArguments(compareArguments(t)))
}

func TestCallTool_UnknownTool(t *testing.T) {
	s := testServer()
	params, _ := json.Marshal(map[string]interface{}{"name": "nope", "arguments": map[string]interface{}{}})
	result, errRes := s.callTool(params)

	assert.Nil(t, result)
	require.NotNil(t, errRes)
}

func TestListTools_DeclaresAllTools(t *testing.T) {
	s := testServer()
	listed := s.listTools().(map[string]interface{})
	tools := listed["tools"].([]interface{})

	names := make([]string, 0, len(tools))
	for _, tl := range tools {
		names = append(names, tl.(map[string]interface{})["name"].(string))
	}
	assert.Equal(t, []string{"compare_strategies", "run_candidate_simulation", "get_significance_matrix", "run_example_comparison"}, names)
}
