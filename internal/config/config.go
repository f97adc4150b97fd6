package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"pdm-mcp/internal/engine"
)

// AppConfig holds the complete application configuration. It is built once at
// startup and read-only afterwards, so runs stay isolated and repeatable.
type AppConfig struct {
	DataPath            string
	LogDir              string
	DefaultTrials       int
	RiskThresholds      engine.RiskThresholds
	EnableMermaidCharts bool
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. Try to load from the executable's directory (highest priority for
	// MCP servers, which are usually launched with an arbitrary cwd)
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to current working directory (useful for development/go run)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		if exeDir != "" {
			dataPath = exeDir
		} else {
			dataPath = "."
		}
	}

	logDir := filepath.Join(dataPath, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Warn().Err(err).Str("path", logDir).Msg("Failed to create log directory")
	}

	risk := engine.DefaultRiskThresholds()
	risk.ConsistentMax = getEnvFloat("RISK_CONSISTENT_MAX", risk.ConsistentMax)
	risk.ModerateMax = getEnvFloat("RISK_MODERATE_MAX", risk.ModerateMax)
	if risk.ConsistentMax > risk.ModerateMax {
		log.Warn().
			Float64("consistent_max", risk.ConsistentMax).
			Float64("moderate_max", risk.ModerateMax).
			Msg("Risk thresholds are inverted, reverting to defaults")
		risk = engine.DefaultRiskThresholds()
	}

	cfg := &AppConfig{
		DataPath:            dataPath,
		LogDir:              logDir,
		DefaultTrials:       getEnvInt("DEFAULT_TRIALS", 10000),
		RiskThresholds:      risk,
		EnableMermaidCharts: getEnvBool("ENABLE_MERMAID_CHARTS", false),
	}

	return cfg, nil
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
