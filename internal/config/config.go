package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/brendav1/simulation-final/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Data       DataConfig
	Model      ModelConfig
	Scenario   ScenarioConfig
	MonteCarlo MonteCarloConfig
	Paths      PathConfig
}

// DataConfig holds input data settings
type DataConfig struct {
	InputFile string
	Sheet     string
	Years     []string // year allow-list for the long-form reshape
}

// ModelConfig holds outcome cleaning settings
type ModelConfig struct {
	ScoreMin float64
	ScoreMax float64
}

// ScenarioConfig holds the attrition calibration constants (logistic
// dropout coefficients). Tunable per scenario, not baked in.
type ScenarioConfig struct {
	Intercept          float64
	LunchEligible      float64
	ReferenceEducation float64
	Male               float64
}

// MonteCarloConfig holds simulation settings
type MonteCarloConfig struct {
	Iterations int
	Seed       int64
	Workers    int
}

// PathConfig holds file system paths
type PathConfig struct {
	OutputDir string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Data: DataConfig{
			InputFile: os.Getenv("INPUT_FILE"),
			Sheet:     getEnvOrDefault("INPUT_SHEET", "Sheet1"),
			Years:     splitList(getEnvOrDefault("YEARS", "2017,2018,2019")),
		},
		Model: ModelConfig{
			ScoreMin: getEnvFloatOrDefault("SCORE_MIN", 100),
			ScoreMax: getEnvFloatOrDefault("SCORE_MAX", 3000),
		},
		Scenario: ScenarioConfig{
			Intercept:          getEnvFloatOrDefault("ATTRITION_B0", -0.75),
			LunchEligible:      getEnvFloatOrDefault("ATTRITION_B1", 0.8),
			ReferenceEducation: getEnvFloatOrDefault("ATTRITION_B2", 0.6),
			Male:               getEnvFloatOrDefault("ATTRITION_B3", 0.4),
		},
		MonteCarlo: MonteCarloConfig{
			Iterations: getEnvIntOrDefault("MC_ITERATIONS", 1000),
			Seed:       int64(getEnvIntOrDefault("MC_SEED", 42)),
			Workers:    getEnvIntOrDefault("MC_WORKERS", 4),
		},
		Paths: PathConfig{
			OutputDir: getEnvOrDefault("OUTPUT_DIR", "./output"),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Data.InputFile == "" {
		return errors.ConfigInvalid("INPUT_FILE is required")
	}
	if len(config.Data.Years) == 0 {
		return errors.ConfigInvalid("YEARS must list at least one year")
	}
	if config.Model.ScoreMin >= config.Model.ScoreMax {
		return errors.ConfigInvalid("SCORE_MIN must be below SCORE_MAX")
	}
	if config.MonteCarlo.Iterations <= 0 {
		return errors.ConfigInvalid("MC_ITERATIONS must be positive")
	}
	if config.MonteCarlo.Workers <= 0 {
		return errors.ConfigInvalid("MC_WORKERS must be positive")
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
