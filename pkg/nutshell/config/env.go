package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables read by ApplyEnv.
const (
	EnvStrategy           = "NUTSHELL_STRATEGY"
	EnvMinCandidateLength = "NUTSHELL_MIN_CANDIDATE_LENGTH"
	EnvUnknownScoreFactor = "NUTSHELL_UNKNOWN_SCORE_FACTOR"
	EnvStopwords          = "NUTSHELL_STOPWORDS"
	EnvCorpusDir          = "NUTSHELL_CORPUS_DIR"
	EnvCorpusCache        = "NUTSHELL_CORPUS_CACHE"
	EnvVisualization      = "NUTSHELL_VISUALIZATION"
)

// LoadEnvFile adds the variables of a dotenv file to the environment.
// Variables already set are not overridden.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides profile fields with NUTSHELL_* environment variables.
// Numbers that do not parse are ignored.
func ApplyEnv(a *Analysis) {
	a.Strategy = getEnv(EnvStrategy, a.Strategy)
	a.MinCandidateLength = getEnvInt(EnvMinCandidateLength, a.MinCandidateLength)
	a.UnknownScoreFactor = getEnvFloat(EnvUnknownScoreFactor, a.UnknownScoreFactor)
	a.Stopwords = getEnv(EnvStopwords, a.Stopwords)
	a.CorpusDir = getEnv(EnvCorpusDir, a.CorpusDir)
	a.CorpusCache = getEnv(EnvCorpusCache, a.CorpusCache)
	a.Visualization = getEnv(EnvVisualization, a.Visualization)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
