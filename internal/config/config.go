package config

import (
	"os"
	"path/filepath"
	"sync"

	"fjacquet/debt-planner/internal/logging"

	"github.com/joho/godotenv"
)

var once sync.Once

// LoadEnv loads environment variables from a .env file in the working
// directory or its parent, once per process. Variables already set in the
// environment are not overridden.
func LoadEnv(logger logging.Logger) {
	once.Do(func() {
		loadEnvFile(logging.OrNop(logger))
	})
}

func loadEnvFile(logger logging.Logger) string {
	envFile := findEnvFile(".env", filepath.Join("..", ".env"))
	if envFile == "" {
		logger.Debug("No .env file found, using environment variables")
		return ""
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.WithError(err).Warn("Error loading .env file")
		return ""
	}
	logger.Debug("Loaded environment variables", logging.Field{Key: logging.FieldFile, Value: envFile})
	return envFile
}

func findEnvFile(candidates ...string) string {
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// GetEnv retrieves an environment variable with a fallback value if not set
func GetEnv(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	return value
}
