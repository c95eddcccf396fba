// Package config provides application configuration loaded from environment variables.
// A .env file is honored for local development; real deployments set the variables directly.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration. Load it once at startup.
type Config struct {
	// PostgresDSN is the connection string for the valuation store.
	PostgresDSN string

	// ServerPort is the port the API listens on.
	ServerPort string

	// MLServiceURL is the base URL of the prediction service.
	MLServiceURL string

	// MLRequestTimeout bounds a single prediction call. On expiry the
	// estimator falls back to the local formula.
	MLRequestTimeout time.Duration

	// MLRequestsPerSecond limits outbound prediction calls.
	MLRequestsPerSecond float64

	// DebugMode controls gin mode and whether 500 responses carry detail.
	DebugMode bool
}

func Load() *Config {
	_ = godotenv.Load() // .env is optional

	return &Config{
		PostgresDSN:         getDatabaseDSN(),
		ServerPort:          getEnv("SERVER_PORT", "8080"),
		MLServiceURL:        getEnv("ML_SERVICE_URL", "http://localhost:5000"),
		MLRequestTimeout:    time.Duration(getEnvInt("ML_REQUEST_TIMEOUT_SECONDS", 10)) * time.Second,
		MLRequestsPerSecond: float64(getEnvInt("ML_REQUESTS_PER_SECOND", 10)),
		DebugMode:           getEnv("DEBUGMODE", "True") == "True",
	}
}

func getDatabaseDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		getEnv("POSTGRES_HOST", "localhost"),
		getEnv("POSTGRES_PORT", "5432"),
		getEnv("POSTGRES_USER", "valuai"),
		getEnv("POSTGRES_PASSWORD", "valuai"),
		getEnv("POSTGRES_DB", "valuai"),
		getEnv("POSTGRES_SSLMODE", "disable"),
	)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
