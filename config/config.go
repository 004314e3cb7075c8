package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	// BGG API
	APIBaseURL     string
	SearchQuery    string
	RequestTimeout time.Duration

	// HTTP server (serve mode only)
	Port string

	Environment string
}

func Load() *Config {
	return &Config{
		APIBaseURL:     getEnv("BGG_API_BASE_URL", "https://www.boardgamegeek.com/xmlapi"),
		SearchQuery:    getEnv("BGG_SEARCH_QUERY", "Brass"),
		RequestTimeout: time.Duration(getEnvInt("BGG_REQUEST_TIMEOUT_SECONDS", 10)) * time.Second,

		Port: getEnv("PORT", "8080"),

		Environment: getEnv("ENVIRONMENT", "development"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var result int
	fmt.Sscanf(value, "%d", &result)
	if result <= 0 {
		return defaultValue
	}
	return result
}
