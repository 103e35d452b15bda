package config

import (
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	Matching MatchingConfig
	Files    FilesConfig
}

// MatchingConfig carries the confidence-tier thresholds.
type MatchingConfig struct {
	HighThreshold   int
	ReviewThreshold int
}

// FilesConfig points at the reference data the matcher loads at startup.
type FilesConfig struct {
	TitlesPath    string
	NicknamesPath string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Matching: MatchingConfig{
			HighThreshold:   getEnvAsInt("MATCH_THRESHOLD_HIGH", 90),
			ReviewThreshold: getEnvAsInt("MATCH_THRESHOLD_REVIEW", 80),
		},
		Files: FilesConfig{
			TitlesPath:    getEnv("TITLES_PATH", "config/titles.txt"),
			NicknamesPath: getEnv("NICKNAMES_PATH", "config/nicknames.json"),
		},
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
