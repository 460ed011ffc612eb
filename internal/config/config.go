package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"channelscout/internal/domain"
)

// searchChunkLimit is the YouTube search API's own per-page maximum. Larger
// configured chunk sizes are capped here.
const searchChunkLimit = 50

// Config holds all configuration values for the application
type Config struct {
	Port           string
	AllowedOrigins []string
	LogLevel       string
	Environment    string

	DatabaseURL string
	RedisURL    string

	YouTubeAPIKey     string
	SearchKeyword     string
	SearchRegion      string
	RelevanceLanguage string
	ResultCap         int
	ChunkSize         int

	PageSize         int
	MaxSubscribers   int64
	TitleExcludeTerm string
}

// Load loads configuration from environment variables. DATABASE_URL and
// YOUTUBE_API_KEY may legitimately be absent; their absence is surfaced as
// a configuration error at request time, not here.
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	chunkSize := getIntEnv("SEARCH_CHUNK_SIZE", searchChunkLimit)
	if chunkSize > searchChunkLimit {
		chunkSize = searchChunkLimit
	}
	if chunkSize < 1 {
		chunkSize = 1
	}

	return &Config{
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: parseOrigins(getEnv("ALLOWED_ORIGINS", "http://localhost:5173")),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Environment:    getEnv("ENVIRONMENT", "production"),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisURL:    getEnv("REDIS_URL", ""),

		YouTubeAPIKey:     getEnv("YOUTUBE_API_KEY", ""),
		SearchKeyword:     getEnv("SEARCH_KEYWORD", "woodworking"),
		SearchRegion:      getEnv("SEARCH_REGION", "US"),
		RelevanceLanguage: getEnv("SEARCH_LANGUAGE", "en"),
		ResultCap:         getIntEnv("SEARCH_RESULT_CAP", 100),
		ChunkSize:         chunkSize,

		PageSize:         getIntEnv("PAGE_SIZE", 30),
		MaxSubscribers:   getInt64Env("MAX_SUBSCRIBERS", domain.MaxSubscriberCeiling),
		TitleExcludeTerm: getEnv("TITLE_EXCLUDE_TERM", "vevo"),
	}, nil
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getIntEnv gets an integer environment variable with a fallback value
func getIntEnv(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

// getInt64Env gets an int64 environment variable with a fallback value
func getInt64Env(key string, fallback int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

// parseOrigins parses comma-separated origins into a slice
func parseOrigins(origins string) []string {
	if origins == "" {
		return []string{}
	}

	parts := strings.Split(origins, ",")
	result := make([]string, 0, len(parts))

	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
