package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DatabaseURL string

	// Table holding saved study records
	StudyTable string

	// Redis
	RedisURL string

	// Gemini AI
	GeminiAPIKey string
	GeminiModel  string

	// YouTube Data API
	YouTubeAPIKey string

	// Video search cache
	VideoCacheTTL time.Duration

	// Frontend
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:          getEnvOrDefault("PORT", "8080"),
		Env:           getEnvOrDefault("ENV", "development"),
		DatabaseURL:   mustGetEnv("DATABASE_URL"),
		StudyTable:    getEnvOrDefault("STUDYMATE_TABLE", "study_records"),
		RedisURL:      mustGetEnv("REDIS_URL"),
		GeminiAPIKey:  mustGetEnv("GEMINI_API_KEY"),
		GeminiModel:   getEnvOrDefault("GEMINI_MODEL", "gemini-2.0-flash"),
		YouTubeAPIKey: mustGetEnv("YOUTUBE_API_KEY"),
		VideoCacheTTL: time.Duration(getEnvAsIntOrDefault("VIDEO_CACHE_TTL_SECONDS", 600)) * time.Second,
		FrontendURL:   getEnvOrDefault("FRONTEND_URL", "http://localhost:3000"),
	}

	return cfg
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
