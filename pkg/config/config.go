package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DatabaseURL   string
	RedisURL      string
	JWTSecret     string
	JWTIssuer     string
	JWTTTLMinutes int

	// Analytics summaries are cached in Redis for this many seconds.
	AnalyticsCacheTTLSeconds int
	// Interval of the event anonymization sweep, in hours. 0 disables it.
	SweepIntervalHours int
}

// Load reads environment variables, optionally from a .env file if present.
func Load() Config {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	cfg := Config{
		Port:                     getEnv("PORT", "8080"),
		DatabaseURL:              os.Getenv("DATABASE_URL"),
		RedisURL:                 getEnv("REDIS_URL", "redis://localhost:6379/0"),
		JWTSecret:                getEnv("JWT_SECRET", "dev-secret-change"),
		JWTIssuer:                getEnv("JWT_ISSUER", "campus-board"),
		JWTTTLMinutes:            getEnvInt("JWT_TTL_MINUTES", 60),
		AnalyticsCacheTTLSeconds: getEnvInt("ANALYTICS_CACHE_TTL_SECONDS", 300),
		SweepIntervalHours:       getEnvInt("SWEEP_INTERVAL_HOURS", 24),
	}
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
