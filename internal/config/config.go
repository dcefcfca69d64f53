package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins string

	DatabaseURL string
	RedisURL    string

	JWTSecret string
	JWTTTL    time.Duration

	MediaRoot string

	AuthRatePerSec float64
	AuthRateBurst  int
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),

		JWTSecret: getEnv("JWT_SECRET", "change-me"),

		MediaRoot: getEnv("MEDIA_ROOT", "media"),
	}

	ttlMinutes, err := strconv.Atoi(getEnv("JWT_TTL_MINUTES", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL_MINUTES: %w", err)
	}
	cfg.JWTTTL = time.Duration(ttlMinutes) * time.Minute

	cfg.AuthRatePerSec, err = strconv.ParseFloat(getEnv("AUTH_RATE_PER_SEC", "1"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_RATE_PER_SEC: %w", err)
	}
	cfg.AuthRateBurst, err = strconv.Atoi(getEnv("AUTH_RATE_BURST", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_RATE_BURST: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
