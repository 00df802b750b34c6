package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	DBUrl           string
	JWTSecret       string
	GeoapifyAPIKey  string
	GeoCacheTTL     time.Duration
	RedisURL        string
	StripeSecretKey string
	AppEnv          string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	jwtSecret, exists := os.LookupEnv("JWT_SECRET")
	if !exists || jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	// The catalog cannot resolve cities without a geocoding credential, so a
	// missing key is a startup fault rather than a per-request failure.
	geoapifyKey, exists := os.LookupEnv("GEOAPIFY_API_KEY")
	if !exists || geoapifyKey == "" {
		return nil, fmt.Errorf("GEOAPIFY_API_KEY is required")
	}

	return &Config{
		Port:            getEnv("PORT", "8080"),
		DBUrl:           getEnv("DB_URL", ""),
		JWTSecret:       jwtSecret,
		GeoapifyAPIKey:  geoapifyKey,
		GeoCacheTTL:     getEnvDuration("GEO_CACHE_TTL", time.Hour),
		RedisURL:        getEnv("REDIS_URL", ""),
		StripeSecretKey: getEnv("STRIPE_SECRET_KEY", ""),
		AppEnv:          normalizeEnv(getEnv("APP_ENV", "production")),
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}

	parsed, err := time.ParseDuration(value)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func normalizeEnv(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "dev", "develop", "development", "local":
		return "development"
	case "prod", "production":
		return "production"
	case "stage", "staging":
		return "staging"
	case "test", "testing":
		return "test"
	default:
		return strings.ToLower(strings.TrimSpace(value))
	}
}
