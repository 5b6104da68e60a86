package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	FrontendURL string
	// Email (Resend)
	ResendAPIKey     string
	ContactEmailFrom string
	ContactEmailTo   string
	// Rate Limiting
	RateLimitWindowSeconds int
	RateLimitMaxRequests   int
	RateLimitSweepSeconds  int
	// Optional Redis backing for rate-limit counters
	RedisURL      string
	RedisPassword string
}

func LoadConfig() (*Config, error) {
	// Load .env file; only effective locally, ignored in production when the
	// file is absent.
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:4321"), "/"),
		// Email configuration. The API key has no default: main fails fast
		// when it is missing.
		ResendAPIKey:     getEnv("RESEND_API_KEY", ""),
		ContactEmailFrom: getEnv("CONTACT_EMAIL_FROM", "Strawhat <noreply@hello.strawhat.digital>"),
		ContactEmailTo:   getEnv("CONTACT_EMAIL", "hello@strawhat.digital"),
		// Rate limiting: 5 submissions per hour per client, swept every 5 minutes
		RateLimitWindowSeconds: getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 3600),
		RateLimitMaxRequests:   getEnvInt("RATE_LIMIT_MAX_REQUESTS", 5),
		RateLimitSweepSeconds:  getEnvInt("RATE_LIMIT_SWEEP_SECONDS", 300),
		// Redis is optional; without it counters live in process memory and
		// reset on restart, which is the documented single-instance behavior.
		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
