package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port           string
	DatabaseDriver string
	DatabaseURL    string
	JWTSecret      string
	NatsURL        string
	LogLevel       slog.Level
	CORSOrigin     string
	SeedData       bool

	// Rate limiting for relationship mutations
	RateLimitPerMinute int
	RateLimitBurst     int

	// AuditInterval is how often relation sets are checked; 0 disables the job.
	AuditInterval time.Duration
}

func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8080"),
		DatabaseDriver: getEnv("DATABASE_DRIVER", "mysql"),
		DatabaseURL:    getEnv("DATABASE_URL", "user:password@tcp(localhost:3306)/friendgraph?charset=utf8mb4&parseTime=True&loc=Local"),
		JWTSecret:      getEnv("JWT_SECRET", "your-secret-key"),
		NatsURL:        getEnv("NATS_URL", ""),
		LogLevel:       parseLevel(getEnv("LOG_LEVEL", "info")),
		CORSOrigin:     getEnv("CORS_ORIGIN", "*"),
		SeedData:       getEnvBool("SEED_DATA", false),

		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
		RateLimitBurst:     getEnvInt("RATE_LIMIT_BURST", 20),

		AuditInterval: getEnvDuration("AUDIT_INTERVAL", 10*time.Minute),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || value < 1 {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvDuration accepts Go durations ("90s", "10m") and "0" to disable.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value < 0 {
		return defaultValue
	}
	return value
}

func parseLevel(raw string) slog.Level {
	switch strings.ToLower(raw) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
