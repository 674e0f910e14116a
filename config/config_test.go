package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "DATABASE_DRIVER", "DATABASE_URL", "JWT_SECRET", "NATS_URL", "LOG_LEVEL",
		"CORS_ORIGIN", "SEED_DATA", "RATE_LIMIT_PER_MINUTE", "RATE_LIMIT_BURST", "AUDIT_INTERVAL",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "mysql", cfg.DatabaseDriver)
	assert.Empty(t, cfg.NatsURL)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "*", cfg.CORSOrigin)
	assert.False(t, cfg.SeedData)
	assert.Equal(t, 120, cfg.RateLimitPerMinute)
	assert.Equal(t, 20, cfg.RateLimitBurst)
	assert.Equal(t, 10*time.Minute, cfg.AuditInterval)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", "file:friendgraph.db")
	t.Setenv("NATS_URL", "nats://localhost:4222")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("SEED_DATA", "true")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "30")
	t.Setenv("AUDIT_INTERVAL", "0")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, "file:friendgraph.db", cfg.DatabaseURL)
	assert.Equal(t, "nats://localhost:4222", cfg.NatsURL)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.True(t, cfg.SeedData)
	assert.Equal(t, 30, cfg.RateLimitPerMinute)
	assert.Equal(t, time.Duration(0), cfg.AuditInterval)
}

func TestLoad_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("RATE_LIMIT_BURST", "lots")
	t.Setenv("AUDIT_INTERVAL", "soon")
	t.Setenv("SEED_DATA", "maybe")
	t.Setenv("LOG_LEVEL", "chatty")

	cfg := Load()

	assert.Equal(t, 20, cfg.RateLimitBurst)
	assert.Equal(t, 10*time.Minute, cfg.AuditInterval)
	assert.False(t, cfg.SeedData)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}
