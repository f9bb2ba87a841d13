package config_test

import (
	"testing"
	"time"

	"github.com/brokerlane/dealrisk/pkg/config"
	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("SKIP_AI", "")
	t.Setenv("ANALYSIS_CACHE_TTL", "")
	t.Setenv("HISTORY_WINDOW_DAYS", "")

	cfg := config.Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Contains(t, cfg.DatabaseURL, "dealrisk.db")
	assert.False(t, cfg.SkipAIDefault)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
	assert.Equal(t, 30, cfg.HistoryWindowDays)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("DATABASE_URL", "postgres://production:5432/db")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("SKIP_AI", "true")
	t.Setenv("ANALYSIS_CACHE_TTL", "30m")
	t.Setenv("HISTORY_WINDOW_DAYS", "7")

	cfg := config.Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.Equal(t, "postgres://production:5432/db", cfg.DatabaseURL)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.True(t, cfg.SkipAIDefault)
	assert.Equal(t, 30*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 7, cfg.HistoryWindowDays)
}

func TestLoad_InvalidOverridesFallBackToDefaults(t *testing.T) {
	t.Setenv("ANALYSIS_CACHE_TTL", "not-a-duration")
	t.Setenv("HISTORY_WINDOW_DAYS", "not-a-number")

	cfg := config.Load()

	assert.Equal(t, time.Hour, cfg.CacheTTL)
	assert.Equal(t, 30, cfg.HistoryWindowDays)
}
