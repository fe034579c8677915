package config

import (
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{
		"PORT", "LOG_LEVEL", "LOG_FORMAT", "SCORE_TABLE_PATH", "WORDS_FILE", "DB_PATH",
		"SEARCH_WORKERS", "PROGRESS_INTERVAL", "JWT_SECRET", "TOKEN_TTL", "CLIENT_ORIGIN", "REQUEST_TIMEOUT",
	} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, "5175", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Empty(t, cfg.ScoreTablePath)
	assert.Empty(t, cfg.DBPath)
	assert.Equal(t, runtime.NumCPU(), cfg.SearchWorkers)
	assert.Equal(t, time.Second, cfg.ProgressInterval)
	assert.Equal(t, "dev_secret_change_me", cfg.JWTSecret)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "http://localhost:5173", cfg.ClientOrigin)
	assert.Equal(t, 2*time.Minute, cfg.RequestTimeout)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("SCORE_TABLE_PATH", "/data/scores.bin")
	t.Setenv("SEARCH_WORKERS", "3")
	t.Setenv("PROGRESS_INTERVAL", "250ms")
	t.Setenv("TOKEN_TTL", "1h")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "/data/scores.bin", cfg.ScoreTablePath)
	assert.Equal(t, 3, cfg.SearchWorkers)
	assert.Equal(t, 250*time.Millisecond, cfg.ProgressInterval)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
}

func TestLoadIgnoresMalformed(t *testing.T) {
	t.Setenv("SEARCH_WORKERS", "-2")
	t.Setenv("PROGRESS_INTERVAL", "soon")
	t.Setenv("REQUEST_TIMEOUT", "0s")

	cfg := Load()
	assert.Equal(t, runtime.NumCPU(), cfg.SearchWorkers)
	assert.Equal(t, time.Second, cfg.ProgressInterval)
	assert.Equal(t, 2*time.Minute, cfg.RequestTimeout)
}
