// internal/config/config.go
//
// Runtime configuration read from the environment.
// main loads .env (if present) before calling Load, so values there apply too.

package config

import (
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// Config holds every tunable of the solver service and CLI.
type Config struct {
	Port      string // HTTP listen port
	LogLevel  string // zerolog level name
	LogFormat string // "json" or "console"

	ScoreTablePath string // binary score table; empty builds one from a word list
	WordsFile      string // word list for building; empty uses the embedded list
	DBPath         string // SQLite file; empty keeps sessions in memory

	SearchWorkers    int           // best-guess worker count
	ProgressInterval time.Duration // progress poll interval

	JWTSecret      string
	TokenTTL       time.Duration
	ClientOrigin   string
	RequestTimeout time.Duration
}

// Load reads the environment, falling back to defaults for missing or
// malformed values.
func Load() Config {
	return Config{
		Port:      getEnv("PORT", "5175"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		ScoreTablePath: os.Getenv("SCORE_TABLE_PATH"),
		WordsFile:      os.Getenv("WORDS_FILE"),
		DBPath:         os.Getenv("DB_PATH"),

		SearchWorkers:    envInt("SEARCH_WORKERS", runtime.NumCPU()),
		ProgressInterval: envDuration("PROGRESS_INTERVAL", time.Second),

		JWTSecret:      getEnv("JWT_SECRET", "dev_secret_change_me"),
		TokenTTL:       envDuration("TOKEN_TTL", 24*time.Hour),
		ClientOrigin:   getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		RequestTimeout: envDuration("REQUEST_TIMEOUT", 2*time.Minute),
	}
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// envInt parses a positive integer; anything else yields def.
func envInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Warn().Str("key", k).Str("value", v).Msg("ignoring invalid integer")
		return def
	}
	return n
}

// envDuration parses a positive time.Duration such as "500ms" or "24h".
func envDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Warn().Str("key", k).Str("value", v).Msg("ignoring invalid duration")
		return def
	}
	return d
}
