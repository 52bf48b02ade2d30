package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	DBPath string // path to the bookmarks database file

	// Rate limiting for mutating endpoints (0 => disabled)
	RateBurst  int // bucket capacity per client IP
	RatePerMin int // refill rate per client IP per minute
}

func Load() *Config {
	return &Config{
		// Server settings
		ListenPort:      getenv("MARKS_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("MARKS_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("MARKS_LOG_LEVEL", "info"),
		PrettyLog: mustBool("MARKS_PRETTY_LOG", true),

		// Storage
		DBPath: getenv("MARKS_DB_PATH", defaultDBPath()),

		// Rate limiting
		RateBurst:  getenvInt("MARKS_RATE_BURST", 10),
		RatePerMin: getenvInt("MARKS_RATE_PER_MIN", 0),
	}
}

// defaultDBPath places the database in the platform config directory,
// falling back to the working directory when it cannot be resolved.
func defaultDBPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "bookmarks.db"
	}
	return filepath.Join(configDir, "marks", "bookmarks.db")
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
