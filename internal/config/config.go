package config

import (
	"os"
	"strconv"
	"time"
)

// Default configuration values
const (
	DefaultAddr          = ":8080"
	DefaultOrigin        = "*"
	DefaultGraceDelay    = 10 * time.Second
	DefaultSweepInterval = 5 * time.Minute
	DefaultIdleThreshold = time.Hour
)

// Config holds the server configuration, loaded from environment variables.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// AllowedOrigin is the origin permitted for cross-origin and
	// websocket upgrade requests. "*" allows any origin.
	AllowedOrigin string

	// GraceDelay is how long an emptied room is kept before the
	// deferred cleanup re-checks it.
	GraceDelay time.Duration

	// SweepInterval is how often the idle sweep runs.
	SweepInterval time.Duration

	// IdleThreshold is the age past which an empty room is swept.
	IdleThreshold time.Duration
}

// Load reads configuration from the environment, falling back to defaults.
func Load() Config {
	return Config{
		Addr:          getEnv("ADDR", DefaultAddr),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", DefaultOrigin),
		GraceDelay:    getEnvDuration("ROOM_GRACE_DELAY", DefaultGraceDelay),
		SweepInterval: getEnvDuration("ROOM_SWEEP_INTERVAL", DefaultSweepInterval),
		IdleThreshold: getEnvDuration("ROOM_IDLE_THRESHOLD", DefaultIdleThreshold),
	}
}

// getEnv returns the env var or a default
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// getEnvDuration parses a duration env var ("30s", "5m") with a fallback.
// A bare number is taken as seconds.
func getEnvDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	return def
}
