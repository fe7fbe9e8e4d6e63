package utils

import (
	"os"
	"time"
)

// ParseDuration safely parses duration strings like "5m", falling back to
// five minutes on empty or invalid input.
func ParseDuration(d string) time.Duration {
	if d == "" {
		return 5 * time.Minute
	}
	duration, err := time.ParseDuration(d)
	if err != nil {
		return 5 * time.Minute
	}
	return duration
}

// EnvOr reads an environment variable with a default.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
