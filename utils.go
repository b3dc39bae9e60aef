package main

import (
	"crypto/sha256"
	"fmt"
	"os"
	"strconv"

	"github.com/google/uuid"
)

// generateSignature creates a short hash signature for content.
// Logged instead of raw queries.
func generateSignature(content string) string {
	hash := sha256.Sum256([]byte(content))
	return fmt.Sprintf("%x", hash)[:16]
}

// generateRequestID returns a unique ID for one routing cycle.
func generateRequestID() string {
	return "req_" + uuid.NewString()
}

// envInt reads an integer env var with a fallback default.
func envInt(name string, fallback int) int {
	if raw := os.Getenv(name); raw != "" {
		if val, err := strconv.Atoi(raw); err == nil {
			return val
		}
	}
	return fallback
}

// envFloat reads a float env var with a fallback default.
func envFloat(name string, fallback float64) float64 {
	if raw := os.Getenv(name); raw != "" {
		if val, err := strconv.ParseFloat(raw, 64); err == nil {
			return val
		}
	}
	return fallback
}
