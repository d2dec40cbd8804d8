// Package simulation adds env-tunable latency and failure injection to the
// worker services, so dashboards have something to show and retry/error paths
// can be exercised without touching code.
package simulation

import (
	"os"
	"strconv"
)

type Config struct {
	FailureRate  float64
	MinLatencyMs int
	MaxLatencyMs int
	Enabled      bool
}

// LoadConfig reads the simulation knobs for one worker domain. The prefix
// namespaces the env vars, e.g. FRAUD_FAILURE_RATE, FRAUD_LATENCY_MIN_MS.
func LoadConfig(prefix string) Config {
	return Config{
		FailureRate:  envFloat(prefix+"_FAILURE_RATE", 0.0),
		MinLatencyMs: envInt(prefix+"_LATENCY_MIN_MS", 0),
		MaxLatencyMs: envInt(prefix+"_LATENCY_MAX_MS", 0),
		Enabled:      envBool(prefix+"_SIMULATION_ENABLED", true),
	}
}

func envFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return fallback
}
