// Package config reads process-level overrides from the environment.
package config

import (
	"os"
	"time"

	"lapwatch/internal/core/model"
)

const (
	envConfigDir    = "LAPWATCH_CONFIG_DIR"
	envTickInterval = "LAPWATCH_TICK_INTERVAL"
)

// Config captures environment overrides. Zero values mean "use the
// persisted settings".
type Config struct {
	ConfigDir    string
	TickInterval time.Duration
}

// Load reads environment variables into Config.
func Load() Config {
	return Config{
		ConfigDir:    getEnv(envConfigDir, ""),
		TickInterval: getDurationEnv(envTickInterval, 0),
	}
}

// Stopwatch layers the overrides on top of persisted configuration. The
// result is for the running process only and is never saved.
func (cfg Config) Stopwatch(persisted model.StopwatchConfig) model.StopwatchConfig {
	if cfg.TickInterval > 0 {
		persisted.TickInterval = cfg.TickInterval
	}
	return persisted
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}
