package engine

import (
	"os"
	"strconv"
)

// Config tunes narrative pacing
type Config struct {
	// Pace multiplies every narrative wait, reveal rate and visual transition; 0 disables waiting
	Pace float64
}

// DefaultConfig returns real-time pacing
func DefaultConfig() *Config {
	return &Config{Pace: 1}
}

// LoadConfig reads AMBIENCE_PACE; malformed or negative values are ignored
func LoadConfig() *Config {
	cfg := DefaultConfig()
	if pace := os.Getenv("AMBIENCE_PACE"); pace != "" {
		if val, err := strconv.ParseFloat(pace, 64); err == nil && val >= 0 {
			cfg.Pace = val
		}
	}
	return cfg
}
