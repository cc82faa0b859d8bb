package audio

import (
	"os"
	"strconv"

	"github.com/lixenwraith/ambience/constant"
	"github.com/lixenwraith/ambience/parameter"
)

// AudioConfig holds output and asset settings
type AudioConfig struct {
	Enabled      bool
	MasterVolume float64 // unmuted bus level, 0.0-1.0
	SampleRate   int
	AssetDir     string
	StartMuted   bool
}

// DefaultAudioConfig returns the built-in settings
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:      true,
		MasterVolume: parameter.DefaultMasterLevel,
		SampleRate:   constant.AudioSampleRate,
		AssetDir:     "assets/audio",
	}
}

// LoadAudioConfig loads audio configuration from environment variables
// Malformed values are ignored
func LoadAudioConfig() *AudioConfig {
	cfg := DefaultAudioConfig()

	if enabled := os.Getenv("AMBIENCE_AUDIO_ENABLED"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	// Master volume (0-100 converted to 0.0-1.0)
	if volume := os.Getenv("AMBIENCE_MASTER_VOLUME"); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.MasterVolume = float64(val) / 100.0
			if cfg.MasterVolume < 0 {
				cfg.MasterVolume = 0
			}
			if cfg.MasterVolume > 1 {
				cfg.MasterVolume = 1
			}
		}
	}

	if sampleRate := os.Getenv("AMBIENCE_SAMPLE_RATE"); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}

	if dir := os.Getenv("AMBIENCE_ASSETS"); dir != "" {
		cfg.AssetDir = dir
	}

	return cfg
}
