package constant

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate    = 44100
	AudioChannels      = 2
	AudioBitDepth      = 16
	AudioBytesPerFrame = AudioChannels * (AudioBitDepth / 8) // 4 bytes
)

// Audio Output Timing
const (
	// AudioBufferDuration is the pipe sink write period
	AudioBufferDuration = 50 * time.Millisecond

	// SpeakerBufferDuration sizes the beep speaker buffer
	SpeakerBufferDuration = 100 * time.Millisecond

	// AudioDrainTimeout bounds backend shutdown
	AudioDrainTimeout = 100 * time.Millisecond
)

// Audio Graph
const (
	// FilterControlBlock is the number of frames between modulated coefficient updates
	FilterControlBlock = 32

	// ResampleQuality passed to beep.Resample when sample rates differ
	ResampleQuality = 4

	// DecodeChunkFrames is the pull size when draining a decoder into PCM
	DecodeChunkFrames = 4096
)

// Sample Loading
const (
	SampleLoadTimeout     = 3 * time.Second
	SampleLoadConcurrency = 4
)

// Soundscape Lifecycle
const (
	// LayerRetireFade is the fade applied to every layer on scene exit
	LayerRetireFade = 2 * time.Second

	// CueJitter is the maximum relative deviation of a periodic cue interval
	CueJitter = 0.5

	// MinCueInterval floors jittered periodic intervals
	MinCueInterval = 20 * time.Millisecond
)

// Soft Limiter
const (
	LimiterKnee  = 0.8
	LimiterSlope = 5.0
)

// Output Recovery
const (
	// AudioRetryGap is the minimum spacing between output re-initialisation attempts
	AudioRetryGap = 2 * time.Second
)
