package audio

import (
	"errors"
)

// LayerKind selects how a soundscape layer produces sound
type LayerKind int

const (
	LayerContinuous LayerKind = iota // Looping bed behind a fader
	LayerPeriodic                    // One-shots on a jittered timer
	LayerCue                         // One-shots fired only by narrative cues
)

func (k LayerKind) String() string {
	switch k {
	case LayerContinuous:
		return "continuous"
	case LayerPeriodic:
		return "periodic"
	case LayerCue:
		return "cue"
	}
	return "unknown"
}

// BackendType identifies the audio backend
type BackendType int

const (
	BackendSpeaker BackendType = iota
	BackendPulse
	BackendPipeWire
	BackendALSA
	BackendSoX
	BackendFFplay
	BackendOSS
	BackendNull
)

// BackendConfig describes a CLI audio backend
type BackendConfig struct {
	Type BackendType
	Name string
	Path string
	Args []string
}

// Sentinel errors
var (
	ErrNoAudioBackend    = errors.New("no compatible audio backend found")
	ErrPipeClosed        = errors.New("audio pipe closed")
	ErrUnknownSample     = errors.New("sample not loaded")
	ErrUnsupportedFormat = errors.New("unsupported audio format")
)
