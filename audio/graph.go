package audio

import (
	"fmt"
	"math/rand/v2"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
)

// SourceKind selects the head of a processing chain
type SourceKind int

const (
	SourceNoise SourceKind = iota
	SourceSine
	SourceSample
)

// SourceSpec describes the signal feeding a chain
type SourceSpec struct {
	Kind   SourceKind
	Freq   float64 // SourceSine
	Sample string  // SourceSample
	Loop   bool    // SourceSample
}

// StageKind selects a processing stage
type StageKind int

const (
	StageFilter StageKind = iota
	StageGate
)

// StageSpec describes one processing stage
// For StageFilter, ModRate/ModDepth sweep the centre frequency (Hz);
// for StageGate they modulate amplitude (relative depth)
type StageSpec struct {
	Kind     StageKind
	Filter   FilterType
	Freq     float64
	Q        float64
	ModRate  float64
	ModDepth float64
}

// Graph is a typed description of one sound: a source followed by stages
// Build instantiates it; the caller owns the resulting chain
type Graph struct {
	Source SourceSpec
	Stages []StageSpec
}

// SampleSource resolves decoded samples by name
type SampleSource interface {
	Get(name string) (*PCM, bool)
}

// Build wires the chain; every call yields independent filter and oscillator state
func (g Graph) Build(sr beep.SampleRate, rng *rand.Rand, samples SampleSource) (beep.Streamer, error) {
	var s beep.Streamer

	switch g.Source.Kind {
	case SourceNoise:
		s = NewBrownNoise(childRand(rng))
	case SourceSine:
		tone, err := generators.SineTone(sr, g.Source.Freq)
		if err != nil {
			return nil, fmt.Errorf("sine source %.1f Hz: %w", g.Source.Freq, err)
		}
		s = tone
	case SourceSample:
		if samples == nil {
			return nil, fmt.Errorf("%w: %s", ErrUnknownSample, g.Source.Sample)
		}
		pcm, ok := samples.Get(g.Source.Sample)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownSample, g.Source.Sample)
		}
		s = pcm.Streamer(g.Source.Loop)
	default:
		return nil, fmt.Errorf("unknown source kind %d", g.Source.Kind)
	}

	rate := float64(sr)
	for _, st := range g.Stages {
		switch st.Kind {
		case StageFilter:
			fs := &filterStage{
				src:   s,
				f:     newBiquad(st.Filter, rate, st.Freq, st.Q),
				base:  st.Freq,
				depth: st.ModDepth,
			}
			if st.ModRate > 0 && st.ModDepth != 0 {
				fs.mod = newLFO(st.ModRate, rate)
			}
			s = fs
		case StageGate:
			s = &gateStage{src: s, mod: newLFO(st.ModRate, rate), depth: st.ModDepth}
		default:
			return nil, fmt.Errorf("unknown stage kind %d", st.Kind)
		}
	}

	return s, nil
}

// SampleLoop is a graph playing a decoded sample on repeat
func SampleLoop(name string) Graph {
	return Graph{Source: SourceSpec{Kind: SourceSample, Sample: name, Loop: true}}
}

// SampleShot is a graph playing a decoded sample once
func SampleShot(name string) Graph {
	return Graph{Source: SourceSpec{Kind: SourceSample, Sample: name}}
}
