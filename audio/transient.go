package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/ambience/parameter"
)

// floatBuffer is mono float64 samples at unity gain
type floatBuffer []float64

// TransientSpec shapes a one-shot noise burst: exponential decay then a filter
// whose frequency is drawn uniformly from [FreqMin, FreqMax] per burst
type TransientSpec struct {
	Duration time.Duration
	Decay    float64
	Amp      float64
	Filter   FilterType
	FreqMin  float64
	FreqMax  float64
	Q        float64
	Gain     float64
}

// Percussive transients
var (
	WaterClick = TransientSpec{
		Duration: parameter.ClickDuration,
		Decay:    parameter.ClickDecay,
		Amp:      parameter.ClickAmp,
		Filter:   BandPass,
		FreqMin:  parameter.ClickFreqMin,
		FreqMax:  parameter.ClickFreqMax,
		Q:        parameter.ClickQ,
		Gain:     parameter.ClickGain,
	}

	BoneTick = TransientSpec{
		Duration: parameter.TickDuration,
		Decay:    parameter.TickDecay,
		Amp:      parameter.TickAmp,
		Filter:   HighPass,
		FreqMin:  parameter.TickFreqMin,
		FreqMax:  parameter.TickFreqMax,
		Q:        parameter.TickQ,
		Gain:     parameter.TickGain,
	}
)

// Render synthesizes a fresh, independently randomized burst
func (t TransientSpec) Render(sr beep.SampleRate, rng *rand.Rand) floatBuffer {
	n := sr.N(t.Duration)
	if n <= 0 {
		return nil
	}

	buf := make(floatBuffer, n)
	span := float64(n) * t.Decay
	for i := range buf {
		env := math.Exp(-float64(i) / span)
		buf[i] = (rng.Float64()*2 - 1) * env * t.Amp
	}

	freq := t.FreqMin + rng.Float64()*(t.FreqMax-t.FreqMin)
	filterBuffer(buf, t.Filter, float64(sr), freq, t.Q)
	return buf
}

// Streamer plays the buffer once on both channels
func (b floatBuffer) Streamer() beep.Streamer {
	return &bufferStreamer{buf: b}
}

type bufferStreamer struct {
	buf floatBuffer
	pos int
}

func (s *bufferStreamer) Stream(samples [][2]float64) (int, bool) {
	if s.pos >= len(s.buf) {
		return 0, false
	}
	n := 0
	for n < len(samples) && s.pos < len(s.buf) {
		v := s.buf[s.pos]
		samples[n][0] = v
		samples[n][1] = v
		n++
		s.pos++
	}
	return n, true
}

func (s *bufferStreamer) Err() error {
	return nil
}
