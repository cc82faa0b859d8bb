package audio

import (
	"math"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/ambience/constant"
)

// FilterType selects the biquad response
type FilterType int

const (
	LowPass FilterType = iota
	BandPass
	HighPass
)

func (t FilterType) String() string {
	switch t {
	case LowPass:
		return "lowpass"
	case BandPass:
		return "bandpass"
	case HighPass:
		return "highpass"
	}
	return "unknown"
}

// biquad is a second-order IIR section (RBJ cookbook), stereo state
type biquad struct {
	typ FilterType
	sr  float64
	q   float64

	b0, b1, b2, a1, a2 float64
	x1, x2, y1, y2     [2]float64
}

func newBiquad(typ FilterType, sampleRate, freq, q float64) *biquad {
	if q <= 0 {
		q = math.Sqrt2 / 2
	}
	f := &biquad{typ: typ, sr: sampleRate, q: q}
	f.setFreq(freq)
	return f
}

// setFreq recomputes coefficients; state is preserved so sweeps stay continuous
func (f *biquad) setFreq(freq float64) {
	nyquist := f.sr / 2
	if freq < 1 {
		freq = 1
	} else if freq > nyquist*0.99 {
		freq = nyquist * 0.99
	}

	w0 := 2 * math.Pi * freq / f.sr
	cosw, sinw := math.Cos(w0), math.Sin(w0)
	alpha := sinw / (2 * f.q)

	var b0, b1, b2 float64
	switch f.typ {
	case LowPass:
		b0 = (1 - cosw) / 2
		b1 = 1 - cosw
		b2 = (1 - cosw) / 2
	case HighPass:
		b0 = (1 + cosw) / 2
		b1 = -(1 + cosw)
		b2 = (1 + cosw) / 2
	case BandPass:
		// Constant 0 dB peak gain
		b0 = alpha
		b1 = 0
		b2 = -alpha
	}
	a0 := 1 + alpha
	f.b0 = b0 / a0
	f.b1 = b1 / a0
	f.b2 = b2 / a0
	f.a1 = -2 * cosw / a0
	f.a2 = (1 - alpha) / a0
}

func (f *biquad) process(ch int, x float64) float64 {
	y := f.b0*x + f.b1*f.x1[ch] + f.b2*f.x2[ch] - f.a1*f.y1[ch] - f.a2*f.y2[ch]
	f.x2[ch] = f.x1[ch]
	f.x1[ch] = x
	f.y2[ch] = f.y1[ch]
	f.y1[ch] = y
	return y
}

// filterBuffer runs a mono buffer through a fresh biquad in place
func filterBuffer(buf floatBuffer, typ FilterType, sampleRate, freq, q float64) {
	f := newBiquad(typ, sampleRate, freq, q)
	for i, v := range buf {
		buf[i] = f.process(0, v)
	}
}

// lfo is a sine low-frequency oscillator producing values in [-1, 1]
type lfo struct {
	phase float64
	inc   float64
}

func newLFO(rate, sampleRate float64) *lfo {
	return &lfo{inc: rate / sampleRate}
}

func (l *lfo) next() float64 {
	v := math.Sin(2 * math.Pi * l.phase)
	l.phase += l.inc
	if l.phase >= 1 {
		l.phase -= 1
	}
	return v
}

// filterStage applies a biquad to its source, optionally sweeping the centre frequency
type filterStage struct {
	src   beep.Streamer
	f     *biquad
	base  float64
	mod   *lfo
	depth float64
	block int
}

func (s *filterStage) Stream(samples [][2]float64) (int, bool) {
	n, ok := s.src.Stream(samples)
	for i := 0; i < n; i++ {
		if s.mod != nil {
			// Coefficients are updated at control rate; the LFO still advances per sample
			m := s.mod.next()
			if s.block == 0 {
				s.f.setFreq(s.base + s.depth*m)
			}
			s.block++
			if s.block >= constant.FilterControlBlock {
				s.block = 0
			}
		}
		samples[i][0] = s.f.process(0, samples[i][0])
		samples[i][1] = s.f.process(1, samples[i][1])
	}
	return n, ok
}

func (s *filterStage) Err() error {
	return s.src.Err()
}

// gateStage modulates amplitude by 1 + depth*lfo, a rhythmic tremolo
type gateStage struct {
	src   beep.Streamer
	mod   *lfo
	depth float64
}

func (s *gateStage) Stream(samples [][2]float64) (int, bool) {
	n, ok := s.src.Stream(samples)
	for i := 0; i < n; i++ {
		g := 1 + s.depth*s.mod.next()
		samples[i][0] *= g
		samples[i][1] *= g
	}
	return n, ok
}

func (s *gateStage) Err() error {
	return s.src.Err()
}
