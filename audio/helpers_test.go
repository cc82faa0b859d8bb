package audio

import (
	"math"

	"github.com/gopxl/beep"
)

// dcStreamer emits a constant value; n < 0 streams forever
type dcStreamer struct {
	v float64
	n int
}

func (d *dcStreamer) Stream(samples [][2]float64) (int, bool) {
	if d.n == 0 {
		return 0, false
	}
	count := len(samples)
	if d.n > 0 && d.n < count {
		count = d.n
	}
	for i := 0; i < count; i++ {
		samples[i] = [2]float64{d.v, d.v}
	}
	if d.n > 0 {
		d.n -= count
	}
	return count, true
}

func (d *dcStreamer) Err() error { return nil }

// sineStreamer emits an endless sine of unit amplitude
type sineStreamer struct {
	freq, rate, phase float64
}

func (s *sineStreamer) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		v := math.Sin(2 * math.Pi * s.phase)
		samples[i] = [2]float64{v, v}
		s.phase += s.freq / s.rate
	}
	return len(samples), true
}

func (s *sineStreamer) Err() error { return nil }

// pull reads up to n frames from s
func pull(s beep.Streamer, n int) [][2]float64 {
	out := make([][2]float64, 0, n)
	buf := make([][2]float64, 256)
	for len(out) < n {
		want := min(len(buf), n-len(out))
		got, ok := s.Stream(buf[:want])
		out = append(out, buf[:got]...)
		if !ok {
			break
		}
	}
	return out
}

// rms of the left channel
func rms(frames [][2]float64) float64 {
	if len(frames) == 0 {
		return 0
	}
	var sum float64
	for _, f := range frames {
		sum += f[0] * f[0]
	}
	return math.Sqrt(sum / float64(len(frames)))
}

// mapSamples is a fixed SampleSource
type mapSamples map[string]*PCM

func (m mapSamples) Get(name string) (*PCM, bool) {
	p, ok := m[name]
	return p, ok
}
