package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
)

// Fader is the single amplitude control between a source and the master bus
// Ramps advance per sample on the audio clock, so timing follows playback, not wall time
type Fader struct {
	mu  sync.Mutex
	src beep.Streamer
	sr  beep.SampleRate

	gain      float64
	target    float64
	step      float64
	remaining int
	stopAfter bool
	done      bool
}

// NewFader wraps src at an initial gain
func NewFader(src beep.Streamer, sr beep.SampleRate, gain float64) *Fader {
	return &Fader{src: src, sr: sr, gain: gain, target: gain}
}

// FadeTo ramps linearly from the current gain to target over d, replacing any ramp in flight
// A pending stop from FadeOut is cancelled
func (f *Fader) FadeTo(target float64, d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopAfter = false
	f.rampLocked(target, d)
}

// FadeOut ramps to silence over d, then stops the source
func (f *Fader) FadeOut(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rampLocked(0, d)
	if f.remaining == 0 {
		f.done = true
		return
	}
	f.stopAfter = true
}

func (f *Fader) rampLocked(target float64, d time.Duration) {
	n := f.sr.N(d)
	f.target = target
	if n <= 0 {
		f.gain = target
		f.step = 0
		f.remaining = 0
		return
	}
	f.step = (target - f.gain) / float64(n)
	f.remaining = n
}

// Stop silences and drains the source immediately
func (f *Fader) Stop() {
	f.mu.Lock()
	f.done = true
	f.mu.Unlock()
}

// Gain returns the current amplitude
func (f *Fader) Gain() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.gain
}

// Target returns the amplitude the current ramp ends at
func (f *Fader) Target() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.target
}

// Done reports whether the source has been stopped or has drained
func (f *Fader) Done() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.done
}

func (f *Fader) Stream(samples [][2]float64) (int, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.done {
		return 0, false
	}

	n, ok := f.src.Stream(samples)
	for i := 0; i < n; i++ {
		if f.remaining > 0 {
			f.gain += f.step
			f.remaining--
			if f.remaining == 0 {
				f.gain = f.target
				if f.stopAfter {
					f.done = true
				}
			}
		}
		samples[i][0] *= f.gain
		samples[i][1] *= f.gain
	}

	if !ok {
		f.done = true
	}
	return n, ok
}

func (f *Fader) Err() error {
	return f.src.Err()
}
