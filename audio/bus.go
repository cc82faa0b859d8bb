package audio

import (
	"math"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/ambience/constant"
)

// Bus sums every layer into one output behind a single master multiplier
type Bus struct {
	mu     sync.Mutex
	mixer  beep.Mixer
	volume *effects.Volume
	level  float64
	muted  bool
}

// NewBus creates a bus at the given unmuted level
func NewBus(level float64) *Bus {
	b := &Bus{level: clamp01(level)}
	b.volume = &effects.Volume{Streamer: &b.mixer, Base: 2}
	b.applyLocked()
	return b
}

// applyLocked maps the linear level onto the volume effect's exponent
func (b *Bus) applyLocked() {
	b.volume.Silent = b.muted || b.level <= 0
	if b.level > 0 {
		b.volume.Volume = math.Log2(b.level)
	}
}

// Add attaches streamers; drained streamers are dropped by the mixer
func (b *Bus) Add(s ...beep.Streamer) {
	b.mu.Lock()
	b.mixer.Add(s...)
	b.mu.Unlock()
}

// Clear detaches every streamer at once
func (b *Bus) Clear() {
	b.mu.Lock()
	b.mixer.Clear()
	b.mu.Unlock()
}

// Len returns the number of attached streamers
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mixer.Len()
}

// SetMuted sets the multiplier to zero or back to the level
func (b *Bus) SetMuted(muted bool) {
	b.mu.Lock()
	b.muted = muted
	b.applyLocked()
	b.mu.Unlock()
}

// ToggleMute flips mute, returns true if now muted
func (b *Bus) ToggleMute() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.muted = !b.muted
	b.applyLocked()
	return b.muted
}

// IsMuted returns current mute state
func (b *Bus) IsMuted() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.muted
}

// SetLevel updates the unmuted multiplier (0.0-1.0)
func (b *Bus) SetLevel(level float64) {
	b.mu.Lock()
	b.level = clamp01(level)
	b.applyLocked()
	b.mu.Unlock()
}

// Multiplier returns the effective master gain: zero when muted
func (b *Bus) Multiplier() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.muted {
		return 0
	}
	return b.level
}

// Stream never drains; an empty bus yields silence
func (b *Bus) Stream(samples [][2]float64) (int, bool) {
	b.mu.Lock()
	n, _ := b.volume.Stream(samples)
	b.mu.Unlock()

	for i := n; i < len(samples); i++ {
		samples[i] = [2]float64{}
	}
	for i := range samples {
		samples[i][0] = softLimit(samples[i][0])
		samples[i][1] = softLimit(samples[i][1])
	}
	return len(samples), true
}

func (b *Bus) Err() error {
	return nil
}

// softLimit compresses peaks above the knee toward full scale
func softLimit(v float64) float64 {
	const knee = constant.LimiterKnee
	const slope = constant.LimiterSlope
	if v > knee {
		return knee + (1-knee)*(1-1/(1+(v-knee)*slope))
	}
	if v < -knee {
		return -knee - (1-knee)*(1-1/(1+(-v-knee)*slope))
	}
	return v
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
