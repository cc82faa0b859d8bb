package render

import (
	"time"

	"github.com/lixenwraith/ambience/core"
)

// Transition is a timed palette and overlay crossfade between two settings
// Ratio never decreases; the transition collapses exactly once, when Ratio reaches 1
type Transition struct {
	From     core.Mode
	To       core.Mode
	Start    time.Time
	Duration time.Duration
	Ratio    float64

	active bool
}

// NewTransition starts a crossfade at now
func NewTransition(from, to core.Mode, now time.Time, d time.Duration) *Transition {
	return &Transition{From: from, To: to, Start: now, Duration: d, active: true}
}

// Active reports whether the crossfade is still running
func (t *Transition) Active() bool {
	return t.active
}

// Advance updates Ratio from elapsed time and returns true on the tick the transition completes
func (t *Transition) Advance(now time.Time) bool {
	if !t.active {
		return false
	}

	ratio := 1.0
	if t.Duration > 0 {
		ratio = float64(now.Sub(t.Start)) / float64(t.Duration)
	}
	if ratio > 1 {
		ratio = 1
	}
	if ratio > t.Ratio {
		t.Ratio = ratio
	}

	if t.Ratio >= 1 {
		t.active = false
		return true
	}
	return false
}

// Eased returns the crossfade weight of the destination setting
func (t *Transition) Eased() float64 {
	return EaseInOut(t.Ratio)
}

// TransitionState is a read-only snapshot of a running transition
type TransitionState struct {
	From     core.Mode
	To       core.Mode
	Ratio    float64
	Duration time.Duration
}
