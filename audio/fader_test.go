package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

const testRate = beep.SampleRate(1000)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// TestFaderLinearRamp verifies a ramp reaches target exactly at its duration
func TestFaderLinearRamp(t *testing.T) {
	f := NewFader(&dcStreamer{v: 1, n: -1}, testRate, 0)
	f.FadeTo(1, 100*time.Millisecond)

	frames := pull(f, 100)
	if !approx(frames[49][0], 0.5) {
		t.Errorf("Expected 0.5 at midpoint, got %f", frames[49][0])
	}
	if !approx(frames[99][0], 1) {
		t.Errorf("Expected 1 at end, got %f", frames[99][0])
	}
	for i := 1; i < len(frames); i++ {
		if frames[i][0] < frames[i-1][0] {
			t.Fatalf("Ramp not monotonic at %d", i)
		}
	}
}

// TestFaderRetargetFromCurrent verifies a new ramp starts at the in-flight value
func TestFaderRetargetFromCurrent(t *testing.T) {
	f := NewFader(&dcStreamer{v: 1, n: -1}, testRate, 0)
	f.FadeTo(1, 100*time.Millisecond)
	pull(f, 50)

	if g := f.Gain(); !approx(g, 0.5) {
		t.Fatalf("Expected gain 0.5 mid-ramp, got %f", g)
	}

	f.FadeTo(0, 50*time.Millisecond)
	frames := pull(f, 50)

	// First frame steps down by one increment, no jump
	if math.Abs(frames[0][0]-0.49) > 1e-9 {
		t.Errorf("Expected 0.49 after retarget, got %f", frames[0][0])
	}
	if !approx(frames[49][0], 0) {
		t.Errorf("Expected silence at end, got %f", frames[49][0])
	}
}

// TestFaderFadeOutStopsAfterRamp verifies the source stops only once the ramp completes
func TestFaderFadeOutStopsAfterRamp(t *testing.T) {
	f := NewFader(&dcStreamer{v: 1, n: -1}, testRate, 1)
	f.FadeOut(100 * time.Millisecond)

	pull(f, 60)
	if f.Done() {
		t.Fatal("Expected source alive mid-fade")
	}

	n, ok := f.Stream(make([][2]float64, 60))
	if n != 60 || !ok {
		t.Errorf("Expected final block delivered, got n=%d ok=%v", n, ok)
	}
	if !f.Done() {
		t.Error("Expected source stopped after fade")
	}
	if n, ok := f.Stream(make([][2]float64, 10)); n != 0 || ok {
		t.Errorf("Expected drained fader, got n=%d ok=%v", n, ok)
	}
}

// TestFaderFadeToCancelsPendingStop verifies a new fade-in revives a fading source
func TestFaderFadeToCancelsPendingStop(t *testing.T) {
	f := NewFader(&dcStreamer{v: 1, n: -1}, testRate, 1)
	f.FadeOut(100 * time.Millisecond)
	pull(f, 50)
	f.FadeTo(0.8, 50*time.Millisecond)
	pull(f, 200)

	if f.Done() {
		t.Error("Expected source alive after fade-in")
	}
	if g := f.Gain(); !approx(g, 0.8) {
		t.Errorf("Expected gain 0.8, got %f", g)
	}
}

// TestFaderImmediate verifies zero-length fades apply at once
func TestFaderImmediate(t *testing.T) {
	f := NewFader(&dcStreamer{v: 1, n: -1}, testRate, 0)
	f.FadeTo(0.4, 0)
	if g := f.Gain(); !approx(g, 0.4) {
		t.Errorf("Expected gain 0.4, got %f", g)
	}

	f.FadeOut(0)
	if !f.Done() {
		t.Error("Expected zero-length fade-out to stop immediately")
	}
}

// TestFaderStop verifies hard stop regardless of ramp
func TestFaderStop(t *testing.T) {
	f := NewFader(&dcStreamer{v: 1, n: -1}, testRate, 0)
	f.FadeTo(1, time.Second)
	f.Stop()
	if n, ok := f.Stream(make([][2]float64, 10)); n != 0 || ok {
		t.Errorf("Expected stopped fader, got n=%d ok=%v", n, ok)
	}
}

// TestFaderSourceDrain verifies finite sources mark the fader done
func TestFaderSourceDrain(t *testing.T) {
	f := NewFader(&dcStreamer{v: 1, n: 30}, testRate, 1)
	frames := pull(f, 100)
	if len(frames) != 30 {
		t.Errorf("Expected 30 frames, got %d", len(frames))
	}
	if !f.Done() {
		t.Error("Expected done after source drained")
	}
}
