package audio

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
)

// TestRepeaterFires verifies periodic firing on the mock clock
func TestRepeaterFires(t *testing.T) {
	mock := clock.NewMock()
	var fired atomic.Int32

	r := StartRepeater(mock, 100*time.Millisecond, 0.5, testRand(), func() { fired.Add(1) })
	defer r.Stop()

	for i := 0; i < 100; i++ {
		mock.Add(10 * time.Millisecond)
	}

	// 1s of 50-150ms intervals
	if n := fired.Load(); n < 6 || n > 20 {
		t.Errorf("Expected 6-20 firings in 1s, got %d", n)
	}
}

// TestRepeaterJitterRange verifies each interval is redrawn within base±50%
func TestRepeaterJitterRange(t *testing.T) {
	r := StartRepeater(clock.NewMock(), time.Second, 0.5, testRand(), func() {})
	defer r.Stop()

	seen := make(map[time.Duration]bool)
	for i := 0; i < 200; i++ {
		d := r.next()
		if d < 500*time.Millisecond || d > 1500*time.Millisecond {
			t.Fatalf("Interval %v outside jitter range", d)
		}
		seen[d] = true
	}
	if len(seen) < 100 {
		t.Errorf("Expected varied intervals, got %d distinct", len(seen))
	}
}

// TestRepeaterSetInterval verifies rescheduling around a new base
func TestRepeaterSetInterval(t *testing.T) {
	mock := clock.NewMock()
	var fired atomic.Int32

	r := StartRepeater(mock, time.Hour, 0.5, testRand(), func() { fired.Add(1) })
	defer r.Stop()

	r.SetInterval(100 * time.Millisecond)
	if r.Interval() != 100*time.Millisecond {
		t.Errorf("Expected interval 100ms, got %v", r.Interval())
	}

	// Let the run loop pick up the reset before time moves
	time.Sleep(10 * time.Millisecond)
	for i := 0; i < 50; i++ {
		mock.Add(10 * time.Millisecond)
	}
	if fired.Load() == 0 {
		t.Error("Expected firings after rate change")
	}
}

// TestRepeaterStop verifies nothing fires after Stop returns
func TestRepeaterStop(t *testing.T) {
	mock := clock.NewMock()
	var fired atomic.Int32

	r := StartRepeater(mock, 100*time.Millisecond, 0.5, testRand(), func() { fired.Add(1) })
	r.Stop()
	r.Stop() // idempotent

	for i := 0; i < 50; i++ {
		mock.Add(10 * time.Millisecond)
	}
	if n := fired.Load(); n != 0 {
		t.Errorf("Expected no firings after stop, got %d", n)
	}
}
