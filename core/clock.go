package core

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
)

// Clock is the time source shared by cue timers, transitions and narrative pacing
type Clock = clock.Clock

// NewClock returns the system clock
func NewClock() Clock {
	return clock.New()
}

// Sleep blocks for d on clk, returning early with ctx.Err() when ctx is done
func Sleep(ctx context.Context, clk Clock, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d <= 0 {
		return nil
	}
	t := clk.Timer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
