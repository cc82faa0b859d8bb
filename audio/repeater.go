package audio

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/lixenwraith/ambience/constant"
	"github.com/lixenwraith/ambience/core"
)

// Repeater fires a callback on a jittered period until stopped
// Each interval is redrawn as base*(1±jitter), so the cadence never settles
type Repeater struct {
	clock clock.Clock
	fire  func()

	mu     sync.Mutex
	rng    *rand.Rand
	base   time.Duration
	jitter float64

	reset    chan struct{}
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// StartRepeater launches a repeater; the first firing is one jittered interval away
func StartRepeater(clk clock.Clock, base time.Duration, jitter float64, rng *rand.Rand, fire func()) *Repeater {
	r := &Repeater{
		clock:  clk,
		fire:   fire,
		rng:    rng,
		base:   base,
		jitter: jitter,
		reset:  make(chan struct{}, 1),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	// Arm the first timer before returning so callers advancing a mock clock never miss it
	t := clk.Timer(r.next())
	core.Go(func() { r.run(t) })
	return r
}

// SetInterval changes the base interval and reschedules the pending firing
func (r *Repeater) SetInterval(base time.Duration) {
	r.mu.Lock()
	r.base = base
	r.mu.Unlock()

	select {
	case r.reset <- struct{}{}:
	default:
	}
}

// Interval returns the current base interval
func (r *Repeater) Interval() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.base
}

// Stop cancels the repeater and waits for it to exit; no firing happens after Stop returns
func (r *Repeater) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
	<-r.done
}

func (r *Repeater) next() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	d := time.Duration(float64(r.base) * (1 + r.jitter*(2*r.rng.Float64()-1)))
	if d < constant.MinCueInterval {
		d = constant.MinCueInterval
	}
	return d
}

func (r *Repeater) run(t *clock.Timer) {
	defer close(r.done)

	for {
		select {
		case <-r.stop:
			t.Stop()
			return

		case <-r.reset:
			t.Stop()
			t = r.clock.Timer(r.next())

		case <-t.C:
			select {
			case <-r.stop:
				return
			default:
			}
			// Next timer is armed before firing
			t = r.clock.Timer(r.next())
			r.fire()
		}
	}
}
