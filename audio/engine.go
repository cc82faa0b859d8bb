package audio

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/gopxl/beep"

	"github.com/lixenwraith/ambience/constant"
	"github.com/lixenwraith/ambience/core"
)

// Engine owns the master bus and the output it drains into
// Without a device it runs silent on a discarding sink and retries on Nudge
type Engine struct {
	config *AudioConfig
	rate   beep.SampleRate
	bus    *Bus
	clock  clock.Clock

	open outputs

	mu           sync.Mutex
	sink         sink
	lastAttempt  time.Time
	speakerTried bool

	running    atomic.Bool
	silentMode atomic.Bool
}

// outputs builds the candidate sinks in preference order
type outputs struct {
	speaker func(beep.SampleRate) sink
	pipe    func(beep.SampleRate) (sink, error)
	null    func(beep.SampleRate) sink
}

func defaultOutputs() outputs {
	return outputs{
		speaker: func(rate beep.SampleRate) sink { return newSpeakerSink(rate) },
		pipe: func(rate beep.SampleRate) (sink, error) {
			backend, err := DetectBackend(int(rate))
			if err != nil {
				return nil, err
			}
			return newPipeSink(backend, rate), nil
		},
		null: func(rate beep.SampleRate) sink { return newNullSink(rate) },
	}
}

// NewEngine creates an engine; nothing is opened until Start
func NewEngine(cfg *AudioConfig, clk clock.Clock) *Engine {
	if cfg == nil {
		cfg = DefaultAudioConfig()
	}
	if clk == nil {
		clk = clock.New()
	}
	e := &Engine{
		config: cfg,
		rate:   beep.SampleRate(cfg.SampleRate),
		bus:    NewBus(cfg.MasterVolume),
		clock:  clk,
		open:   defaultOutputs(),
	}
	e.bus.SetMuted(cfg.StartMuted)
	return e
}

// Start opens the best available output; failure to find one is not an error
func (e *Engine) Start() error {
	if !e.running.CompareAndSwap(false, true) {
		return fmt.Errorf("audio engine already running")
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.openLocked()
	return nil
}

// openLocked tries speaker, then pipe backends, then settles on the null sink
// oto allows one device context per process, so the speaker gets a single attempt
func (e *Engine) openLocked() {
	e.lastAttempt = e.clock.Now()

	if e.config.Enabled {
		if !e.speakerTried {
			e.speakerTried = true
			err := e.useLocked(e.open.speaker(e.rate))
			if err == nil {
				e.silentMode.Store(false)
				return
			}
			log.Printf("AUDIO: speaker unavailable: %v", err)
		}

		s, err := e.open.pipe(e.rate)
		if err == nil {
			if err = e.useLocked(s); err == nil {
				e.silentMode.Store(false)
				return
			}
		}
		log.Printf("AUDIO: no output, running silent: %v", err)
	}

	e.silentMode.Store(true)
	e.useLocked(e.open.null(e.rate))
}

func (e *Engine) useLocked(s sink) error {
	if err := s.Start(e.bus); err != nil {
		return err
	}
	e.sink = s
	log.Printf("AUDIO: output %s at %d Hz", s.Name(), e.rate)

	core.Go(func() { e.watch(s) })
	return nil
}

// watch demotes to silent mode when the active sink fails
func (e *Engine) watch(s sink) {
	var err error
	select {
	case err = <-s.Errors():
	case <-s.Done():
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.sink != s || !e.running.Load() {
		return
	}
	log.Printf("AUDIO: output %s failed: %v", s.Name(), err)
	s.Close()
	e.silentMode.Store(true)
	e.useLocked(e.open.null(e.rate))
}

// Nudge retries output initialisation after a user interaction while silent
// Attempts closer than AudioRetryGap are skipped; returns true if output is now live
func (e *Engine) Nudge() bool {
	if !e.running.Load() || !e.config.Enabled || !e.silentMode.Load() {
		return false
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.clock.Since(e.lastAttempt) < constant.AudioRetryGap {
		return false
	}
	if e.sink != nil {
		e.sink.Close()
		e.sink = nil
	}
	e.openLocked()
	return !e.silentMode.Load()
}

// Stop closes the output
func (e *Engine) Stop() {
	if !e.running.CompareAndSwap(true, false) {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.sink != nil {
		e.sink.Close()
		e.sink = nil
	}
}

// Bus returns the master bus
func (e *Engine) Bus() *Bus {
	return e.bus
}

// SampleRate returns the rate every source is rendered at
func (e *Engine) SampleRate() beep.SampleRate {
	return e.rate
}

// ToggleMute toggles mute state, returns true if now muted
func (e *Engine) ToggleMute() bool {
	return e.bus.ToggleMute()
}

// IsMuted returns current mute state
func (e *Engine) IsMuted() bool {
	return e.bus.IsMuted()
}

// IsSilent returns true when no device is receiving output
func (e *Engine) IsSilent() bool {
	return e.silentMode.Load()
}

// IsRunning returns true if engine is running (even in silent mode)
func (e *Engine) IsRunning() bool {
	return e.running.Load()
}

// Output returns the active sink name
func (e *Engine) Output() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.sink == nil {
		return ""
	}
	return e.sink.Name()
}

// Backend returns the active sink's backend type, BackendNull when stopped
func (e *Engine) Backend() BackendType {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.sink == nil {
		return BackendNull
	}
	return e.sink.Backend()
}
