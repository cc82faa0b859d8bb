package audio

import (
	"fmt"
	"log"
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/gopxl/beep"

	"github.com/lixenwraith/ambience/constant"
	"github.com/lixenwraith/ambience/core"
)

// Soundscape owns the named layers of the active scene
// At most one layer exists per name; retired layers fade out and stop on their own
type Soundscape struct {
	bus     *Bus
	sr      beep.SampleRate
	samples SampleSource
	clock   clock.Clock
	scenes  map[core.Mode][]LayerSpec

	mu       sync.Mutex
	rng      *rand.Rand
	mode     core.Mode
	layers   map[string]*activeLayer
	retiring []*Fader
}

// activeLayer owns its whole chain: source, stages, fader and any timer
type activeLayer struct {
	spec        LayerSpec
	synthesized bool
	fader       *Fader
	repeater    *Repeater
	shots       *shotPlayer
}

// LayerInfo is a read-only view of an active layer
type LayerInfo struct {
	Name        string
	Kind        LayerKind
	Synthesized bool
	Gain        float64
	Interval    time.Duration
}

// NewSoundscape creates a controller feeding bus; samples may be nil
func NewSoundscape(bus *Bus, sr beep.SampleRate, samples SampleSource, clk clock.Clock, rng *rand.Rand) *Soundscape {
	return &Soundscape{
		bus:     bus,
		sr:      sr,
		samples: samples,
		clock:   clk,
		scenes:  Scenes,
		rng:     rng,
		layers:  make(map[string]*activeLayer),
	}
}

// StartScene retires the current layers, then starts every layer of mode
// Each continuous layer fades in independently; periodic layers start their timers
func (s *Soundscape) StartScene(mode core.Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.retireLocked(constant.LayerRetireFade)
	s.mode = mode

	specs, ok := s.scenes[mode]
	if !ok {
		log.Printf("AUDIO: no soundscape for %q", mode)
		return
	}

	for _, spec := range specs {
		l, err := s.startLayerLocked(spec)
		if err != nil {
			log.Printf("AUDIO: layer %s skipped: %v", spec.Name, err)
			continue
		}
		s.layers[spec.Name] = l
	}
}

func (s *Soundscape) startLayerLocked(spec LayerSpec) (*activeLayer, error) {
	l := &activeLayer{spec: spec}

	switch spec.Kind {
	case LayerContinuous:
		src, level, synth, err := s.buildBedLocked(spec)
		if err != nil {
			return nil, err
		}
		l.synthesized = synth
		l.fader = NewFader(src, s.sr, 0)
		l.fader.FadeTo(level, spec.Fade)
		s.bus.Add(l.fader)

	case LayerPeriodic, LayerCue:
		l.shots = &shotPlayer{
			shot:    spec.Shot,
			rng:     childRand(s.rng),
			bus:     s.bus,
			sr:      s.sr,
			samples: s.samples,
		}
		l.synthesized = !l.shots.sampleLoaded()
		if spec.Kind == LayerPeriodic {
			l.repeater = StartRepeater(s.clock, spec.Interval, constant.CueJitter, childRand(s.rng), l.shots.play)
		}

	default:
		return nil, fmt.Errorf("unknown layer kind %d", spec.Kind)
	}

	return l, nil
}

// buildBedLocked picks the sample when loaded, else the synthesized equivalent
func (s *Soundscape) buildBedLocked(spec LayerSpec) (beep.Streamer, float64, bool, error) {
	if spec.Sample != "" && s.samples != nil {
		if _, ok := s.samples.Get(spec.Sample); ok {
			src, err := SampleLoop(spec.Sample).Build(s.sr, s.rng, s.samples)
			if err == nil {
				return src, spec.SampleLevel, false, nil
			}
			log.Printf("AUDIO: sample %s unusable, synthesizing: %v", spec.Sample, err)
		}
	}

	if spec.Synth == nil {
		return nil, 0, false, fmt.Errorf("%w: %s has no synthesized fallback", ErrUnknownSample, spec.Sample)
	}
	src, err := spec.Synth.Build(s.sr, s.rng, s.samples)
	if err != nil {
		return nil, 0, false, err
	}
	return src, spec.SynthLevel, true, nil
}

// TriggerCue fires one shot of a periodic or cue layer outside its schedule
func (s *Soundscape) TriggerCue(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.layers[name]
	if !ok || l.shots == nil {
		return false
	}
	l.shots.play()
	return true
}

// SetLayerRate reschedules a periodic layer around a new base interval
func (s *Soundscape) SetLayerRate(name string, interval time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.layers[name]
	if !ok || l.repeater == nil || interval <= 0 {
		return false
	}
	l.repeater.SetInterval(interval)
	return true
}

// FadeLayer ramps a continuous layer to level over d
func (s *Soundscape) FadeLayer(name string, level float64, d time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.layers[name]
	if !ok || l.fader == nil {
		return false
	}
	l.fader.FadeTo(level, d)
	return true
}

// StopLayer retires one layer: its timer is cancelled, its fader fades out over d
func (s *Soundscape) StopLayer(name string, d time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.layers[name]
	if !ok {
		return false
	}
	s.retireLayerLocked(l, d)
	delete(s.layers, name)
	return true
}

// RetireAll fades every layer out over d and cancels every periodic timer
func (s *Soundscape) RetireAll(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.retireLocked(d)
}

func (s *Soundscape) retireLocked(d time.Duration) {
	if len(s.layers) > 0 {
		log.Printf("AUDIO: retiring %d layers of %q over %v", len(s.layers), s.mode, d)
	}
	for name, l := range s.layers {
		s.retireLayerLocked(l, d)
		delete(s.layers, name)
	}
	s.pruneLocked()
}

func (s *Soundscape) retireLayerLocked(l *activeLayer, d time.Duration) {
	if l.repeater != nil {
		l.repeater.Stop()
	}
	if l.fader != nil {
		l.fader.FadeOut(d)
		s.retiring = append(s.retiring, l.fader)
	}
}

// pruneLocked forgets retired faders that have finished
func (s *Soundscape) pruneLocked() {
	live := s.retiring[:0]
	for _, f := range s.retiring {
		if !f.Done() {
			live = append(live, f)
		}
	}
	clear(s.retiring[len(live):])
	s.retiring = live
}

// HardStop cuts every source immediately, including fades in flight
func (s *Soundscape) HardStop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for name, l := range s.layers {
		if l.repeater != nil {
			l.repeater.Stop()
		}
		if l.fader != nil {
			l.fader.Stop()
		}
		delete(s.layers, name)
	}
	for _, f := range s.retiring {
		f.Stop()
	}
	s.retiring = nil
	s.mode = ""
	s.bus.Clear()
}

// Mode returns the ambient setting of the active layers
func (s *Soundscape) Mode() core.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Layers returns the active layers sorted by name
func (s *Soundscape) Layers() []LayerInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]LayerInfo, 0, len(s.layers))
	for _, l := range s.layers {
		out = append(out, l.info())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Layer returns one active layer
func (s *Soundscape) Layer(name string) (LayerInfo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.layers[name]
	if !ok {
		return LayerInfo{}, false
	}
	return l.info(), true
}

func (l *activeLayer) info() LayerInfo {
	info := LayerInfo{
		Name:        l.spec.Name,
		Kind:        l.spec.Kind,
		Synthesized: l.synthesized,
	}
	if l.fader != nil {
		info.Gain = l.fader.Gain()
	}
	if l.repeater != nil {
		info.Interval = l.repeater.Interval()
	}
	return info
}

// shotPlayer renders a layer's one-shots; safe for the repeater and cue callers at once
type shotPlayer struct {
	mu      sync.Mutex
	shot    Shot
	rng     *rand.Rand
	bus     *Bus
	sr      beep.SampleRate
	samples SampleSource
}

func (p *shotPlayer) sampleLoaded() bool {
	if p.shot.Sample == "" || p.samples == nil {
		return false
	}
	_, ok := p.samples.Get(p.shot.Sample)
	return ok
}

// play attaches one fresh shot to the bus; it drains on its own
func (p *shotPlayer) play() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.shot.Sample != "" && p.samples != nil {
		if pcm, ok := p.samples.Get(p.shot.Sample); ok {
			p.bus.Add(NewFader(pcm.Streamer(false), p.sr, p.shot.SampleGain))
			return
		}
	}
	if t := p.shot.Transient; t != nil {
		p.bus.Add(NewFader(t.Render(p.sr, p.rng).Streamer(), p.sr, t.Gain))
	}
}
