package render

import (
	"image"
	"log"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/lixenwraith/ambience/constant"
	"github.com/lixenwraith/ambience/core"
	"github.com/lixenwraith/ambience/parameter/visual"
)

// Background is the animated backdrop: gradient, overlays, particles and a black veil
// Narrative code mutates it through the exported operations while a front-end calls Draw once per refresh
type Background struct {
	mu    sync.Mutex
	clock clock.Clock
	rng   *rand.Rand

	width, height int

	mode       core.Mode
	transition *Transition
	particles  []Particle
	veil       veil
	lastFrame  time.Time
	layers     layerCache
}

// layerCache holds prerendered imagery for one frame size
// Each setting's overlay is rendered once per size and reused every frame
type layerCache struct {
	w, h     int
	overlays map[core.Mode]*overlayLayer
	scenes   map[core.Mode]*image.RGBA
	builds   int
}

// fit drops every cached layer when the frame size changes
func (lc *layerCache) fit(w, h int) {
	if lc.overlays != nil && lc.w == w && lc.h == h {
		return
	}
	lc.w, lc.h = w, h
	lc.overlays = make(map[core.Mode]*overlayLayer)
	lc.scenes = make(map[core.Mode]*image.RGBA)
}

// overlay returns the overlay of mode, rendering it on first use
func (lc *layerCache) overlay(mode core.Mode) *overlayLayer {
	l, ok := lc.overlays[mode]
	if !ok {
		l = newOverlayLayer(visual.Overlays[mode], lc.w, lc.h)
		lc.overlays[mode] = l
		lc.builds++
	}
	return l
}

// store keeps a layer rendered elsewhere if it still matches the frame size
func (lc *layerCache) store(mode core.Mode, w, h int, l *overlayLayer) {
	if lc.overlays == nil || lc.w != w || lc.h != h {
		return
	}
	if _, ok := lc.overlays[mode]; !ok {
		lc.overlays[mode] = l
		lc.builds++
	}
}

// scene returns the static frame of mode: its gradient under its overlay
func (lc *layerCache) scene(mode core.Mode) *image.RGBA {
	img, ok := lc.scenes[mode]
	if !ok {
		img = image.NewRGBA(image.Rect(0, 0, lc.w, lc.h))
		c := newCanvas(img)
		c.paintGradient(PaletteFor(mode))
		c.compositeOver(lc.overlay(mode), 1)
		lc.scenes[mode] = img
		lc.builds++
	}
	return img
}

// veil is a black overlay ramping linearly between two levels
type veil struct {
	from, to float64
	start    time.Time
	dur      time.Duration
}

func (v veil) level(now time.Time) float64 {
	if v.dur <= 0 {
		return v.to
	}
	t := float64(now.Sub(v.start)) / float64(v.dur)
	if t >= 1 {
		return v.to
	}
	if t <= 0 {
		return v.from
	}
	return v.from + (v.to-v.from)*t
}

// NewBackground creates a backdrop showing mode in a w×h frame
func NewBackground(clk clock.Clock, rng *rand.Rand, mode core.Mode, w, h int) *Background {
	b := &Background{
		clock:  clk,
		rng:    rng,
		width:  w,
		height: h,
		mode:   mode,
	}
	b.particles = NewParticles(mode, w, h, rng)
	return b
}

// StartTransition crossfades from the current setting to mode over d
// A transition already running is committed to its destination first
func (b *Background) StartTransition(mode core.Mode, d time.Duration) {
	b.mu.Lock()
	w, h := b.layers.w, b.layers.h
	b.mu.Unlock()

	// Render the destination overlay outside the frame lock
	var layer *overlayLayer
	if w > 0 && h > 0 {
		layer = newOverlayLayer(visual.Overlays[mode], w, h)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if layer != nil {
		b.layers.store(mode, w, h, layer)
	}

	if b.transition != nil {
		b.mode = b.transition.To
	}
	b.transition = NewTransition(b.mode, mode, b.clock.Now(), d)
	log.Printf("RENDER: transition %s -> %s over %v", b.mode, mode, d)
}

// RegenerateParticles discards every particle and spawns the set for mode
func (b *Background) RegenerateParticles(mode core.Mode) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.particles = NewParticles(mode, b.width, b.height, b.rng)
}

// Reset shows mode immediately: no transition, fresh particles, no veil
func (b *Background) Reset(mode core.Mode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.mode = mode
	b.transition = nil
	b.veil = veil{}
	b.particles = NewParticles(mode, b.width, b.height, b.rng)
	b.lastFrame = time.Time{}
}

// Resize rescales particle geometry to a new frame size
func (b *Background) Resize(w, h int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.resizeLocked(w, h)
}

func (b *Background) resizeLocked(w, h int) {
	if w == b.width && h == b.height {
		return
	}
	if b.width <= 0 || b.height <= 0 {
		b.width, b.height = w, h
		b.particles = NewParticles(b.displayModeLocked(), w, h, b.rng)
		return
	}

	sx := float64(w) / float64(b.width)
	sy := float64(h) / float64(b.height)
	for i := range b.particles {
		p := &b.particles[i]
		p.X *= sx
		p.Y *= sy
		p.VX *= sy
		p.VY *= sy
		p.Size *= sy
	}
	b.width, b.height = w, h
}

// displayModeLocked is the setting the frame is heading toward
func (b *Background) displayModeLocked() core.Mode {
	if b.transition != nil {
		return b.transition.To
	}
	return b.mode
}

// FadeVeil ramps the black veil from its current level to level over d
func (b *Background) FadeVeil(level float64, d time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.clock.Now()
	b.veil = veil{from: b.veil.level(now), to: clampUnit(level), start: now, dur: d}
}

// Veil returns the current veil level
func (b *Background) Veil() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.veil.level(b.clock.Now())
}

// Mode returns the committed setting; during a transition this is still the source
func (b *Background) Mode() core.Mode {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mode
}

// Transition returns a snapshot of the running transition
func (b *Background) Transition() (TransitionState, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.transition == nil {
		return TransitionState{}, false
	}
	t := b.transition
	return TransitionState{From: t.From, To: t.To, Ratio: t.Ratio, Duration: t.Duration}, true
}

// Particles returns a copy of the particle set
func (b *Background) Particles() []Particle {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Particle, len(b.particles))
	copy(out, b.particles)
	return out
}

// Draw advances the animation to now and paints one frame into dst
func (b *Background) Draw(dst *image.RGBA) {
	b.mu.Lock()
	defer b.mu.Unlock()

	c := newCanvas(dst)
	if c.w == 0 || c.h == 0 {
		return
	}
	b.resizeLocked(c.w, c.h)
	b.layers.fit(c.w, c.h)

	now := b.clock.Now()
	scale := frameScale(c.h)

	if b.transition != nil && b.transition.Advance(now) {
		b.mode = b.transition.To
		b.transition = nil
		log.Printf("RENDER: transition to %s complete", b.mode)
	}

	if t := b.transition; t != nil {
		eased := t.Eased()
		c.paintGradient(BlendPalette(PaletteFor(t.From), PaletteFor(t.To), eased))
		c.compositeOver(b.layers.overlay(t.From), 1-eased)
		c.compositeOver(b.layers.overlay(t.To), eased)
	} else {
		c.copyFrom(b.layers.scene(b.mode))
	}

	frames := 1.0
	if !b.lastFrame.IsZero() {
		frames = float64(now.Sub(b.lastFrame)) / float64(constant.ReferenceFrame)
		frames = max(0, min(frames, constant.MaxFrameCatchup))
	}
	b.lastFrame = now

	margin := constant.ParticleWrapMargin * scale
	for i := range b.particles {
		p := &b.particles[i]
		p.Step(frames, c.w, c.h, margin)
		c.fillCircle(p.X, p.Y, p.Size, p.Color, p.Alpha())
	}

	c.darken(b.veil.level(now))
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
