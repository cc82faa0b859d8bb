package render

import (
	"math"
	"math/rand/v2"

	"github.com/lixenwraith/ambience/constant"
	"github.com/lixenwraith/ambience/core"
	"github.com/lixenwraith/ambience/parameter/visual"
)

// Particle is one decorative mote, positioned in frame pixels
type Particle struct {
	X, Y    float64
	VX, VY  float64
	Size    float64
	Opacity float64
	Phase   float64
	Color   core.RGB
}

// NewParticles creates a fresh set for mode in a w×h frame
// Geometry and velocity scale with frame height against the reference height
func NewParticles(mode core.Mode, w, h int, rng *rand.Rand) []Particle {
	groups := visual.ParticleGroups[mode]
	scale := frameScale(h)

	total := 0
	for _, g := range groups {
		total += g.Count
	}

	out := make([]Particle, 0, total)
	for _, g := range groups {
		for i := 0; i < g.Count; i++ {
			out = append(out, Particle{
				X:       pick(rng, g.X) * float64(w),
				Y:       pick(rng, g.Y) * float64(h),
				VX:      pick(rng, g.VX) * scale,
				VY:      pick(rng, g.VY) * scale,
				Size:    pick(rng, g.Size) * scale,
				Opacity: pick(rng, g.Opacity),
				Phase:   rng.Float64() * 2 * math.Pi,
				Color:   g.Color,
			})
		}
	}
	return out
}

func pick(rng *rand.Rand, r visual.Range) float64 {
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// frameScale maps reference pixels to frame pixels
func frameScale(h int) float64 {
	return float64(h) / constant.ReferenceHeight
}

// Step advances by frames reference frames and wraps around a w×h torus
// A particle past a bound by more than margin reappears margin beyond the opposite bound
func (p *Particle) Step(frames float64, w, h int, margin float64) {
	p.X += p.VX * frames
	p.Y += p.VY * frames
	p.Phase += constant.ParticlePhaseStep * frames

	fw, fh := float64(w), float64(h)
	if p.X < -margin {
		p.X = fw + margin
	} else if p.X > fw+margin {
		p.X = -margin
	}
	if p.Y < -margin {
		p.Y = fh + margin
	} else if p.Y > fh+margin {
		p.Y = -margin
	}
}

// Alpha is the pulsing opacity for the current phase
func (p *Particle) Alpha() float64 {
	return p.Opacity * (0.5 + 0.5*math.Sin(p.Phase))
}
