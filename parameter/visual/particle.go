package visual

import "github.com/lixenwraith/ambience/core"

// Range is a closed interval sampled uniformly
type Range struct {
	Min, Max float64
}

// ParticleGroup describes how a batch of particles is spawned
// X and Y are fractions of the frame; Size, VX and VY are reference pixels (per frame for velocity)
type ParticleGroup struct {
	Count   int
	X, Y    Range
	Size    Range
	VX, VY  Range
	Opacity Range
	Color   core.RGB
}

// ParticleGroups holds the spawn groups for each ambient setting
var ParticleGroups = map[core.Mode][]ParticleGroup{
	core.ModeLake: {
		// Mist over the water
		{
			Count:   30,
			X:       Range{0, 1},
			Y:       Range{0.6, 1},
			Size:    Range{1, 3},
			VX:      Range{-0.15, 0.15},
			VY:      Range{-0.05, 0.05},
			Opacity: Range{0, 0.3},
			Color:   core.RGB{R: 170, G: 190, B: 210},
		},
		// Moon reflection
		{
			Count:   8,
			X:       Range{0.4, 0.6},
			Y:       Range{0.65, 0.8},
			Size:    Range{2, 5},
			VX:      Range{-0.1, 0.1},
			VY:      Range{0, 0},
			Opacity: Range{0.1, 0.25},
			Color:   core.RGB{R: 212, G: 208, B: 200},
		},
	},
	core.ModeBedroom: {
		// Dust rising
		{
			Count:   35,
			X:       Range{0, 1},
			Y:       Range{0, 1},
			Size:    Range{1, 3},
			VX:      Range{-0.075, 0.075},
			VY:      Range{-0.15, -0.05},
			Opacity: Range{0.1, 0.4},
			Color:   core.RGB{R: 200, G: 196, B: 188},
		},
	},
	core.ModeMorning: {
		// Pollen drifting
		{
			Count:   40,
			X:       Range{0, 1},
			Y:       Range{0, 0.6},
			Size:    Range{1.5, 4.5},
			VX:      Range{0.2, 0.5},
			VY:      Range{0.05, 0.15},
			Opacity: Range{0.1, 0.35},
			Color:   core.RGB{R: 200, G: 180, B: 140},
		},
	},
}
