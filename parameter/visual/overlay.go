package visual

import "github.com/lixenwraith/ambience/core"

// Extent is a length resolved against the frame: Px is in reference pixels (scaled by
// frame height), Height and Width are fractions of the frame dimensions
type Extent struct {
	Px     float64
	Height float64
	Width  float64
}

// GlowStop is one key of a radial glow; Pos 0 is the inner radius, 1 the outer
type GlowStop struct {
	Pos   float64
	Color core.RGB
	Alpha float64
}

// Glow is a radial gradient centred at (X*width, Y*height)
// Clip bounds painting to a square of that half-size; zero paints the full frame
type Glow struct {
	X, Y  float64
	Inner Extent
	Outer Extent
	Clip  Extent
	Stops []GlowStop
}

// Disc is a solid translucent circle
type Disc struct {
	X, Y   float64
	Radius Extent
	Color  core.RGBA
}

// Overlay is the decorative layer painted over a setting's gradient
type Overlay struct {
	Glows []Glow
	Discs []Disc
}

// Overlays holds the decorative layer for each ambient setting
var Overlays = map[core.Mode]Overlay{
	// Moon with glow
	core.ModeLake: {
		Glows: []Glow{{
			X: 0.55, Y: 0.15,
			Inner: Extent{Px: 18},
			Outer: Extent{Px: 120},
			Clip:  Extent{Px: 120},
			Stops: []GlowStop{
				{0, core.RGB{R: 212, G: 208, B: 200}, 0.3},
				{0.3, core.RGB{R: 190, G: 200, B: 215}, 0.08},
				{1, core.RGB{R: 180, G: 190, B: 210}, 0},
			},
		}},
		Discs: []Disc{{
			X: 0.55, Y: 0.15,
			Radius: Extent{Px: 18},
			Color:  core.RGBA{RGB: core.RGB{R: 212, G: 208, B: 200}, A: 0.4},
		}},
	},
	// Moonlight shaft from the upper right
	core.ModeBedroom: {
		Glows: []Glow{{
			X: 0.8, Y: 0,
			Outer: Extent{Height: 0.7},
			Stops: []GlowStop{
				{0, core.RGB{R: 160, G: 170, B: 200}, 0.18},
				{0.5, core.RGB{R: 140, G: 150, B: 180}, 0.07},
				{1, core.RGB{R: 140, G: 150, B: 180}, 0},
			},
		}},
	},
	// Warm horizon
	core.ModeMorning: {
		Glows: []Glow{{
			X: 0.5, Y: 0.15,
			Outer: Extent{Width: 0.5},
			Stops: []GlowStop{
				{0, core.RGB{R: 200, G: 160, B: 100}, 0.2},
				{0.4, core.RGB{R: 180, G: 140, B: 90}, 0.08},
				{1, core.RGB{R: 180, G: 140, B: 90}, 0},
			},
		}},
	},
}
