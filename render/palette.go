package render

import (
	"github.com/lixenwraith/ambience/constant"
	"github.com/lixenwraith/ambience/core"
	"github.com/lixenwraith/ambience/parameter/visual"
)

// Palette is a vertical gradient: stops sorted by position, first at 0 and last at 1
type Palette []visual.PaletteStop

// PaletteFor returns the gradient of an ambient setting, falling back to black
func PaletteFor(mode core.Mode) Palette {
	if p, ok := visual.Palettes[mode]; ok {
		return p
	}
	return Palette{{Pos: 0, Color: core.RGBBlack}, {Pos: 1, Color: core.RGBBlack}}
}

// Sample returns the color at pos, interpolating the bracketing stops
// Positions outside the stop range clamp to the first or last stop
func (p Palette) Sample(pos float64) core.RGB {
	if len(p) == 0 {
		return core.RGBBlack
	}
	if pos <= p[0].Pos {
		return p[0].Color
	}
	last := p[len(p)-1]
	if pos >= last.Pos {
		return last.Color
	}

	for i := 0; i < len(p)-1; i++ {
		a, b := p[i], p[i+1]
		if pos >= a.Pos && pos <= b.Pos {
			span := b.Pos - a.Pos
			if span <= 0 {
				return b.Color
			}
			return a.Color.Lerp(b.Color, (pos-a.Pos)/span)
		}
	}
	return last.Color
}

// BlendPalette samples both palettes at evenly spaced positions and mixes each channel by t
func BlendPalette(from, to Palette, t float64) Palette {
	out := make(Palette, constant.BlendStops)
	for i := range out {
		pos := float64(i) / float64(constant.BlendStops-1)
		out[i] = visual.PaletteStop{
			Pos:   pos,
			Color: from.Sample(pos).Lerp(to.Sample(pos), t),
		}
	}
	return out
}
