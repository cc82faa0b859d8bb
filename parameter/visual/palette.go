package visual

import "github.com/lixenwraith/ambience/core"

// PaletteStop is one vertical gradient key; Pos 0 is the top edge, 1 the bottom
type PaletteStop struct {
	Pos   float64
	Color core.RGB
}

// Palettes holds the background gradient for each ambient setting
// Stops are sorted by Pos and always include 0 and 1
var Palettes = map[core.Mode][]PaletteStop{
	core.ModeLake: {
		{0, core.RGB{R: 13, G: 17, B: 23}},
		{0.5, core.RGB{R: 15, G: 26, B: 36}},
		{1, core.RGB{R: 10, G: 21, B: 32}},
	},
	core.ModeBedroom: {
		{0, core.RGB{R: 18, G: 18, B: 28}},
		{0.5, core.RGB{R: 14, G: 14, B: 22}},
		{1, core.RGB{R: 10, G: 10, B: 16}},
	},
	core.ModeMorning: {
		{0, core.RGB{R: 32, G: 28, B: 20}},
		{0.4, core.RGB{R: 24, G: 20, B: 16}},
		{1, core.RGB{R: 12, G: 12, B: 14}},
	},
}

// Text colors for the narration layer
var (
	TextPassage = core.RGB{R: 200, G: 196, B: 188}
	TextDim     = core.RGB{R: 90, G: 88, B: 84}
	TextWhisper = core.RGB{R: 140, G: 138, B: 132}
	TextFeeling = core.RGB{R: 176, G: 170, B: 190}
	TextLabel   = core.RGB{R: 120, G: 130, B: 150}
	TextChoice  = core.RGB{R: 170, G: 190, B: 210}
	TextChosen  = core.RGB{R: 212, G: 190, B: 140}
	TextEnding  = core.RGB{R: 212, G: 208, B: 200}
)
