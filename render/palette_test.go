package render

import (
	"testing"

	"github.com/lixenwraith/ambience/core"
	"github.com/lixenwraith/ambience/parameter/visual"
)

// TestPaletteSample verifies interpolation between stops and clamping outside them
func TestPaletteSample(t *testing.T) {
	p := Palette{
		{Pos: 0, Color: core.RGB{R: 0, G: 0, B: 0}},
		{Pos: 0.5, Color: core.RGB{R: 100, G: 200, B: 50}},
		{Pos: 1, Color: core.RGB{R: 200, G: 0, B: 250}},
	}

	tests := []struct {
		pos  float64
		want core.RGB
	}{
		{-1, core.RGB{R: 0, G: 0, B: 0}},
		{0, core.RGB{R: 0, G: 0, B: 0}},
		{0.25, core.RGB{R: 50, G: 100, B: 25}},
		{0.5, core.RGB{R: 100, G: 200, B: 50}},
		{0.75, core.RGB{R: 150, G: 100, B: 150}},
		{1, core.RGB{R: 200, G: 0, B: 250}},
		{2, core.RGB{R: 200, G: 0, B: 250}},
	}
	for _, tt := range tests {
		if got := p.Sample(tt.pos); got != tt.want {
			t.Errorf("Sample(%v): expected %v, got %v", tt.pos, tt.want, got)
		}
	}
}

// TestBlendPaletteEndpoints verifies t=0 reproduces the source and t=1 the destination
func TestBlendPaletteEndpoints(t *testing.T) {
	for _, from := range core.Modes {
		for _, to := range core.Modes {
			a, b := PaletteFor(from), PaletteFor(to)

			start := BlendPalette(a, b, 0)
			end := BlendPalette(a, b, 1)
			for i := range start {
				pos := start[i].Pos
				if start[i].Color != a.Sample(pos) {
					t.Errorf("%s->%s at %v: expected source %v, got %v", from, to, pos, a.Sample(pos), start[i].Color)
				}
				if end[i].Color != b.Sample(pos) {
					t.Errorf("%s->%s at %v: expected destination %v, got %v", from, to, pos, b.Sample(pos), end[i].Color)
				}
			}
		}
	}
}

// TestBlendPalettePositions verifies the fixed sample positions
func TestBlendPalettePositions(t *testing.T) {
	got := BlendPalette(PaletteFor(core.ModeLake), PaletteFor(core.ModeMorning), 0.5)
	want := []float64{0, 0.25, 0.5, 0.75, 1}
	if len(got) != len(want) {
		t.Fatalf("Expected %d stops, got %d", len(want), len(got))
	}
	for i, pos := range want {
		if got[i].Pos != pos {
			t.Errorf("Stop %d: expected pos %v, got %v", i, pos, got[i].Pos)
		}
	}
}

// TestPaletteForUnknown verifies an unknown setting paints black
func TestPaletteForUnknown(t *testing.T) {
	if got := PaletteFor("void").Sample(0.5); got != core.RGBBlack {
		t.Errorf("Expected black, got %v", got)
	}
	if len(PaletteFor(core.ModeLake)) != len(visual.Palettes[core.ModeLake]) {
		t.Error("Expected lake palette from parameters")
	}
}

// TestEaseInOut verifies endpoints, midpoint and monotonicity
func TestEaseInOut(t *testing.T) {
	if EaseInOut(0) != 0 || EaseInOut(1) != 1 {
		t.Error("Expected fixed endpoints")
	}
	if EaseInOut(0.5) != 0.5 {
		t.Errorf("Expected 0.5 at midpoint, got %f", EaseInOut(0.5))
	}
	if EaseInOut(0.25) != 0.125 {
		t.Errorf("Expected 0.125 at quarter, got %f", EaseInOut(0.25))
	}

	prev := 0.0
	for i := 1; i <= 100; i++ {
		v := EaseInOut(float64(i) / 100)
		if v < prev {
			t.Fatalf("Ease decreased at %d: %f < %f", i, v, prev)
		}
		prev = v
	}
}
