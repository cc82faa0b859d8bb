package constant

import "time"

// Frame Pacing
const (
	// TerminalFrameInterval drives the terminal render loop
	TerminalFrameInterval = time.Second / 30

	// ReferenceFrame is the frame period particle velocities are authored for
	ReferenceFrame = time.Second / 60

	// MaxFrameCatchup bounds particle motion after a stall, in reference frames
	MaxFrameCatchup = 4.0

	// ReferenceHeight is the frame height the overlay and particle geometry is authored for
	ReferenceHeight = 720.0
)

// Particles
const (
	// ParticleWrapMargin is the distance past a bound before wrapping, in reference pixels
	ParticleWrapMargin = 10.0

	// ParticlePhaseStep is the per-frame advance of the opacity pulse
	ParticlePhaseStep = 0.02
)

// Palette Blending
const (
	// BlendStops is the number of evenly spaced positions sampled when blending palettes
	BlendStops = 5
)

// Text Column
const (
	// TextColumnWidth is the widest narration column, in terminal cells
	TextColumnWidth = 64

	// TextTop is the first body row; the scene label sits above it
	TextTop = 3
)

// Window Display
const (
	// Debug font cell, in logical pixels
	WindowCellWidth  = 6
	WindowCellHeight = 16

	DefaultWindowWidth  = 960
	DefaultWindowHeight = 540
)
