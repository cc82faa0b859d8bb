package core

import "math"

// RGB stores explicit 8-bit color channels, decoupled from any display backend
type RGB struct {
	R, G, B uint8
}

// Predefined colors
var (
	RGBBlack = RGB{0, 0, 0}
)

// Lerp interpolates per channel from c toward dst by t in [0,1], rounding to nearest
func (c RGB) Lerp(dst RGB, t float64) RGB {
	if t <= 0 {
		return c
	}
	if t >= 1 {
		return dst
	}
	return RGB{
		R: lerpChannel(c.R, dst.R, t),
		G: lerpChannel(c.G, dst.G, t),
		B: lerpChannel(c.B, dst.B, t),
	}
}

// Blend performs alpha blending: result = src*alpha + dst*(1-alpha)
func (c RGB) Blend(src RGB, alpha float64) RGB {
	return c.Lerp(src, alpha)
}

// Scale multiplies each channel by factor (for fading effects)
func (c RGB) Scale(factor float64) RGB {
	if factor <= 0 {
		return RGBBlack
	}
	if factor >= 1 {
		return c
	}
	return RGB{
		R: uint8(math.Round(float64(c.R) * factor)),
		G: uint8(math.Round(float64(c.G) * factor)),
		B: uint8(math.Round(float64(c.B) * factor)),
	}
}

func lerpChannel(a, b uint8, t float64) uint8 {
	v := math.Round(float64(a) + (float64(b)-float64(a))*t)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// RGBA is a color with straight (non-premultiplied) opacity
type RGBA struct {
	RGB
	A float64
}
