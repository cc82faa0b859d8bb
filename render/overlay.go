package render

import (
	"image"
	"math"

	"github.com/lixenwraith/ambience/core"
	"github.com/lixenwraith/ambience/parameter/visual"
)

// resolve converts an extent to frame pixels
func resolve(e visual.Extent, w, h int, scale float64) float64 {
	return e.Px*scale + e.Height*float64(h) + e.Width*float64(w)
}

// glowAt interpolates the glow stops at t; outside [first, last] the edge stop holds
func glowAt(stops []visual.GlowStop, t float64) (core.RGB, float64) {
	if len(stops) == 0 {
		return core.RGBBlack, 0
	}
	if t <= stops[0].Pos {
		return stops[0].Color, stops[0].Alpha
	}
	last := stops[len(stops)-1]
	if t >= last.Pos {
		return last.Color, last.Alpha
	}
	for i := 0; i < len(stops)-1; i++ {
		a, b := stops[i], stops[i+1]
		if t >= a.Pos && t <= b.Pos {
			span := b.Pos - a.Pos
			if span <= 0 {
				return b.Color, b.Alpha
			}
			f := (t - a.Pos) / span
			return a.Color.Lerp(b.Color, f), a.Alpha + (b.Alpha-a.Alpha)*f
		}
	}
	return last.Color, last.Alpha
}

// overlayLayer is a setting's glows and discs rendered once over transparency
// Pix is alpha-premultiplied, as image.RGBA defines; bounds covers every painted pixel
type overlayLayer struct {
	img    *image.RGBA
	bounds image.Rectangle
}

// newOverlayLayer renders ov for a w×h frame
func newOverlayLayer(ov visual.Overlay, w, h int) *overlayLayer {
	l := &overlayLayer{img: image.NewRGBA(image.Rect(0, 0, w, h))}
	scale := frameScale(h)

	for _, g := range ov.Glows {
		l.paintGlow(g, scale)
	}
	for _, d := range ov.Discs {
		cx := d.X * float64(w)
		cy := d.Y * float64(h)
		r := resolve(d.Radius, w, h, scale)
		l.bounds = l.bounds.Union(squareAround(cx, cy, r+1).Intersect(l.img.Rect))
		eachInCircle(cx, cy, r, w, h, func(x, y int) {
			l.over(x, y, d.Color.RGB, d.Color.A)
		})
	}
	return l
}

// paintGlow draws a concentric radial gradient; inside the inner radius the first stop holds
func (l *overlayLayer) paintGlow(g visual.Glow, scale float64) {
	w, h := l.img.Rect.Dx(), l.img.Rect.Dy()
	cx := g.X * float64(w)
	cy := g.Y * float64(h)
	r0 := resolve(g.Inner, w, h, scale)
	r1 := resolve(g.Outer, w, h, scale)
	if r1 <= r0 || len(g.Stops) == 0 {
		return
	}

	box := l.img.Rect
	if clip := resolve(g.Clip, w, h, scale); clip > 0 {
		box = box.Intersect(squareAround(cx, cy, clip))
	}
	// Past the outer radius the last stop holds; a transparent one paints nothing
	if g.Stops[len(g.Stops)-1].Alpha <= 0 {
		box = box.Intersect(squareAround(cx, cy, r1))
	}
	l.bounds = l.bounds.Union(box)

	span := r1 - r0
	for y := box.Min.Y; y < box.Max.Y; y++ {
		dy := float64(y) + 0.5 - cy
		for x := box.Min.X; x < box.Max.X; x++ {
			dx := float64(x) + 0.5 - cx
			col, a := glowAt(g.Stops, (math.Sqrt(dx*dx+dy*dy)-r0)/span)
			l.over(x, y, col, a)
		}
	}
}

// over composites col at alpha a onto the premultiplied pixel (x, y)
func (l *overlayLayer) over(x, y int, col core.RGB, a float64) {
	if a <= 0 || !image.Pt(x, y).In(l.img.Rect) {
		return
	}
	a = min(a, 1)
	keep := 1 - a
	i := l.img.PixOffset(x, y)
	p := l.img.Pix[i : i+4 : i+4]
	p[0] = uint8(math.Round(float64(col.R)*a + float64(p[0])*keep))
	p[1] = uint8(math.Round(float64(col.G)*a + float64(p[1])*keep))
	p[2] = uint8(math.Round(float64(col.B)*a + float64(p[2])*keep))
	p[3] = uint8(math.Round(255*a + float64(p[3])*keep))
}

// squareAround returns the pixel square covering (cx, cy) ± r
func squareAround(cx, cy, r float64) image.Rectangle {
	return image.Rect(
		int(math.Floor(cx-r)), int(math.Floor(cy-r)),
		int(math.Ceil(cx+r)), int(math.Ceil(cy+r)),
	)
}
