package render

import (
	"image"
	"math"

	"github.com/lixenwraith/ambience/core"
)

// canvas paints straight-alpha colors into an RGBA raster
type canvas struct {
	img  *image.RGBA
	w, h int
}

func newCanvas(img *image.RGBA) canvas {
	b := img.Bounds()
	return canvas{img: img, w: b.Dx(), h: b.Dy()}
}

// offset returns the Pix index of (x, y) relative to the raster origin
func (c canvas) offset(x, y int) int {
	return y*c.img.Stride + x*4
}

func (c canvas) at(x, y int) core.RGB {
	i := c.offset(x, y)
	return core.RGB{R: c.img.Pix[i], G: c.img.Pix[i+1], B: c.img.Pix[i+2]}
}

func (c canvas) set(x, y int, col core.RGB) {
	i := c.offset(x, y)
	c.img.Pix[i] = col.R
	c.img.Pix[i+1] = col.G
	c.img.Pix[i+2] = col.B
	c.img.Pix[i+3] = 255
}

// fillRow paints one opaque row
func (c canvas) fillRow(y int, col core.RGB) {
	if c.w == 0 {
		return
	}
	row := c.img.Pix[c.offset(0, y) : c.offset(0, y)+c.w*4]
	row[0], row[1], row[2], row[3] = col.R, col.G, col.B, 255
	for n := 4; n < len(row); n *= 2 {
		copy(row[n:], row[:n])
	}
}

// copyFrom replaces the raster with src, which has the same size
func (c canvas) copyFrom(src *image.RGBA) {
	n := c.w * 4
	for y := 0; y < c.h; y++ {
		i := c.offset(0, y)
		j := y * src.Stride
		copy(c.img.Pix[i : i+n], src.Pix[j : j+n])
	}
}

// blend composites col over (x, y) at alpha a; out-of-bounds pixels are ignored
func (c canvas) blend(x, y int, col core.RGB, a float64) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h || a <= 0 {
		return
	}
	c.set(x, y, c.at(x, y).Blend(col, a))
}

// fillCircle composites a solid disc
func (c canvas) fillCircle(cx, cy, r float64, col core.RGB, a float64) {
	if a <= 0 {
		return
	}
	eachInCircle(cx, cy, r, c.w, c.h, func(x, y int) {
		c.blend(x, y, col, a)
	})
}

// eachInCircle calls fn for every in-bounds pixel whose centre lies within r of (cx, cy)
// Radii under half a pixel mark the centre pixel only
func eachInCircle(cx, cy, r float64, w, h int, fn func(x, y int)) {
	if r < 0.5 {
		x, y := int(math.Floor(cx)), int(math.Floor(cy))
		if x >= 0 && y >= 0 && x < w && y < h {
			fn(x, y)
		}
		return
	}

	x0 := max(0, int(math.Floor(cx-r)))
	x1 := min(w-1, int(math.Ceil(cx+r)))
	y0 := max(0, int(math.Floor(cy-r)))
	y1 := min(h-1, int(math.Ceil(cy+r)))
	r2 := r * r
	for y := y0; y <= y1; y++ {
		dy := float64(y) + 0.5 - cy
		for x := x0; x <= x1; x++ {
			dx := float64(x) + 0.5 - cx
			if dx*dx+dy*dy <= r2 {
				fn(x, y)
			}
		}
	}
}

// compositeOver lays a premultiplied layer over the raster with its opacity scaled by alpha
func (c canvas) compositeOver(l *overlayLayer, alpha float64) {
	k := uint32(math.Round(clampUnit(alpha) * 255))
	if k == 0 {
		return
	}
	r := l.bounds.Intersect(image.Rect(0, 0, c.w, c.h))
	n := r.Dx() * 4
	for y := r.Min.Y; y < r.Max.Y; y++ {
		src := l.img.Pix[l.img.PixOffset(r.Min.X, y):]
		dst := c.img.Pix[c.offset(r.Min.X, y):]
		for i := 0; i < n; i += 4 {
			la := uint32(src[i+3])
			if la == 0 {
				continue
			}
			inv := 255 - la*k/255
			dst[i] = div255(uint32(dst[i])*inv + uint32(src[i])*k)
			dst[i+1] = div255(uint32(dst[i+1])*inv + uint32(src[i+1])*k)
			dst[i+2] = div255(uint32(dst[i+2])*inv + uint32(src[i+2])*k)
			dst[i+3] = 255
		}
	}
}

// div255 divides with rounding and saturates at 255
func div255(v uint32) uint8 {
	v = (v + 127) / 255
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// darken scales every pixel toward black by level in [0,1]
func (c canvas) darken(level float64) {
	if level <= 0 {
		return
	}
	var lut [256]uint8
	keep := 1 - min(level, 1)
	for v := range lut {
		lut[v] = uint8(math.Round(float64(v) * keep))
	}

	n := c.w * 4
	for y := 0; y < c.h; y++ {
		row := c.img.Pix[c.offset(0, y) : c.offset(0, y)+n]
		for i := 0; i < n; i += 4 {
			row[i] = lut[row[i]]
			row[i+1] = lut[row[i+1]]
			row[i+2] = lut[row[i+2]]
			row[i+3] = 255
		}
	}
}

// paintGradient fills the raster with a vertical gradient sampled at pixel centres
func (c canvas) paintGradient(p Palette) {
	for y := 0; y < c.h; y++ {
		c.fillRow(y, p.Sample((float64(y)+0.5)/float64(c.h)))
	}
}
