package terminal

import (
	"image"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/ambience/core"
)

// RGBToTcell converts RGB to tcell.Color; tcell downsamples when the terminal lacks true color
func RGBToTcell(rgb core.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(rgb.R), int32(rgb.G), int32(rgb.B))
}

// TcellToRGB converts tcell.Color to RGB
// Treats ColorDefault as black, the background of every palette's darkest edge
func TcellToRGB(c tcell.Color) core.RGB {
	if c == tcell.ColorDefault {
		return core.RGB{}
	}
	r, g, b := c.RGB()
	return core.RGB{R: uint8(r), G: uint8(g), B: uint8(b)}
}

func pixel(img *image.RGBA, x, y int) core.RGB {
	c := img.RGBAAt(x, y)
	return core.RGB{R: c.R, G: c.G, B: c.B}
}
