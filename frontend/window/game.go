// Package window draws the experience in a desktop window with ebiten
package window

import (
	"context"
	"errors"
	"image"
	"image/color"
	"log"
	"unicode"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/lixenwraith/ambience/constant"
	"github.com/lixenwraith/ambience/frontend"
	"github.com/lixenwraith/ambience/narration"
	"github.com/lixenwraith/ambience/render"
)

// Game implements ebiten.Game over a fixed logical size
type Game struct {
	ctx      context.Context
	bg       *render.Background
	board    *narration.Board
	controls *frontend.Controls

	width, height int
	raster        *image.RGBA
	line          *ebiten.Image
	chars         []rune
}

// New creates the window game; the background is drawn at width × height logical pixels
func New(ctx context.Context, width, height int, bg *render.Background, board *narration.Board, controls *frontend.Controls) *Game {
	if width <= 0 {
		width = constant.DefaultWindowWidth
	}
	if height <= 0 {
		height = constant.DefaultWindowHeight
	}
	return &Game{
		ctx:      ctx,
		bg:       bg,
		board:    board,
		controls: controls,
		width:    width,
		height:   height,
		raster:   image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// Update handles input once per tick
func (g *Game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}

	g.chars = ebiten.AppendInputChars(g.chars[:0])
	for _, r := range g.chars {
		if !g.controls.Press(unicode.ToLower(r)) {
			return ebiten.Termination
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter) {
		g.controls.Press('\n')
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.controls.Press('q')
		return ebiten.Termination
	}
	return nil
}

// Draw renders the background and the narration
func (g *Game) Draw(screen *ebiten.Image) {
	g.bg.Draw(g.raster)
	screen.WritePixels(g.raster.Pix)

	cols := g.width / constant.WindowCellWidth
	rows := g.height / constant.WindowCellHeight
	placed, opacity := frontend.Arrange(g.board.Snapshot(), cols, rows)
	if opacity <= 0 {
		return
	}
	for _, p := range placed {
		g.drawRow(screen, p, opacity)
	}
}

// drawRow prints into a scratch line and tints it, since the debug font is white only
func (g *Game) drawRow(screen *ebiten.Image, p frontend.Placed, opacity float64) {
	if g.line == nil {
		g.line = ebiten.NewImage(g.width, constant.WindowCellHeight)
	}
	g.line.Clear()
	ebitenutil.DebugPrintAt(g.line, p.Text, 0, 0)

	passes := 1
	if p.Bold {
		passes = 2
	}
	for i := 0; i < passes; i++ {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(p.X*constant.WindowCellWidth+i), float64(p.Y*constant.WindowCellHeight))
		op.ColorScale.ScaleWithColor(color.RGBA{R: p.Color.R, G: p.Color.G, B: p.Color.B, A: 255})
		op.ColorScale.ScaleAlpha(float32(opacity))
		screen.DrawImage(g.line, op)
	}
}

// Layout reports the logical screen size used by Ebiten
func (g *Game) Layout(_, _ int) (int, int) { return g.width, g.height }

// Run opens the window and blocks until it closes or ctx ends
func Run(title string, g *Game) error {
	ebiten.SetWindowSize(g.width, g.height)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	log.Printf("RENDER: window %dx%d", g.width, g.height)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
