// Package terminal draws the experience in a terminal: the background as half-block cells, narration on top
package terminal

import (
	"context"
	"fmt"
	"image"
	"log"
	"os"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/ambience/constant"
	"github.com/lixenwraith/ambience/core"
	"github.com/lixenwraith/ambience/frontend"
	"github.com/lixenwraith/ambience/narration"
	"github.com/lixenwraith/ambience/render"
)

// Display owns the tcell screen
type Display struct {
	screen   tcell.Screen
	bg       *render.Background
	board    *narration.Board
	controls *frontend.Controls

	// Two raster rows per cell row
	raster     *image.RGBA
	cols, rows int
}

// New opens the screen; colorMode is auto, truecolor or 256
func New(colorMode string, bg *render.Background, board *narration.Board, controls *frontend.Controls) (*Display, error) {
	switch colorMode {
	case "256":
		os.Setenv("TCELL_TRUECOLOR", "disable")
	case "truecolor", "true", "24bit":
		os.Setenv("COLORTERM", "truecolor")
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("terminal init: %w", err)
	}
	screen.HideCursor()

	d := &Display{
		screen:   screen,
		bg:       bg,
		board:    board,
		controls: controls,
	}
	d.resize()
	log.Printf("RENDER: terminal %dx%d, %d colors", d.cols, d.rows, screen.Colors())
	return d, nil
}

// Fini restores the terminal; safe to call more than once
func (d *Display) Fini() {
	d.screen.Fini()
}

// Run draws frames and handles keys until ctx ends or the player quits
func (d *Display) Run(ctx context.Context) error {
	ticker := time.NewTicker(constant.TerminalFrameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	core.Go(func() {
		for {
			ev := d.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	})

	d.draw()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			if !d.handleInput(ev) {
				return nil
			}

		case <-ticker.C:
			d.draw()
		}
	}
}

func (d *Display) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return d.controls.Press('q')
		case tcell.KeyEnter:
			return d.controls.Press('\n')
		case tcell.KeyRune:
			return d.controls.Press(unicode.ToLower(ev.Rune()))
		}

	case *tcell.EventResize:
		d.resize()
		d.screen.Sync()
	}
	return true
}

func (d *Display) resize() {
	d.cols, d.rows = d.screen.Size()
	d.raster = image.NewRGBA(image.Rect(0, 0, d.cols, d.rows*2))
}

func (d *Display) draw() {
	if d.cols == 0 || d.rows == 0 {
		return
	}
	d.bg.Draw(d.raster)

	for y := 0; y < d.rows; y++ {
		for x := 0; x < d.cols; x++ {
			top, bottom := d.cell(x, y)
			style := tcell.StyleDefault.Foreground(RGBToTcell(top)).Background(RGBToTcell(bottom))
			d.screen.SetContent(x, y, '▀', nil, style)
		}
	}

	d.drawText()
	d.screen.Show()
}

// cell returns the raster pixels behind the upper and lower half of a cell
func (d *Display) cell(x, y int) (core.RGB, core.RGB) {
	return pixel(d.raster, x, 2*y), pixel(d.raster, x, 2*y+1)
}

func (d *Display) drawText() {
	rows, opacity := frontend.Arrange(d.board.Snapshot(), d.cols, d.rows)
	for _, p := range rows {
		d.putRow(p, opacity)
	}
}

// putRow writes text over the background, blending its color toward the cell by opacity
func (d *Display) putRow(p frontend.Placed, opacity float64) {
	y := p.Y
	if y < 0 || y >= d.rows {
		return
	}

	x := p.X
	for _, ch := range p.Text {
		if x >= d.cols {
			return
		}
		top, bottom := d.cell(x, y)
		back := top.Lerp(bottom, 0.5)
		fg := back.Lerp(p.Color, opacity)

		style := tcell.StyleDefault.Foreground(RGBToTcell(fg)).Background(RGBToTcell(back)).Bold(p.Bold)
		d.screen.SetContent(x, y, ch, nil, style)
		x += max(runewidth.RuneWidth(ch), 1)
	}
}
