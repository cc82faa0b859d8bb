package narration

import (
	"context"
	"errors"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/benbjohnson/clock"

	"github.com/lixenwraith/ambience/constant"
	"github.com/lixenwraith/ambience/core"
	"github.com/lixenwraith/ambience/story"
)

// ErrChoiceBusy is returned when a choice is requested while another is pending
var ErrChoiceBusy = errors.New("choice already pending")

// Style selects how a line is drawn
type Style int

const (
	StylePlain Style = iota
	StyleFeeling
	StyleWhisper
	StyleTitle
	StyleCredit
)

// StyleOf maps a passage class onto a line style
func StyleOf(c story.Class) Style {
	switch c {
	case story.ClassFeeling:
		return StyleFeeling
	case story.ClassWhisper:
		return StyleWhisper
	default:
		return StylePlain
	}
}

// line is one passage; its visible prefix grows with time since start
type line struct {
	text      string
	runes     int
	style     Style
	start     time.Time
	charDelay time.Duration
	complete  bool
	dim       bool
}

func (l *line) shown(now time.Time) string {
	if l.complete || l.charDelay <= 0 {
		return l.text
	}
	n := int(now.Sub(l.start) / l.charDelay)
	if n >= l.runes {
		return l.text
	}
	if n <= 0 {
		return ""
	}
	// Byte offset of the n-th rune
	i := 0
	for k := 0; k < n; k++ {
		_, size := utf8.DecodeRuneInString(l.text[i:])
		i += size
	}
	return l.text[:i]
}

// Board is the front-end agnostic narration surface
// The orchestrator writes to it; front-ends read Snapshot each frame and forward selections
type Board struct {
	mu    sync.Mutex
	clock clock.Clock

	label   string
	lines   []*line
	ending  bool
	restart bool

	choices  []story.Choice
	selected int
	pick     chan int

	fadeFrom, fadeTo float64
	fadeStart        time.Time
	fadeDur          time.Duration
}

// NewBoard creates an empty board
func NewBoard(clk clock.Clock) *Board {
	return &Board{clock: clk, selected: -1, fadeFrom: 1, fadeTo: 1}
}

// Reveal appends a line and blocks until every character is visible
// Older lines beyond the visible window are dimmed; cancellation completes the line at once
func (b *Board) Reveal(ctx context.Context, text string, style Style, charDelay time.Duration) error {
	l := &line{
		text:      text,
		runes:     utf8.RuneCountInString(text),
		style:     style,
		charDelay: charDelay,
	}

	b.mu.Lock()
	l.start = b.clock.Now()
	b.lines = append(b.lines, l)
	b.dimOlderLocked()
	b.mu.Unlock()

	err := core.Sleep(ctx, b.clock, time.Duration(l.runes)*charDelay)

	b.mu.Lock()
	l.complete = true
	b.mu.Unlock()
	return err
}

func (b *Board) dimOlderLocked() {
	live := 0
	for i := len(b.lines) - 1; i >= 0; i-- {
		if b.lines[i].dim {
			continue
		}
		live++
		if live > constant.VisiblePassages {
			b.lines[i].dim = true
		}
	}
}

// Choose presents options and blocks until one is selected or ctx ends
// The options stay visible, with the selection marked, until ClearChoices
func (b *Board) Choose(ctx context.Context, choices []story.Choice) (string, error) {
	pick := make(chan int, 1)

	b.mu.Lock()
	if b.pick != nil {
		b.mu.Unlock()
		return "", ErrChoiceBusy
	}
	b.choices = choices
	b.selected = -1
	b.pick = pick
	b.mu.Unlock()

	select {
	case i := <-pick:
		b.mu.Lock()
		b.pick = nil
		b.mu.Unlock()
		return choices[i].Next, nil
	case <-ctx.Done():
		b.mu.Lock()
		b.pick = nil
		b.choices = nil
		b.selected = -1
		b.mu.Unlock()
		return "", ctx.Err()
	}
}

// Select picks option i; only the first valid selection of a presentation counts
func (b *Board) Select(i int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.pick == nil || b.selected >= 0 || i < 0 || i >= len(b.choices) {
		return false
	}
	b.selected = i
	b.pick <- i
	return true
}

// ClearChoices removes the presented options
func (b *Board) ClearChoices() {
	b.mu.Lock()
	b.choices = nil
	b.selected = -1
	b.mu.Unlock()
}

// Clear removes every line and option, keeping the label
func (b *Board) Clear() {
	b.mu.Lock()
	b.lines = nil
	b.choices = nil
	b.selected = -1
	b.restart = false
	b.mu.Unlock()
}

// SetLabel sets the scene heading
func (b *Board) SetLabel(label string) {
	b.mu.Lock()
	b.label = label
	b.mu.Unlock()
}

// SetEnding switches to the centred credits layout
func (b *Board) SetEnding(ending bool) {
	b.mu.Lock()
	b.ending = ending
	b.mu.Unlock()
}

// FadeText ramps text opacity to level over d
func (b *Board) FadeText(level float64, d time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := b.clock.Now()
	b.fadeFrom = b.opacityLocked(now)
	b.fadeTo = level
	b.fadeStart = now
	b.fadeDur = d
}

func (b *Board) opacityLocked(now time.Time) float64 {
	if b.fadeDur <= 0 {
		return b.fadeTo
	}
	t := float64(now.Sub(b.fadeStart)) / float64(b.fadeDur)
	if t >= 1 {
		return b.fadeTo
	}
	if t <= 0 {
		return b.fadeFrom
	}
	return b.fadeFrom + (b.fadeTo-b.fadeFrom)*t
}

// ShowRestart clears the text and offers the restart control at full opacity
func (b *Board) ShowRestart() {
	b.mu.Lock()
	b.lines = nil
	b.choices = nil
	b.restart = true
	b.fadeFrom, b.fadeTo, b.fadeDur = 1, 1, 0
	b.mu.Unlock()
}

// Reset returns the board to its initial state
func (b *Board) Reset() {
	b.mu.Lock()
	b.label = ""
	b.lines = nil
	b.choices = nil
	b.selected = -1
	b.ending = false
	b.restart = false
	b.fadeFrom, b.fadeTo, b.fadeDur = 1, 1, 0
	b.mu.Unlock()
}

// RestartOffered reports whether the restart control is showing
func (b *Board) RestartOffered() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.restart
}

// TakeRestart withdraws the restart control; only the first caller sees true
func (b *Board) TakeRestart() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	offered := b.restart
	b.restart = false
	return offered
}
