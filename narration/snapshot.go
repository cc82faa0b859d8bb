package narration

import "github.com/lixenwraith/ambience/constant"

// LineView is one line; Text is the revealed prefix of Full
type LineView struct {
	Text     string
	Full     string
	Style    Style
	Dim      bool
	Revealed bool
}

// ChoiceView is one presented option
type ChoiceView struct {
	Key    int
	Text   string
	Chosen bool
	Faded  bool
}

// Snapshot is everything a front-end needs to draw the narration
type Snapshot struct {
	Label        string
	Lines        []LineView
	Choices      []ChoiceView
	Ending       bool
	Restart      bool
	RestartLabel string
	Opacity      float64
}

// Snapshot captures the board at the current clock time
func (b *Board) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.clock.Now()
	s := Snapshot{
		Label:   b.label,
		Ending:  b.ending,
		Restart: b.restart,
		Opacity: b.opacityLocked(now),
	}
	if b.restart {
		s.RestartLabel = constant.RestartLabel
	}

	s.Lines = make([]LineView, 0, len(b.lines))
	for _, l := range b.lines {
		text := l.shown(now)
		s.Lines = append(s.Lines, LineView{
			Text:     text,
			Full:     l.text,
			Style:    l.style,
			Dim:      l.dim,
			Revealed: len(text) == len(l.text),
		})
	}

	for i, c := range b.choices {
		s.Choices = append(s.Choices, ChoiceView{
			Key:    i + 1,
			Text:   c.Text,
			Chosen: i == b.selected,
			Faded:  b.selected >= 0 && i != b.selected,
		})
	}
	return s
}
