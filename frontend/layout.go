package frontend

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/ambience/constant"
	"github.com/lixenwraith/ambience/core"
	"github.com/lixenwraith/ambience/narration"
	"github.com/lixenwraith/ambience/parameter/visual"
)

// Align positions a row inside the text column
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
)

// Row is one laid-out line of narration; a zero Row is a blank spacer
type Row struct {
	Text  string
	Color core.RGB
	Align Align
	Bold  bool
}

// Page is the narration laid out for a column of fixed width
type Page struct {
	Label   Row
	Body    []Row
	Ending  bool
	Opacity float64
}

// Layout wraps the snapshot into rows; partially revealed lines keep their final line breaks
func Layout(s narration.Snapshot, width int) Page {
	p := Page{
		Ending:  s.Ending,
		Opacity: s.Opacity,
	}
	if s.Label != "" {
		p.Label = Row{Text: s.Label, Color: visual.TextLabel, Align: AlignCenter}
	}

	align := AlignLeft
	if s.Ending {
		align = AlignCenter
	}

	for _, l := range s.Lines {
		rows := reveal(Wrap(l.Full, width), utf8.RuneCountInString(l.Text))
		if len(rows) == 0 {
			continue
		}
		if len(p.Body) > 0 {
			p.Body = append(p.Body, Row{})
		}
		color := LineColor(l)
		for _, r := range rows {
			p.Body = append(p.Body, Row{
				Text:  r,
				Color: color,
				Align: align,
				Bold:  l.Style == narration.StyleTitle,
			})
		}
	}

	if len(s.Choices) > 0 {
		p.Body = append(p.Body, Row{})
		for _, c := range s.Choices {
			prefix := strconv.Itoa(c.Key) + ". "
			indent := strings.Repeat(" ", len(prefix))
			color := ChoiceColor(c)
			for i, r := range Wrap(c.Text, width-len(prefix)) {
				lead := prefix
				if i > 0 {
					lead = indent
				}
				p.Body = append(p.Body, Row{Text: lead + r, Color: color})
			}
		}
	}

	if s.Restart {
		p.Body = append(p.Body, Row{Text: s.RestartLabel, Color: visual.TextChoice, Align: AlignCenter})
	}
	return p
}

// LineColor picks the text color for a line
func LineColor(l narration.LineView) core.RGB {
	if l.Dim {
		return visual.TextDim
	}
	switch l.Style {
	case narration.StyleFeeling:
		return visual.TextFeeling
	case narration.StyleWhisper:
		return visual.TextWhisper
	case narration.StyleTitle:
		return visual.TextEnding
	case narration.StyleCredit:
		return visual.TextEnding.Scale(0.75)
	default:
		return visual.TextPassage
	}
}

// ChoiceColor highlights the selection and fades the others
func ChoiceColor(c narration.ChoiceView) core.RGB {
	switch {
	case c.Chosen:
		return visual.TextChosen
	case c.Faded:
		return visual.TextDim
	default:
		return visual.TextChoice
	}
}

// Wrap breaks text at spaces into rows no wider than width cells, splitting words that do not fit
func Wrap(text string, width int) []string {
	if width < 1 {
		width = 1
	}

	var rows []string
	line, lineW := "", 0
	for _, word := range strings.Fields(text) {
		for _, part := range splitWidth(word, width) {
			w := runewidth.StringWidth(part)
			switch {
			case lineW == 0:
				line, lineW = part, w
			case lineW+1+w <= width:
				line += " " + part
				lineW += 1 + w
			default:
				rows = append(rows, line)
				line, lineW = part, w
			}
		}
	}
	if lineW > 0 {
		rows = append(rows, line)
	}
	return rows
}

func splitWidth(word string, width int) []string {
	if runewidth.StringWidth(word) <= width {
		return []string{word}
	}
	var parts []string
	start, w := 0, 0
	for i, r := range word {
		rw := runewidth.RuneWidth(r)
		if w > 0 && w+rw > width {
			parts = append(parts, word[start:i])
			start, w = i, 0
		}
		w += rw
	}
	return append(parts, word[start:])
}

// reveal keeps the first n runes of the wrapped rows, counting one separator per break
func reveal(rows []string, n int) []string {
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		if n <= 0 {
			break
		}
		runes := []rune(row)
		if n < len(runes) {
			out = append(out, string(runes[:n]))
			break
		}
		out = append(out, row)
		n -= len(runes) + 1
	}
	return out
}

// Offset returns the left edge of text in a column starting at left
func Offset(r Row, left, width int) int {
	if r.Align != AlignCenter {
		return left
	}
	pad := (width - runewidth.StringWidth(r.Text)) / 2
	if pad < 0 {
		pad = 0
	}
	return left + pad
}

// Placed is a row positioned on a grid of text cells
type Placed struct {
	Row
	X, Y int
}

// Arrange lays the snapshot out on a cols × rows grid: label on top, body below it
// scrolled to its newest rows, credits centred vertically
func Arrange(s narration.Snapshot, cols, rows int) ([]Placed, float64) {
	width := min(cols-4, constant.TextColumnWidth)
	if width < 8 || rows <= constant.TextTop {
		return nil, s.Opacity
	}
	left := (cols - width) / 2
	page := Layout(s, width)

	var out []Placed
	if page.Label.Text != "" {
		out = append(out, Placed{Row: page.Label, X: Offset(page.Label, left, width), Y: constant.TextTop - 2})
	}

	body := page.Body
	if avail := rows - constant.TextTop - 1; len(body) > avail {
		body = body[len(body)-avail:]
	}

	y := constant.TextTop
	if page.Ending {
		y = (rows - len(body)) / 2
	}
	for _, r := range body {
		if r.Text != "" {
			out = append(out, Placed{Row: r, X: Offset(r, left, width), Y: y})
		}
		y++
	}
	return out, page.Opacity
}
