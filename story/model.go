package story

import (
	"time"

	"github.com/lixenwraith/ambience/core"
)

// Story is the whole narrative: ordered scenes plus the ending credits
type Story struct {
	Title   string  `yaml:"title"`
	Byline  string  `yaml:"byline"`
	Tagline string  `yaml:"tagline"`
	Scenes  []Scene `yaml:"scenes"`
}

// Scene is one setting with its main beat list, named branches and keyword cues
type Scene struct {
	Label    string            `yaml:"label"`
	Ambient  core.Mode         `yaml:"ambient"`
	Beats    []Beat            `yaml:"beats"`
	Branches map[string]Branch `yaml:"branches"`
	Cues     []Cue             `yaml:"cues"`
}

// Branch is an alternate beat sequence
type Branch struct {
	Beats []Beat `yaml:"beats"`
}

// Branch returns the beats of a named branch
func (s *Scene) Branch(name string) ([]Beat, bool) {
	b, ok := s.Branches[name]
	if !ok {
		return nil, false
	}
	return b.Beats, true
}

// Beat is one unit of progression
// A beat with choices has no post-action; the selection decides what follows
type Beat struct {
	Passages []Passage  `yaml:"passages"`
	Choices  []Choice   `yaml:"choices"`
	Then     PostAction `yaml:"then"`
	Delay    Millis     `yaml:"delay"`
}

// Class styles a passage
type Class string

const (
	ClassPlain   Class = ""
	ClassFeeling Class = "feeling"
	ClassWhisper Class = "whisper"
)

// Passage is one revealed line of text
type Passage struct {
	Text  string `yaml:"text"`
	Class Class  `yaml:"class"`
}

// Choice is one selectable option leading to a branch
type Choice struct {
	Text string `yaml:"text"`
	Next string `yaml:"next"`
}

// Millis is a duration written in whole milliseconds
type Millis int

// Duration converts to time.Duration
func (m Millis) Duration() time.Duration {
	return time.Duration(m) * time.Millisecond
}

// CueOp names a soundscape action
type CueOp string

const (
	OpRate    CueOp = "rate"
	OpStop    CueOp = "stop"
	OpFade    CueOp = "fade"
	OpTrigger CueOp = "trigger"
)

// Cue binds a keyword to soundscape actions, run after a beat whose passages contain it
type Cue struct {
	Keyword string      `yaml:"keyword"`
	Actions []CueAction `yaml:"actions"`
}

// CueAction is one soundscape call
//
//	rate:    Interval is the new base period of a periodic layer
//	stop:    Over is the fade before the layer stops
//	fade:    Level is reached over Over
//	trigger: one shot per entry of Offsets, measured from the match
type CueAction struct {
	Op       CueOp    `yaml:"op"`
	Layer    string   `yaml:"layer"`
	Interval Millis   `yaml:"interval,omitempty"`
	Level    float64  `yaml:"level,omitempty"`
	Over     Millis   `yaml:"over,omitempty"`
	Offsets  []Millis `yaml:"offsets,omitempty"`
}
