// Package frontend holds what the terminal and window front-ends share: key handling and text layout
package frontend

import (
	"log"

	"github.com/lixenwraith/ambience/narration"
)

// Restarter replays the story from its first scene
type Restarter interface {
	Restart()
}

// AudioControl is the player-facing side of the audio engine
type AudioControl interface {
	Nudge() bool
	ToggleMute() bool
}

// Controls maps player keys onto the board, the orchestrator and the audio engine
type Controls struct {
	board   *narration.Board
	session Restarter
	audio   AudioControl
}

// NewControls wires key handling; audio may be nil when sound is disabled
func NewControls(board *narration.Board, session Restarter, audio AudioControl) *Controls {
	return &Controls{
		board:   board,
		session: session,
		audio:   audio,
	}
}

// Press handles one key; it returns false when the player asked to quit
// '\n' stands for enter and 'q' for escape
func (c *Controls) Press(r rune) bool {
	// Audio may only start after an interaction on some hosts
	if c.audio != nil {
		c.audio.Nudge()
	}

	switch {
	case r == 'q':
		return false

	case r >= '1' && r <= '9':
		c.board.Select(int(r - '1'))

	case r == 'm':
		if c.audio != nil {
			muted := c.audio.ToggleMute()
			log.Printf("AUDIO: muted=%v", muted)
		}

	case r == 'r' || r == '\n':
		if c.board.TakeRestart() {
			c.session.Restart()
		}
	}
	return true
}
