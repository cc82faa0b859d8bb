package engine

import (
	"context"
	"time"

	"github.com/lixenwraith/ambience/core"
	"github.com/lixenwraith/ambience/narration"
	"github.com/lixenwraith/ambience/story"
)

// Soundscape is the audio side of a scene; every call is fire-and-forget
type Soundscape interface {
	StartScene(mode core.Mode)
	RetireAll(fade time.Duration)
	HardStop()
	TriggerCue(layer string) bool
	SetLayerRate(layer string, interval time.Duration) bool
	FadeLayer(layer string, level float64, over time.Duration) bool
	StopLayer(layer string, fade time.Duration) bool
}

// Backdrop is the animated background
type Backdrop interface {
	StartTransition(mode core.Mode, d time.Duration)
	RegenerateParticles(mode core.Mode)
	Reset(mode core.Mode)
	FadeVeil(level float64, d time.Duration)
}

// Narrator reveals text and collects choices; Reveal and Choose are the narrative's suspension points
type Narrator interface {
	Reveal(ctx context.Context, text string, style narration.Style, charDelay time.Duration) error
	Choose(ctx context.Context, choices []story.Choice) (string, error)
	ClearChoices()
	Clear()
	SetLabel(label string)
	SetEnding(ending bool)
	FadeText(level float64, d time.Duration)
	ShowRestart()
	Reset()
}
