package constant

import "time"

// Scene Timing
const (
	PassagePause        = 400 * time.Millisecond
	OverlayIn           = 2 * time.Second
	PaletteTransition   = 3 * time.Second
	SceneSettle         = 1500 * time.Millisecond
	FirstScenePause     = time.Second
	RestartOverlay      = 1500 * time.Millisecond
	DefaultAdvanceDelay = time.Second
	DefaultGotoDelay    = 500 * time.Millisecond
	ChoiceSettle        = 600 * time.Millisecond
	VeilLift            = 1500 * time.Millisecond
)

// Ending Sequence
const (
	EndingOverlay     = 3 * time.Second
	EndingPause       = time.Second
	EndingTitlePause  = 1500 * time.Millisecond
	EndingBylinePause = 2 * time.Second
	EndingHold        = 3 * time.Second
	EndingFade        = 3 * time.Second
	EndingFadeSettle  = 500 * time.Millisecond
)

// Reveal Rates (per character)
const (
	PassageCharDelay = 30 * time.Millisecond
	TitleCharDelay   = 80 * time.Millisecond
	BylineCharDelay  = 60 * time.Millisecond
	TaglineCharDelay = 40 * time.Millisecond
)

// Narration Board
const (
	// VisiblePassages is the number of recent passages drawn at full brightness
	VisiblePassages = 6

	// RestartLabel is shown once the ending sequence completes
	RestartLabel = "begin again"
)
