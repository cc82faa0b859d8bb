package engine

import (
	"testing"
	"time"

	"github.com/lixenwraith/ambience/story"
)

const twoWays = `
title: Forks
scenes:
  - label: one
    ambient: lake
    beats:
      - passages: [{text: pick one}]
        choices:
          - {text: A, next: branchA}
          - {text: B, next: branchB}
    branches:
      branchA:
        beats:
          - passages: [{text: inside A}]
            then: ending
      branchB:
        beats:
          - passages: [{text: inside B}]
            then: ending
`

// TestChoiceFollowsSelectedBranch verifies the chosen branch runs and the other never does
func TestChoiceFollowsSelectedBranch(t *testing.T) {
	h := newHarness(mustParse(t, twoWays), "branchB")
	stop := h.run(t)
	defer stop()

	h.waitEnded(t)

	if h.rec.index("text.reveal:inside B") < 0 {
		t.Errorf("Expected branchB to be revealed, calls: %v", h.rec.list())
	}
	if h.rec.index("text.reveal:inside A") >= 0 {
		t.Error("Expected branchA never to run")
	}
	if n := h.rec.count("text.choose:2"); n != 1 {
		t.Errorf("Expected one choice prompt with 2 options, got %d", n)
	}
	if h.rec.index("text.clearchoices") < h.rec.index("text.choose:2") {
		t.Error("Expected choices cleared after the selection")
	}
	if h.orch.State() != StateEnding {
		t.Errorf("Expected state ending, got %v", h.orch.State())
	}
}

// TestDefaultStoryPlaythrough verifies scene order, cue dispatch and the ending for one path through the default story
func TestDefaultStoryPlaythrough(t *testing.T) {
	h := newHarness(story.Default(), "boat", "thanks", "count", "look")
	stop := h.run(t)
	defer stop()

	h.waitEnded(t)

	lake := h.rec.index("audio.start:lake")
	bedroom := h.rec.index("audio.start:bedroom")
	morning := h.rec.index("audio.start:morning")
	if lake < 0 || bedroom < lake || morning < bedroom {
		t.Fatalf("Expected scenes started in order, got %d %d %d", lake, bedroom, morning)
	}

	retire := h.rec.index("audio.retire")
	if retire < lake || retire > bedroom {
		t.Errorf("Expected lake retired before bedroom starts, retire at %d", retire)
	}
	if h.rec.index("bg.transition:bedroom") < 0 || h.rec.index("bg.transition:morning") < 0 {
		t.Error("Expected palette transitions into bedroom and morning")
	}
	if h.rec.index("bg.particles:bedroom") < 0 {
		t.Error("Expected particles regenerated for bedroom")
	}
	if h.rec.index("text.label:the morning") < 0 {
		t.Error("Expected morning label")
	}

	cues := []struct {
		call  string
		count int
	}{
		{"audio.rate:clicking:400ms", 1},
		{"audio.stop:clicking", 1},
		{"audio.fade:crickets:0.12", 1},
		{"audio.trigger:boneTicker", 3},
		{"audio.fade:hum:0.15", 1},
		{"audio.fade:gravel:0.35", 1},
	}
	for _, c := range cues {
		if n := h.rec.count(c.call); n != c.count {
			t.Errorf("Expected %s x%d, got %d", c.call, c.count, n)
		}
	}

	title := h.rec.index("text.reveal:Low Water")
	byline := h.rec.index("text.reveal:a short piece for sound and text")
	if title < morning || byline < title {
		t.Errorf("Expected title then byline after the last scene, got %d %d", title, byline)
	}
	if h.rec.index("text.ending:true") < 0 {
		t.Error("Expected ending layout")
	}

	sess, ok := h.orch.Session()
	if !ok {
		t.Fatal("Expected a session")
	}
	if sess.Scene != 2 {
		t.Errorf("Expected final scene index 2, got %d", sess.Scene)
	}
	if h.orch.State() != StateEnding {
		t.Errorf("Expected state ending, got %v", h.orch.State())
	}
}

// TestMissingBranchStalls verifies a choice into a missing branch waits for restart
func TestMissingBranchStalls(t *testing.T) {
	st := mustParse(t, `
scenes:
  - label: one
    ambient: bedroom
    beats:
      - passages: [{text: pick}]
        choices:
          - {text: Go, next: nowhere}
`)
	h := newHarness(st, "nowhere")
	stop := h.run(t)
	defer stop()

	eventually(t, "choices cleared", func() bool { return h.rec.count("text.clearchoices") == 1 })
	time.Sleep(20 * time.Millisecond)

	if h.rec.has("text.restart") {
		t.Error("Expected no ending after a missing branch")
	}
	if h.orch.State() != StateSceneActive {
		t.Errorf("Expected scene state while stalled, got %v", h.orch.State())
	}

	before, _ := h.orch.Session()
	h.orch.Restart()

	eventually(t, "second session", func() bool { return h.rec.count("text.reset") == 2 })
	eventually(t, "second prompt", func() bool { return h.rec.count("text.choose:1") == 2 })

	after, _ := h.orch.Session()
	if after.ID == before.ID {
		t.Error("Expected restart to open a new session")
	}
	if after.Scene != 0 {
		t.Errorf("Expected restart at scene 0, got %d", after.Scene)
	}
}

// TestExhaustedBeatsStall verifies a beat list without an advancement rule stops in place
func TestExhaustedBeatsStall(t *testing.T) {
	st := mustParse(t, `
scenes:
  - label: one
    ambient: lake
    beats:
      - passages: [{text: first}]
      - passages: [{text: second}]
  - label: two
    ambient: morning
    beats:
      - passages: [{text: never}]
`)
	h := newHarness(st)
	stop := h.run(t)
	defer stop()

	eventually(t, "second passage", func() bool { return h.rec.index("text.reveal:second") >= 0 })
	time.Sleep(20 * time.Millisecond)

	if h.rec.has("audio.start:morning") || h.rec.has("text.reveal:never") {
		t.Error("Expected no advance past an exhausted beat list")
	}
	if h.orch.State() != StateSceneActive {
		t.Errorf("Expected scene state, got %v", h.orch.State())
	}
}

// TestGotoMissingBranchStalls verifies a goto into a missing branch stops in place
func TestGotoMissingBranchStalls(t *testing.T) {
	st := mustParse(t, `
scenes:
  - label: one
    ambient: lake
    beats:
      - passages: [{text: first}]
        then: elsewhere
`)
	h := newHarness(st)
	stop := h.run(t)
	defer stop()

	eventually(t, "first passage", func() bool { return h.rec.index("text.reveal:first") >= 0 })
	time.Sleep(20 * time.Millisecond)

	if h.rec.has("text.restart") || h.rec.has("audio.retire") {
		t.Error("Expected the scene to stay active")
	}
}

// TestAdvancePastLastSceneEnds verifies next_scene on the final scene runs the ending
func TestAdvancePastLastSceneEnds(t *testing.T) {
	st := mustParse(t, `
title: Solo
scenes:
  - label: only
    ambient: morning
    beats:
      - passages: [{text: done}]
        then: next_scene
`)
	h := newHarness(st)
	stop := h.run(t)
	defer stop()

	h.waitEnded(t)

	if h.rec.index("text.reveal:Solo") < 0 {
		t.Error("Expected the title in the ending")
	}
	if h.orch.State() != StateEnding {
		t.Errorf("Expected state ending, got %v", h.orch.State())
	}
}

// TestRestartAfterEnding verifies restart replays from the first scene with a story swapped in meanwhile
func TestRestartAfterEnding(t *testing.T) {
	h := newHarness(mustParse(t, twoWays), "branchA")
	stop := h.run(t)
	defer stop()

	h.waitEnded(t)

	h.orch.SetStory(mustParse(t, `
title: Second
scenes:
  - label: again
    ambient: bedroom
    beats:
      - passages: [{text: replayed}]
        then: ending
`))
	h.orch.Restart()
	h.waitEnded(t)

	calls := h.rec.list()
	hard := -1
	for i, c := range calls {
		if c == "audio.hardstop" && i > h.rec.index("text.restart") {
			hard = i
			break
		}
	}
	if hard < 0 {
		t.Fatal("Expected a hard stop after restart")
	}
	if h.rec.index("text.reveal:replayed") < hard {
		t.Error("Expected the new story to play after restart")
	}
	if h.rec.index("text.label:again") < 0 {
		t.Error("Expected the new first scene label")
	}
	if h.rec.index("bg.reset:bedroom") < 0 {
		t.Error("Expected the background reset to the new first scene")
	}
}

// TestStateString verifies state names
func TestStateString(t *testing.T) {
	cases := map[State]string{
		StateIdle:          "idle",
		StateSceneActive:   "scene",
		StateTransitioning: "transitioning",
		StateEnding:        "ending",
		State(99):          "unknown",
	}
	for s, want := range cases {
		if got := s.String(); got != want {
			t.Errorf("Expected %q, got %q", want, got)
		}
	}
}
