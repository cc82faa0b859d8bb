package engine

import (
	"testing"
	"time"

	"github.com/lixenwraith/ambience/story"
)

// TestTriggerOffsetsFollowClock verifies delayed triggers fire on the clock and are dropped after a restart
func TestTriggerOffsetsFollowClock(t *testing.T) {
	st := story.Default()
	h := newHarness(st)
	h.orch.config.Pace = 1

	sess := newSession(st, h.clock.Now())
	sess.Scene = 1
	h.orch.session = sess

	beat := st.Scenes[1].Beats[1]
	h.orch.runCues(sess, sess.scene(), beat)

	if n := h.rec.count("audio.trigger:boneTicker"); n != 1 {
		t.Fatalf("Expected one immediate trigger, got %d", n)
	}

	time.Sleep(10 * time.Millisecond)
	h.clock.Add(300 * time.Millisecond)
	eventually(t, "second trigger", func() bool { return h.rec.count("audio.trigger:boneTicker") == 2 })

	h.orch.mu.Lock()
	h.orch.session = newSession(st, h.clock.Now())
	h.orch.mu.Unlock()

	h.clock.Add(400 * time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	if n := h.rec.count("audio.trigger:boneTicker"); n != 2 {
		t.Errorf("Expected the stale trigger dropped, got %d triggers", n)
	}
}

// TestCueKeywordMatching verifies cues fire only on a case-sensitive keyword match
func TestCueKeywordMatching(t *testing.T) {
	st := story.Default()
	h := newHarness(st)
	sess := newSession(st, h.clock.Now())
	h.orch.session = sess
	lake := &st.Scenes[0]

	quiet := story.Beat{Passages: []story.Passage{{Text: "The knocking comes FASTER now"}}}
	h.orch.runCues(sess, lake, quiet)
	if h.rec.has("audio.rate") {
		t.Error("Expected no cue on a different case")
	}

	loud := story.Beat{Passages: []story.Passage{
		{Text: "nothing here"},
		{Text: "then faster, and the water sighs"},
	}}
	h.orch.runCues(sess, lake, loud)

	if n := h.rec.count("audio.rate:clicking:400ms"); n != 1 {
		t.Errorf("Expected rate cue once, got %d", n)
	}
	if n := h.rec.count("audio.stop:clicking"); n != 1 {
		t.Errorf("Expected stop cue once, got %d", n)
	}
	if h.rec.index("audio.fade:crickets:0.12") < 0 {
		t.Error("Expected crickets fade")
	}
}

// TestDelayOr verifies beat delays fall back when unset
func TestDelayOr(t *testing.T) {
	if got := delayOr(0, time.Second); got != time.Second {
		t.Errorf("Expected fallback, got %v", got)
	}
	if got := delayOr(250, time.Second); got != 250*time.Millisecond {
		t.Errorf("Expected 250ms, got %v", got)
	}
}
