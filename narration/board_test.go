package narration

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/lixenwraith/ambience/story"
)

// waitFor polls cond for up to a second of real time
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("Condition not reached")
		}
		time.Sleep(time.Millisecond)
	}
}

// TestRevealTyped verifies characters appear at the reveal rate
func TestRevealTyped(t *testing.T) {
	mock := clock.NewMock()
	b := NewBoard(mock)

	done := make(chan error, 1)
	go func() { done <- b.Reveal(context.Background(), "héllo", StyleWhisper, 10*time.Millisecond) }()

	waitFor(t, func() bool { return len(b.Snapshot().Lines) == 1 })
	time.Sleep(10 * time.Millisecond)

	mock.Add(20 * time.Millisecond)
	if got := b.Snapshot().Lines[0].Text; got != "hé" {
		t.Errorf("Expected 'hé' after two characters, got %q", got)
	}

	mock.Add(30 * time.Millisecond)
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Reveal: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Expected reveal to finish")
	}

	l := b.Snapshot().Lines[0]
	if l.Text != "héllo" || !l.Revealed || l.Style != StyleWhisper {
		t.Errorf("Unexpected line %+v", l)
	}
}

// TestRevealCancelled verifies cancellation completes the line and reports the context error
func TestRevealCancelled(t *testing.T) {
	b := NewBoard(clock.NewMock())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := b.Reveal(ctx, "text", StylePlain, time.Second); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if l := b.Snapshot().Lines[0]; !l.Revealed {
		t.Error("Expected line completed on cancel")
	}
}

// TestRevealDimsOlder verifies only the most recent lines stay bright
func TestRevealDimsOlder(t *testing.T) {
	b := NewBoard(clock.NewMock())
	for i := 0; i < 8; i++ {
		b.Reveal(context.Background(), fmt.Sprintf("line %d", i), StylePlain, 0)
	}

	lines := b.Snapshot().Lines
	for i, l := range lines {
		want := i < 2
		if l.Dim != want {
			t.Errorf("Line %d: expected dim=%v", i, want)
		}
	}
}

// TestChooseFirstSelectionWins verifies later input is ignored
func TestChooseFirstSelectionWins(t *testing.T) {
	b := NewBoard(clock.NewMock())
	choices := []story.Choice{{Text: "A", Next: "branchA"}, {Text: "B", Next: "branchB"}}

	if b.Select(0) {
		t.Error("Expected selection rejected with nothing presented")
	}

	result := make(chan string, 1)
	go func() {
		next, _ := b.Choose(context.Background(), choices)
		result <- next
	}()
	waitFor(t, func() bool { return len(b.Snapshot().Choices) == 2 })

	if b.Select(5) {
		t.Error("Expected out-of-range selection rejected")
	}
	if !b.Select(1) {
		t.Fatal("Expected first selection accepted")
	}
	if b.Select(0) {
		t.Error("Expected second selection ignored")
	}

	if next := <-result; next != "branchB" {
		t.Errorf("Expected branchB, got %q", next)
	}

	views := b.Snapshot().Choices
	if !views[1].Chosen || !views[0].Faded || views[0].Key != 1 {
		t.Errorf("Unexpected choice views %+v", views)
	}

	b.ClearChoices()
	if len(b.Snapshot().Choices) != 0 {
		t.Error("Expected choices cleared")
	}
	if b.Select(0) {
		t.Error("Expected selection ignored after resolution")
	}
}

// TestChooseCancelled verifies a pending choice ends with the context
func TestChooseCancelled(t *testing.T) {
	b := NewBoard(clock.NewMock())
	ctx, cancel := context.WithCancel(context.Background())

	result := make(chan error, 1)
	go func() {
		_, err := b.Choose(ctx, []story.Choice{{Text: "A", Next: "a"}})
		result <- err
	}()
	waitFor(t, func() bool { return len(b.Snapshot().Choices) == 1 })

	cancel()
	if err := <-result; !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if b.Select(0) {
		t.Error("Expected selection rejected after cancel")
	}
}

// TestFadeTextAndRestart verifies ending opacity and the restart control
func TestFadeTextAndRestart(t *testing.T) {
	mock := clock.NewMock()
	b := NewBoard(mock)
	b.Reveal(context.Background(), "Title", StyleTitle, 0)

	b.FadeText(0, 2*time.Second)
	mock.Add(time.Second)
	if got := b.Snapshot().Opacity; got != 0.5 {
		t.Errorf("Expected opacity 0.5, got %f", got)
	}

	b.ShowRestart()
	s := b.Snapshot()
	if !s.Restart || s.RestartLabel == "" || len(s.Lines) != 0 || s.Opacity != 1 {
		t.Errorf("Unexpected restart snapshot %+v", s)
	}
	if !b.RestartOffered() {
		t.Error("Expected restart offered")
	}

	b.Reset()
	if b.RestartOffered() || b.Snapshot().Label != "" {
		t.Error("Expected clean board after reset")
	}
}

// TestTakeRestart verifies the restart control is accepted once
func TestTakeRestart(t *testing.T) {
	b := NewBoard(clock.NewMock())
	if b.TakeRestart() {
		t.Error("Expected nothing to take before the ending")
	}

	b.ShowRestart()
	if !b.TakeRestart() {
		t.Fatal("Expected first take to succeed")
	}
	if b.TakeRestart() || b.RestartOffered() {
		t.Error("Expected restart withdrawn after the first take")
	}
}

// TestStyleOf verifies class mapping
func TestStyleOf(t *testing.T) {
	if StyleOf(story.ClassFeeling) != StyleFeeling || StyleOf(story.ClassWhisper) != StyleWhisper || StyleOf("") != StylePlain {
		t.Error("Unexpected style mapping")
	}
}
