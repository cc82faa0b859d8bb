package engine

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/lixenwraith/ambience/core"
	"github.com/lixenwraith/ambience/narration"
	"github.com/lixenwraith/ambience/story"
)

// recorder keeps the ordered calls made on every fake collaborator
type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) add(format string, args ...any) {
	r.mu.Lock()
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
	r.mu.Unlock()
}

func (r *recorder) list() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func (r *recorder) index(call string) int {
	for i, c := range r.list() {
		if c == call {
			return i
		}
	}
	return -1
}

func (r *recorder) count(call string) int {
	n := 0
	for _, c := range r.list() {
		if c == call {
			n++
		}
	}
	return n
}

func (r *recorder) has(prefix string) bool {
	for _, c := range r.list() {
		if strings.HasPrefix(c, prefix) {
			return true
		}
	}
	return false
}

type fakeAudio struct{ rec *recorder }

func (a *fakeAudio) StartScene(mode core.Mode)    { a.rec.add("audio.start:%s", mode) }
func (a *fakeAudio) RetireAll(fade time.Duration) { a.rec.add("audio.retire") }
func (a *fakeAudio) HardStop()                    { a.rec.add("audio.hardstop") }

func (a *fakeAudio) TriggerCue(layer string) bool {
	a.rec.add("audio.trigger:%s", layer)
	return true
}

func (a *fakeAudio) SetLayerRate(layer string, interval time.Duration) bool {
	a.rec.add("audio.rate:%s:%v", layer, interval)
	return true
}

func (a *fakeAudio) FadeLayer(layer string, level float64, over time.Duration) bool {
	a.rec.add("audio.fade:%s:%.2f", layer, level)
	return true
}

func (a *fakeAudio) StopLayer(layer string, fade time.Duration) bool {
	a.rec.add("audio.stop:%s", layer)
	return true
}

type fakeBackdrop struct{ rec *recorder }

func (b *fakeBackdrop) StartTransition(mode core.Mode, d time.Duration) {
	b.rec.add("bg.transition:%s", mode)
}
func (b *fakeBackdrop) RegenerateParticles(mode core.Mode)      { b.rec.add("bg.particles:%s", mode) }
func (b *fakeBackdrop) Reset(mode core.Mode)                    { b.rec.add("bg.reset:%s", mode) }
func (b *fakeBackdrop) FadeVeil(level float64, d time.Duration) { b.rec.add("bg.veil:%.0f", level) }

// fakeNarrator answers choices from a queue and blocks when it runs dry
type fakeNarrator struct {
	rec     *recorder
	answers chan string
	ended   chan struct{}
}

func (n *fakeNarrator) Reveal(ctx context.Context, text string, style narration.Style, charDelay time.Duration) error {
	n.rec.add("text.reveal:%s", text)
	return ctx.Err()
}

func (n *fakeNarrator) Choose(ctx context.Context, choices []story.Choice) (string, error) {
	n.rec.add("text.choose:%d", len(choices))
	select {
	case next := <-n.answers:
		return next, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (n *fakeNarrator) ClearChoices()                           { n.rec.add("text.clearchoices") }
func (n *fakeNarrator) Clear()                                  { n.rec.add("text.clear") }
func (n *fakeNarrator) SetLabel(label string)                   { n.rec.add("text.label:%s", label) }
func (n *fakeNarrator) SetEnding(ending bool)                   { n.rec.add("text.ending:%v", ending) }
func (n *fakeNarrator) FadeText(level float64, d time.Duration) { n.rec.add("text.fade:%.0f", level) }
func (n *fakeNarrator) Reset()                                  { n.rec.add("text.reset") }

func (n *fakeNarrator) ShowRestart() {
	n.rec.add("text.restart")
	select {
	case n.ended <- struct{}{}:
	default:
	}
}

type harness struct {
	orch  *Orchestrator
	rec   *recorder
	text  *fakeNarrator
	clock *clock.Mock
}

// newHarness builds an orchestrator with zero pacing so narrative waits return at once
func newHarness(st *story.Story, answers ...string) *harness {
	rec := &recorder{}
	text := &fakeNarrator{
		rec:     rec,
		answers: make(chan string, len(answers)),
		ended:   make(chan struct{}, 4),
	}
	for _, a := range answers {
		text.answers <- a
	}
	mock := clock.NewMock()
	o := New(&Config{Pace: 0}, mock, st, &fakeAudio{rec: rec}, &fakeBackdrop{rec: rec}, text)
	return &harness{orch: o, rec: rec, text: text, clock: mock}
}

// run starts the orchestrator and returns a stop func that waits for Run to return
func (h *harness) run(t *testing.T) func() {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- h.orch.Run(ctx) }()

	return func() {
		cancel()
		select {
		case err := <-errc:
			if err != context.Canceled {
				t.Errorf("Expected Run to return context.Canceled, got %v", err)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("Run did not return after cancel")
		}
	}
}

func (h *harness) waitEnded(t *testing.T) {
	t.Helper()
	select {
	case <-h.text.ended:
	case <-time.After(2 * time.Second):
		t.Fatalf("Ending not reached; calls: %v", h.rec.list())
	}
}

func eventually(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("Timed out waiting for %s", what)
}

func mustParse(t *testing.T, src string) *story.Story {
	t.Helper()
	st, err := story.Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return st
}
