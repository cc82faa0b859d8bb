package engine

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/lixenwraith/ambience/constant"
	"github.com/lixenwraith/ambience/core"
	"github.com/lixenwraith/ambience/narration"
	"github.com/lixenwraith/ambience/story"
)

// ErrRestart is the cancellation cause of a session ended by Restart
var ErrRestart = errors.New("session restarted")

// Orchestrator drives the story beat by beat, keeping audio, background and text in step
// Only the session goroutine started by Run mutates narrative state
type Orchestrator struct {
	config *Config
	clock  clock.Clock
	audio  Soundscape
	bg     Backdrop
	text   Narrator

	mu      sync.Mutex
	story   *story.Story
	session *Session
	state   State
	cancel  context.CancelCauseFunc

	restart chan struct{}
}

// New creates an orchestrator for st; nothing runs until Run
func New(cfg *Config, clk clock.Clock, st *story.Story, audio Soundscape, bg Backdrop, text Narrator) *Orchestrator {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Orchestrator{
		config:  cfg,
		clock:   clk,
		audio:   audio,
		bg:      bg,
		text:    text,
		story:   st,
		restart: make(chan struct{}, 1),
	}
}

// Run plays sessions until ctx ends; after the ending it waits for Restart
func (o *Orchestrator) Run(ctx context.Context) error {
	first := true
	for {
		// A restart requested between sessions is already satisfied
		select {
		case <-o.restart:
		default:
		}

		sctx, cancel := context.WithCancelCause(ctx)
		o.mu.Lock()
		o.cancel = cancel
		o.mu.Unlock()

		err := o.runSession(sctx, first)
		cause := context.Cause(sctx)
		cancel(nil)
		first = false

		if ctx.Err() != nil {
			o.setState(StateIdle)
			return ctx.Err()
		}
		if err != nil && !errors.Is(cause, ErrRestart) {
			log.Printf("SCENE: session ended: %v", err)
		}

		select {
		case <-o.restart:
		case <-ctx.Done():
			o.setState(StateIdle)
			return ctx.Err()
		}
	}
}

// Restart cuts all audio immediately and replays the story from its first scene
func (o *Orchestrator) Restart() {
	o.audio.HardStop()

	o.mu.Lock()
	cancel := o.cancel
	o.mu.Unlock()

	select {
	case o.restart <- struct{}{}:
	default:
	}
	if cancel != nil {
		cancel(ErrRestart)
	}
	log.Printf("SCENE: restart requested")
}

// SetStory replaces the story used from the next session on
func (o *Orchestrator) SetStory(st *story.Story) {
	o.mu.Lock()
	o.story = st
	o.mu.Unlock()
}

// State returns the current position in the experience
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Session returns a copy of the running session
func (o *Orchestrator) Session() (Session, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.session == nil {
		return Session{}, false
	}
	return *o.session, true
}

func (o *Orchestrator) setState(s State) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
}

func (o *Orchestrator) current() *Session {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.session
}

// paced scales a narrative duration by the configured pace
func (o *Orchestrator) paced(d time.Duration) time.Duration {
	return time.Duration(float64(d) * o.config.Pace)
}

func (o *Orchestrator) wait(ctx context.Context, d time.Duration) error {
	return core.Sleep(ctx, o.clock, o.paced(d))
}

// runSession resets every collaborator to the first scene and plays until the ending
func (o *Orchestrator) runSession(ctx context.Context, first bool) error {
	o.mu.Lock()
	sess := newSession(o.story, o.clock.Now())
	o.session = sess
	o.state = StateIdle
	o.mu.Unlock()

	if !first {
		o.bg.FadeVeil(1, o.paced(constant.RestartOverlay))
		if err := o.wait(ctx, constant.RestartOverlay); err != nil {
			return err
		}
	}

	o.audio.HardStop()
	o.text.Reset()

	sc := sess.scene()
	o.text.SetLabel(sc.Label)
	o.bg.Reset(sc.Ambient)
	if !first {
		o.bg.FadeVeil(1, 0)
		o.bg.FadeVeil(0, o.paced(constant.VeilLift))
	}
	o.audio.StartScene(sc.Ambient)
	o.setState(StateSceneActive)
	log.Printf("SCENE: [%s] session started in %q", sess.tag(), sc.Label)

	if err := o.wait(ctx, constant.FirstScenePause); err != nil {
		return err
	}
	return o.drive(ctx, sess)
}

type outcomeKind int

const (
	outBranch outcomeKind = iota
	outAdvance
	outEnding
	outStall
)

// outcome is where a beat list hands control next
type outcome struct {
	kind   outcomeKind
	beats  []story.Beat
	reason string
}

// drive runs beat lists in sequence, following branches and scene changes
func (o *Orchestrator) drive(ctx context.Context, sess *Session) error {
	beats := sess.scene().Beats
	for {
		out, err := o.playBeats(ctx, sess, beats)
		if err != nil {
			return err
		}

		switch out.kind {
		case outBranch:
			beats = out.beats

		case outAdvance:
			if sess.Scene+1 >= len(sess.Story.Scenes) {
				log.Printf("SCENE: [%s] no scene after %q, ending", sess.tag(), sess.scene().Label)
				return o.ending(ctx, sess)
			}
			if err := o.advance(ctx, sess); err != nil {
				return err
			}
			beats = sess.scene().Beats

		case outEnding:
			return o.ending(ctx, sess)

		case outStall:
			log.Printf("SCENE: [%s] stalled in %q: %s", sess.tag(), sess.scene().Label, out.reason)
			<-ctx.Done()
			return context.Cause(ctx)
		}
	}
}

// playBeats reveals each beat in turn and resolves its advancement rule
func (o *Orchestrator) playBeats(ctx context.Context, sess *Session, beats []story.Beat) (outcome, error) {
	sc := sess.scene()

	for _, beat := range beats {
		for _, p := range beat.Passages {
			if err := o.text.Reveal(ctx, p.Text, narration.StyleOf(p.Class), o.paced(constant.PassageCharDelay)); err != nil {
				return outcome{}, err
			}
			if err := o.wait(ctx, constant.PassagePause); err != nil {
				return outcome{}, err
			}
		}

		o.runCues(sess, sc, beat)

		if len(beat.Choices) > 0 {
			next, err := o.text.Choose(ctx, beat.Choices)
			if err != nil {
				return outcome{}, err
			}
			log.Printf("SCENE: [%s] chose %q", sess.tag(), next)
			if err := o.wait(ctx, constant.ChoiceSettle); err != nil {
				return outcome{}, err
			}
			o.text.ClearChoices()

			branch, ok := sc.Branch(next)
			if !ok {
				return outcome{kind: outStall, reason: "choice leads to missing branch " + next}, nil
			}
			return outcome{kind: outBranch, beats: branch}, nil
		}

		switch beat.Then.Kind {
		case story.ActionAdvanceScene:
			if err := o.wait(ctx, delayOr(beat.Delay, constant.DefaultAdvanceDelay)); err != nil {
				return outcome{}, err
			}
			return outcome{kind: outAdvance}, nil

		case story.ActionEndExperience:
			if err := o.wait(ctx, delayOr(beat.Delay, constant.DefaultAdvanceDelay)); err != nil {
				return outcome{}, err
			}
			return outcome{kind: outEnding}, nil

		case story.ActionGotoBranch:
			branch, ok := sc.Branch(beat.Then.Branch)
			if !ok {
				return outcome{kind: outStall, reason: "missing branch " + beat.Then.Branch}, nil
			}
			if err := o.wait(ctx, delayOr(beat.Delay, constant.DefaultGotoDelay)); err != nil {
				return outcome{}, err
			}
			return outcome{kind: outBranch, beats: branch}, nil
		}

		if err := o.wait(ctx, beat.Delay.Duration()); err != nil {
			return outcome{}, err
		}
	}

	return outcome{kind: outStall, reason: "beat list exhausted"}, nil
}

func delayOr(d story.Millis, fallback time.Duration) time.Duration {
	if d > 0 {
		return d.Duration()
	}
	return fallback
}

// advance tears down the current scene under the veil and starts the next one
func (o *Orchestrator) advance(ctx context.Context, sess *Session) error {
	o.setState(StateTransitioning)
	log.Printf("SCENE: [%s] leaving %q", sess.tag(), sess.scene().Label)

	o.bg.FadeVeil(1, o.paced(constant.OverlayIn))
	o.audio.RetireAll(constant.LayerRetireFade)
	if err := o.wait(ctx, constant.OverlayIn); err != nil {
		return err
	}

	o.mu.Lock()
	sess.Scene++
	sc := sess.scene()
	sess.Mode = sc.Ambient
	o.mu.Unlock()

	o.text.Clear()
	o.bg.StartTransition(sc.Ambient, o.paced(constant.PaletteTransition))
	o.bg.RegenerateParticles(sc.Ambient)
	o.text.SetLabel(sc.Label)
	o.audio.StartScene(sc.Ambient)
	o.bg.FadeVeil(0, o.paced(constant.VeilLift))

	o.setState(StateSceneActive)
	log.Printf("SCENE: [%s] entered %q (%s)", sess.tag(), sc.Label, sc.Ambient)
	return o.wait(ctx, constant.SceneSettle)
}

// ending tears down the last scene and plays the credits, then offers a restart
func (o *Orchestrator) ending(ctx context.Context, sess *Session) error {
	o.setState(StateEnding)
	log.Printf("SCENE: [%s] ending", sess.tag())

	o.bg.FadeVeil(1, o.paced(constant.OverlayIn))
	o.audio.RetireAll(constant.LayerRetireFade)
	if err := o.wait(ctx, constant.EndingOverlay); err != nil {
		return err
	}

	st := sess.Story
	o.text.Clear()
	o.text.SetLabel("")
	o.text.SetEnding(true)
	o.bg.StartTransition(st.Scenes[len(st.Scenes)-1].Ambient, 0)
	o.bg.FadeVeil(0, o.paced(constant.VeilLift))
	if err := o.wait(ctx, constant.EndingPause); err != nil {
		return err
	}

	credits := []struct {
		text      string
		style     narration.Style
		charDelay time.Duration
		pause     time.Duration
	}{
		{st.Title, narration.StyleTitle, constant.TitleCharDelay, constant.EndingTitlePause},
		{st.Byline, narration.StyleCredit, constant.BylineCharDelay, constant.EndingBylinePause},
		{st.Tagline, narration.StyleCredit, constant.TaglineCharDelay, constant.EndingHold},
	}
	for _, c := range credits {
		if c.text == "" {
			continue
		}
		if err := o.text.Reveal(ctx, c.text, c.style, o.paced(c.charDelay)); err != nil {
			return err
		}
		if err := o.wait(ctx, c.pause); err != nil {
			return err
		}
	}

	o.text.FadeText(0, o.paced(constant.EndingFade))
	o.bg.FadeVeil(1, o.paced(constant.EndingFade))
	if err := o.wait(ctx, constant.EndingFade+constant.EndingFadeSettle); err != nil {
		return err
	}

	o.text.ShowRestart()
	log.Printf("SCENE: [%s] ending reached after %v", sess.tag(), o.clock.Since(sess.Started).Round(time.Second))
	return nil
}
