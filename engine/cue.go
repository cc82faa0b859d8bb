package engine

import (
	"log"
	"strings"

	"github.com/lixenwraith/ambience/story"
)

// runCues applies every cue of the scene whose keyword appears in the beat's passages
func (o *Orchestrator) runCues(sess *Session, sc *story.Scene, beat story.Beat) {
	for _, cue := range sc.Cues {
		if !mentions(beat, cue.Keyword) {
			continue
		}
		log.Printf("SCENE: [%s] cue %q", sess.tag(), cue.Keyword)
		for _, a := range cue.Actions {
			o.applyCue(sess, a)
		}
	}
}

func mentions(beat story.Beat, keyword string) bool {
	if keyword == "" {
		return false
	}
	for _, p := range beat.Passages {
		if strings.Contains(p.Text, keyword) {
			return true
		}
	}
	return false
}

// applyCue issues one soundscape call; delayed triggers are dropped once the session is replaced
func (o *Orchestrator) applyCue(sess *Session, a story.CueAction) {
	switch a.Op {
	case story.OpRate:
		o.audio.SetLayerRate(a.Layer, a.Interval.Duration())

	case story.OpStop:
		o.audio.StopLayer(a.Layer, a.Over.Duration())

	case story.OpFade:
		o.audio.FadeLayer(a.Layer, a.Level, a.Over.Duration())

	case story.OpTrigger:
		offsets := a.Offsets
		if len(offsets) == 0 {
			offsets = []story.Millis{0}
		}
		layer := a.Layer
		for _, off := range offsets {
			d := o.paced(off.Duration())
			if d <= 0 {
				o.audio.TriggerCue(layer)
				continue
			}
			o.clock.AfterFunc(d, func() {
				if o.current() == sess {
					o.audio.TriggerCue(layer)
				}
			})
		}

	default:
		log.Printf("SCENE: [%s] unknown cue op %q", sess.tag(), a.Op)
	}
}
