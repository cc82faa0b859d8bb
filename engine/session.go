package engine

import (
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/ambience/core"
	"github.com/lixenwraith/ambience/story"
)

// State is the orchestrator's position in the experience
type State int

const (
	StateIdle State = iota
	StateSceneActive
	StateTransitioning
	StateEnding
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSceneActive:
		return "scene"
	case StateTransitioning:
		return "transitioning"
	case StateEnding:
		return "ending"
	default:
		return "unknown"
	}
}

// Session is the context of one run through the story, replaced on restart
type Session struct {
	ID      uuid.UUID
	Story   *story.Story
	Scene   int
	Mode    core.Mode
	Started time.Time
}

func newSession(s *story.Story, now time.Time) *Session {
	sess := &Session{
		ID:      uuid.New(),
		Story:   s,
		Started: now,
	}
	if len(s.Scenes) > 0 {
		sess.Mode = s.Scenes[0].Ambient
	}
	return sess
}

// tag is the short id prefixed to log lines
func (s *Session) tag() string {
	return s.ID.String()[:8]
}

// scene returns the active scene
func (s *Session) scene() *story.Scene {
	return &s.Story.Scenes[s.Scene]
}
