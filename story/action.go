package story

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ActionKind tags the variant of a PostAction
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionAdvanceScene
	ActionEndExperience
	ActionGotoBranch
)

// Reserved `then` values
const (
	ThenNextScene = "next_scene"
	ThenEnding    = "ending"
)

// PostAction is what follows a choice-less beat; Branch is set only for ActionGotoBranch
type PostAction struct {
	Kind   ActionKind
	Branch string
}

// ParseAction maps a `then` value onto its variant; any other non-empty name is a branch
func ParseAction(s string) PostAction {
	switch s {
	case "":
		return PostAction{}
	case ThenNextScene:
		return PostAction{Kind: ActionAdvanceScene}
	case ThenEnding:
		return PostAction{Kind: ActionEndExperience}
	default:
		return PostAction{Kind: ActionGotoBranch, Branch: s}
	}
}

// GotoBranch builds a branch jump
func GotoBranch(name string) PostAction {
	return PostAction{Kind: ActionGotoBranch, Branch: name}
}

func (a PostAction) String() string {
	switch a.Kind {
	case ActionAdvanceScene:
		return ThenNextScene
	case ActionEndExperience:
		return ThenEnding
	case ActionGotoBranch:
		return a.Branch
	default:
		return ""
	}
}

// IsZero reports the absence of a post-action
func (a PostAction) IsZero() bool {
	return a.Kind == ActionNone
}

func (a *PostAction) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: then must be a name", node.Line)
	}
	*a = ParseAction(node.Value)
	return nil
}

func (a PostAction) MarshalYAML() (any, error) {
	return a.String(), nil
}
