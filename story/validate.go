package story

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidStory wraps every structural problem found by Validate
var ErrInvalidStory = errors.New("invalid story")

// Gap is a reference to a branch the scene does not define
// It is not rejected: at runtime the narrative stops advancing at that point
type Gap struct {
	Scene  string
	Branch string
	From   string
}

func (g Gap) String() string {
	return fmt.Sprintf("scene %q: %s references missing branch %q", g.Scene, g.From, g.Branch)
}

// Validate checks structure and returns the unresolved branch references
func (s *Story) Validate() ([]Gap, error) {
	var (
		problems []error
		gaps     []Gap
	)
	fail := func(format string, args ...any) {
		problems = append(problems, fmt.Errorf(format, args...))
	}

	if len(s.Scenes) == 0 {
		fail("no scenes")
	}

	for i := range s.Scenes {
		sc := &s.Scenes[i]
		name := sc.Label
		if name == "" {
			name = fmt.Sprintf("#%d", i)
		}
		if !sc.Ambient.Valid() {
			fail("scene %q: unknown ambient %q", name, sc.Ambient)
		}
		if len(sc.Beats) == 0 {
			fail("scene %q: no beats", name)
		}

		check := func(where string, beats []Beat) {
			for j, b := range beats {
				at := fmt.Sprintf("%s beat %d", where, j)
				if len(b.Passages) == 0 && len(b.Choices) == 0 {
					fail("scene %q: %s is empty", name, at)
				}
				if len(b.Choices) > 0 && !b.Then.IsZero() {
					fail("scene %q: %s has both choices and then %q", name, at, b.Then)
				}
				if b.Delay < 0 {
					fail("scene %q: %s has negative delay", name, at)
				}
				for k, c := range b.Choices {
					if c.Next == "" {
						fail("scene %q: %s choice %d has no target", name, at, k)
						continue
					}
					if _, ok := sc.Branches[c.Next]; !ok {
						gaps = append(gaps, Gap{Scene: name, Branch: c.Next, From: fmt.Sprintf("%s choice %d", at, k)})
					}
				}
				if b.Then.Kind == ActionGotoBranch {
					if _, ok := sc.Branches[b.Then.Branch]; !ok {
						gaps = append(gaps, Gap{Scene: name, Branch: b.Then.Branch, From: at})
					}
				}
			}
		}

		check("main", sc.Beats)
		for _, bn := range sortedBranches(sc.Branches) {
			check("branch "+bn, sc.Branches[bn].Beats)
		}

		for j, cue := range sc.Cues {
			if cue.Keyword == "" {
				fail("scene %q: cue %d has no keyword", name, j)
			}
			for k, a := range cue.Actions {
				if err := a.validate(); err != nil {
					fail("scene %q: cue %q action %d: %v", name, cue.Keyword, k, err)
				}
			}
		}
	}

	if len(problems) > 0 {
		return gaps, fmt.Errorf("%w: %w", ErrInvalidStory, errors.Join(problems...))
	}
	return gaps, nil
}

func (a CueAction) validate() error {
	if a.Layer == "" {
		return errors.New("no layer")
	}
	switch a.Op {
	case OpRate:
		if a.Interval <= 0 {
			return errors.New("rate needs a positive interval")
		}
	case OpStop:
	case OpFade:
		if a.Level < 0 || a.Level > 1 {
			return fmt.Errorf("level %v outside 0-1", a.Level)
		}
	case OpTrigger:
		for _, off := range a.Offsets {
			if off < 0 {
				return errors.New("negative trigger offset")
			}
		}
	default:
		return fmt.Errorf("unknown op %q", a.Op)
	}
	if a.Over < 0 {
		return errors.New("negative fade")
	}
	return nil
}

func sortedBranches(m map[string]Branch) []string {
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
