package study

import (
	"errors"
	"fmt"
)

// ErrUnknownAction is returned for action names outside the fixed set.
var ErrUnknownAction = errors.New("study: unknown action")

// Action names a session operation as it appears in URLs and forms.
type Action string

const (
	ActionFlip     Action = "flip"
	ActionNext     Action = "next"
	ActionPrevious Action = "previous"
	ActionShuffle  Action = "shuffle"
	ActionRestart  Action = "restart"
)

// ParseAction validates a raw action name.
func ParseAction(s string) (Action, error) {
	switch a := Action(s); a {
	case ActionFlip, ActionNext, ActionPrevious, ActionShuffle, ActionRestart:
		return a, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownAction, s)
	}
}

// Apply runs the operation named by a.
func (s *Session) Apply(a Action) error {
	switch a {
	case ActionFlip:
		s.Flip()
	case ActionNext:
		s.Next()
	case ActionPrevious:
		s.Previous()
	case ActionShuffle:
		s.Shuffle()
	case ActionRestart:
		s.Restart()
	default:
		return fmt.Errorf("%w %q", ErrUnknownAction, a)
	}
	return nil
}
