package models

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Screen is one of the adjudication tool's screens. The browser owns its
// current screen; the server only validates that a requested move is legal.
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenQueue
	ScreenReview
	ScreenDashboard
)

func (s Screen) String() string {
	switch s {
	case ScreenLogin:
		return "login"
	case ScreenQueue:
		return "queue"
	case ScreenReview:
		return "review"
	case ScreenDashboard:
		return "dashboard"
	default:
		return "unknown"
	}
}

func ScreenFromString(s string) (Screen, error) {
	switch s {
	case "login":
		return ScreenLogin, nil
	case "queue":
		return ScreenQueue, nil
	case "review":
		return ScreenReview, nil
	case "dashboard":
		return ScreenDashboard, nil
	}
	return 0, errors.Wrap(BadParameterError, fmt.Sprintf("unknown screen %q", s))
}

var screenTransitions = map[Screen][]Screen{
	ScreenLogin:     {ScreenQueue, ScreenDashboard},
	ScreenQueue:     {ScreenReview, ScreenLogin},
	ScreenReview:    {ScreenQueue, ScreenReview},
	ScreenDashboard: {ScreenLogin},
}

// CanTransition reports whether moving from s to target is legal.
// Review to review covers the auto-advance to the next incomplete query.
func (s Screen) CanTransition(target Screen) bool {
	for _, next := range screenTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}
