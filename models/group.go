package models

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Group is one of the three review cohorts. Each group owns a third of the
// query corpus and is rated by a fixed pair of evaluators.
type Group int

const (
	GroupA Group = iota
	GroupB
	GroupC
)

var AllGroups = []Group{GroupA, GroupB, GroupC}

// String returns the label used in the ratings export and the snapshots,
// e.g. "Group A".
func (g Group) String() string {
	return "Group " + g.Letter()
}

func (g Group) Letter() string {
	switch g {
	case GroupA:
		return "A"
	case GroupB:
		return "B"
	case GroupC:
		return "C"
	default:
		return "?"
	}
}

// Evaluators returns the pair of evaluator names rating this group, in
// canonical order. The first one is the baseline for merged exports.
func (g Group) Evaluators() (string, string) {
	switch g {
	case GroupB:
		return "Evaluator 3", "Evaluator 4"
	case GroupC:
		return "Evaluator 5", "Evaluator 6"
	default:
		return "Evaluator 1", "Evaluator 2"
	}
}

func GroupFromString(s string) (Group, error) {
	switch s {
	case "Group A", "A":
		return GroupA, nil
	case "Group B", "B":
		return GroupB, nil
	case "Group C", "C":
		return GroupC, nil
	}
	return 0, errors.Wrap(BadParameterError, fmt.Sprintf("unknown group %q", s))
}

// GroupOfEvaluator maps an evaluator name to the group it rates. "Tester" is
// a pseudo evaluator pointed at group A for dry runs.
func GroupOfEvaluator(evaluator string) (Group, bool) {
	switch evaluator {
	case "Evaluator 1", "Evaluator 2", "Tester":
		return GroupA, true
	case "Evaluator 3", "Evaluator 4":
		return GroupB, true
	case "Evaluator 5", "Evaluator 6":
		return GroupC, true
	}
	return 0, false
}
