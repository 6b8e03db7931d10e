package models

// Severity buckets a disagreed query by how many fields the evaluator pair
// disagreed on.
type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
)

func (s Severity) String() string {
	switch s {
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	default:
		return "low"
	}
}

// SeverityFor buckets a disagreement count: 0-1 low, 2-3 medium, 4+ high.
func SeverityFor(nDisagreements int) Severity {
	switch {
	case nDisagreements <= 1:
		return SeverityLow
	case nDisagreements <= 3:
		return SeverityMedium
	default:
		return SeverityHigh
	}
}
