package models

// ProgressStats summarizes adjudication advancement over a set of queries.
type ProgressStats struct {
	Total     int
	Completed int
	Remaining int
	Percent   float64
}

// NewProgressStats derives the remaining count and the completion percent.
// An empty set is 0 percent complete, not undefined.
func NewProgressStats(total, completed int) ProgressStats {
	stats := ProgressStats{
		Total:     total,
		Completed: completed,
		Remaining: total - completed,
	}
	if total > 0 {
		stats.Percent = float64(completed) / float64(total) * 100
	}
	return stats
}

// RecoveryReport summarizes one recovery run: how many store records were
// written and a peek at the first keys touched.
type RecoveryReport struct {
	Recovered  int
	SampleKeys []string
}
