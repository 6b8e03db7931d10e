package models

// EvaluationSubmission is one completed evaluation reported by the mirror
// or by a submissions CSV export. Only identity fields survive the round
// trip; recovery restores the stage flags, not the grade content.
type EvaluationSubmission struct {
	Evaluator string
	PatientId string
	QueryNum  string
}
