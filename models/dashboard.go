package models

// GroupProgress pairs a group with its adjudication progress.
type GroupProgress struct {
	Group    Group
	Progress ProgressStats
}

// AdjudicationDashboard is the admin view over the whole adjudication
// effort: overall and per-group progress plus the calibration analysis of
// the completed work.
type AdjudicationDashboard struct {
	Overall    ProgressStats
	PerGroup   []GroupProgress
	RootCauses []RootCauseDistribution
	CrossTab   []RootCauseByMetric
}

// EvaluatorProgress is one evaluator's advancement through their
// assignment: per-stage counts and the completion percent (comparison done
// over total).
type EvaluatorProgress struct {
	Evaluator string
	Group     Group
	Total     int
	Completed int
	ModelA    int
	ModelB    int
	Started   int
	Percent   float64
}

// PatientCompletion is the per-patient drill-down of one evaluator's work.
type PatientCompletion struct {
	Evaluator string
	Group     Group
	PatientId string
	Completed int
	Total     int
}

// EvaluationDashboard is the admin view over the evaluation effort.
type EvaluationDashboard struct {
	TotalQueries   int
	TotalCompleted int
	Percent        float64
	Evaluators     []EvaluatorProgress
	Patients       []PatientCompletion
}
