package models

// RootCauseUnset is the placeholder shown before a reviewer picks a cause.
// A resolution carrying it is incomplete.
const RootCauseUnset = "Select root cause..."

// RootCauseOptions is the closed calibration taxonomy a reviewer classifies
// each disagreement into. Stored verbatim in resolutions and the calibration
// report.
var RootCauseOptions = []string{
	"One evaluator missed a specific finding (e.g., missed a hallucination, citation error, or omission)",
	"Both evaluators saw the same issue but disagreed on severity or significance",
	"The metric rubric was unclear or ambiguous, leading to different interpretations",
	"One evaluator made a clear mistake (e.g., wrong rating selected, misread the response)",
}

// IsRootCauseChosen reports whether a stored root cause is an actual pick,
// not empty and not the placeholder.
func IsRootCauseChosen(rootCause string) bool {
	return rootCause != "" && rootCause != RootCauseUnset
}
