package models

// CalibrationRow is one line of the calibration report: a disagreed field of
// an adjudicated query with both original ratings, the final verdict and the
// classified root cause. Model is "A", "B" or "comparison" for the
// preference row.
type CalibrationRow struct {
	QueryKey          string
	PatientId         string
	QueryNum          int
	Group             Group
	QueryType         string
	Metric            ComparisonKey
	Model             string
	Evaluator1Name    string
	Evaluator2Name    string
	Evaluator1Rating  string
	Evaluator2Rating  string
	AdjudicatedRating string
	RootCause         string
	RootCauseDetail   string
}

// CalibrationModelOf maps a comparison key to the report's model column.
func CalibrationModelOf(key ComparisonKey) string {
	if key.IsPreference() {
		return "comparison"
	}
	_, side, ok := key.Metric()
	if !ok {
		return ""
	}
	if side == ModelB {
		return "B"
	}
	return "A"
}

// RootCauseDistribution counts calibration rows per root cause, with the
// percentage over all rows.
type RootCauseDistribution struct {
	RootCause string
	Count     int
	Percent   float64
}

// RootCauseByMetric is one cell of the root-cause-by-metric cross tab.
type RootCauseByMetric struct {
	Metric    ComparisonKey
	RootCause string
	Count     int
}
