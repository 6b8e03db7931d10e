package models

import "fmt"

// MetricGrade is one evaluator's verdict on one metric of one model response.
type MetricGrade struct {
	Rating   string
	Findings string
}

// ModelRatings holds an evaluator's grades for every metric of one model
// side. A missing entry reads as an empty grade.
type ModelRatings map[Metric]MetricGrade

func (r ModelRatings) Grade(m Metric) MetricGrade {
	return r[m]
}

// EvaluatorSheet is everything one evaluator said about one query: both
// model grades plus the overall preference.
type EvaluatorSheet struct {
	Name              string
	ModelA            ModelRatings
	ModelB            ModelRatings
	Preference        string
	PreferenceReasons string
}

func (s EvaluatorSheet) Ratings(side ModelSide) ModelRatings {
	if side == ModelB {
		return s.ModelB
	}
	return s.ModelA
}

// RatingFor resolves a comparison key against this sheet: the metric rating
// for metric keys, the preference pick for the preference key.
func (s EvaluatorSheet) RatingFor(key ComparisonKey) string {
	if key.IsPreference() {
		return s.Preference
	}
	m, side, ok := key.Metric()
	if !ok {
		return ""
	}
	return s.Ratings(side).Grade(m).Rating
}

// CanonicalRatings is the agreed verdict of a query both evaluators rated
// identically, taken from evaluator 1 (the sheets are equal on every
// compared field).
type CanonicalRatings struct {
	ModelA            ModelRatings
	ModelB            ModelRatings
	Preference        string
	PreferenceReasons string
}

// QueryRecord is one query of the partition: the query context, both
// evaluator sheets, and the comparison outcome. Agreed records carry
// Canonical and an empty Disagreements list; disagreed records the inverse.
type QueryRecord struct {
	QueryKey       string
	PatientId      string
	QueryNum       int
	Group          Group
	QueryType      string
	PhiDependency  string
	PatientSummary string
	QueryText      string
	Evaluator1     EvaluatorSheet
	Evaluator2     EvaluatorSheet
	Disagreements  []ComparisonKey
	NDisagreements int
	Canonical      *CanonicalRatings
}

func (q QueryRecord) Agreed() bool {
	return q.NDisagreements == 0
}

// FlaggingEvaluator reports which evaluator (1 or 2) raised the failure on a
// disagreed key. Preference disagreements have no failure side and point at
// evaluator 1.
func (q QueryRecord) FlaggingEvaluator(key ComparisonKey) int {
	metric, _, ok := key.Metric()
	if !ok {
		return 1
	}
	fail := metric.FailRating()
	if q.Evaluator2.RatingFor(key) == fail && q.Evaluator1.RatingFor(key) != fail {
		return 2
	}
	return 1
}

func (q QueryRecord) Severity() Severity {
	return SeverityFor(q.NDisagreements)
}

// QueryKeyOf builds the stable identifier shared by partitions, snapshots
// and mirror rows.
func QueryKeyOf(patientId string, queryNum int) string {
	return fmt.Sprintf("%s_%d", patientId, queryNum)
}
