package preparation

import (
	"github.com/gmkhealth/verdict-backend/models"
)

// CompareRatings returns the metrics whose rating strings differ between the
// two mappings, in canonical metric order. Ratings are compared as exact
// strings; findings text never participates. An empty rating on one side
// against a non-empty one on the other is a disagreement like any other.
func CompareRatings(e1, e2 models.ModelRatings) []models.Metric {
	var disagreed []models.Metric
	for _, m := range models.AllMetrics {
		if e1.Grade(m).Rating != e2.Grade(m).Rating {
			disagreed = append(disagreed, m)
		}
	}
	return disagreed
}

// ClassifyDisagreements compares two evaluators' full sheets for one query:
// model A metrics, model B metrics, then the preference pick. The result is
// a pure function of the two sheets and follows the canonical key order.
func ClassifyDisagreements(e1, e2 models.EvaluatorSheet) []models.ComparisonKey {
	var keys []models.ComparisonKey
	for _, m := range CompareRatings(e1.ModelA, e2.ModelA) {
		keys = append(keys, models.MetricComparisonKey(m, models.ModelA))
	}
	for _, m := range CompareRatings(e1.ModelB, e2.ModelB) {
		keys = append(keys, models.MetricComparisonKey(m, models.ModelB))
	}
	if e1.Preference != e2.Preference {
		keys = append(keys, models.PreferenceKey)
	}
	return keys
}
