package models

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// ComparisonKey identifies one of the thirteen compared fields of a query:
// the six metrics for each model side ("source_a" … "flow_b") plus the
// overall "preference". Keys are the snapshot and partition wire values.
type ComparisonKey string

const PreferenceKey ComparisonKey = "preference"

func MetricComparisonKey(m Metric, side ModelSide) ComparisonKey {
	return ComparisonKey(m.Key() + "_" + side.Key())
}

// AllComparisonKeys lists every key in canonical order: model A metrics,
// model B metrics, then preference. Disagreement lists follow this order.
func AllComparisonKeys() []ComparisonKey {
	keys := make([]ComparisonKey, 0, 2*len(AllMetrics)+1)
	for _, side := range BothModelSides {
		for _, m := range AllMetrics {
			keys = append(keys, MetricComparisonKey(m, side))
		}
	}
	return append(keys, PreferenceKey)
}

func (k ComparisonKey) IsPreference() bool {
	return k == PreferenceKey
}

// Metric splits a metric key into its metric and model side. Returns false
// for the preference key and for unknown keys.
func (k ComparisonKey) Metric() (Metric, ModelSide, bool) {
	s := string(k)
	var side ModelSide
	switch {
	case strings.HasSuffix(s, "_a"):
		side = ModelA
	case strings.HasSuffix(s, "_b"):
		side = ModelB
	default:
		return 0, 0, false
	}
	m, err := MetricFromKey(strings.TrimSuffix(strings.TrimSuffix(s, "_a"), "_b"))
	if err != nil {
		return 0, 0, false
	}
	return m, side, true
}

// DisplayName renders the key for reviewers, e.g. "Hallucination (Model A)"
// or "Model Preference".
func (k ComparisonKey) DisplayName() string {
	if k.IsPreference() {
		return "Model Preference"
	}
	m, side, ok := k.Metric()
	if !ok {
		return string(k)
	}
	return fmt.Sprintf("%s (%s)", m.DisplayName(), side.Label())
}

// RatingOptions is the closed choice set for this key.
func (k ComparisonKey) RatingOptions() []string {
	if k.IsPreference() {
		return PreferenceOptions
	}
	m, _, ok := k.Metric()
	if !ok {
		return nil
	}
	return m.RatingOptions()
}

func ComparisonKeyFromString(s string) (ComparisonKey, error) {
	k := ComparisonKey(s)
	if k.IsPreference() {
		return k, nil
	}
	if _, _, ok := k.Metric(); !ok {
		return "", errors.Wrap(BadParameterError, fmt.Sprintf("unknown comparison key %q", s))
	}
	return k, nil
}
