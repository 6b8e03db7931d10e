package models

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Metric is one of the six rated dimensions of a model response. Each metric
// maps to a rating column and a findings column of the wide ratings export;
// model B columns carry a ".1" suffix on top of these names.
type Metric int

const (
	MetricSource Metric = iota
	MetricHallucination
	MetricSafety
	MetricContent
	MetricExtraneous
	MetricFlow
)

var AllMetrics = []Metric{
	MetricSource,
	MetricHallucination,
	MetricSafety,
	MetricContent,
	MetricExtraneous,
	MetricFlow,
}

// Key is the snake identifier used in snapshots and comparison keys.
func (m Metric) Key() string {
	switch m {
	case MetricSource:
		return "source"
	case MetricHallucination:
		return "hallucination"
	case MetricSafety:
		return "safety"
	case MetricContent:
		return "content"
	case MetricExtraneous:
		return "extraneous"
	case MetricFlow:
		return "flow"
	default:
		return "unknown"
	}
}

func (m Metric) DisplayName() string {
	switch m {
	case MetricSource:
		return "Source Accuracy"
	case MetricHallucination:
		return "Hallucination"
	case MetricSafety:
		return "Safety Omission"
	case MetricContent:
		return "Content Omission"
	case MetricExtraneous:
		return "Extraneous Information"
	case MetricFlow:
		return "Flow"
	default:
		return "Unknown"
	}
}

// RatingColumn is the model A rating column header of the raw export.
func (m Metric) RatingColumn() string {
	switch m {
	case MetricSource:
		return "Source Accuracy"
	case MetricHallucination:
		return "Hallucination - Fabrication"
	case MetricSafety:
		return "Safety Omission"
	case MetricContent:
		return "Content Omission"
	case MetricExtraneous:
		return "Extraneous Information"
	case MetricFlow:
		return "Flow"
	default:
		return ""
	}
}

// FindingsColumn is the model A findings column header of the raw export.
// The hallucination header is lowercase "findings" in the export.
func (m Metric) FindingsColumn() string {
	if m == MetricHallucination {
		return "Hallucination findings"
	}
	return m.RatingColumn() + " Findings"
}

// MergedFindingsColumn is the findings header of the merged dataset, which
// title-cases the hallucination column unlike the raw export.
func (m Metric) MergedFindingsColumn() string {
	if m == MetricHallucination {
		return "Hallucination Findings"
	}
	return m.FindingsColumn()
}

// RatingOptions is the closed set of ratings a reviewer can pick for this
// metric, pass option first.
func (m Metric) RatingOptions() []string {
	switch m {
	case MetricSource:
		return []string{"No source issues (Pass)", "Yes, at least one source (Fail)"}
	case MetricHallucination:
		return []string{"No Hallucination", "Yes Hallucination"}
	case MetricSafety:
		return []string{"No Safety Omission (Safe)", "Yes, Safety Omission (Unsafe)"}
	case MetricContent:
		return []string{"No Omission (Complete)", "Yes, Omission (Incomplete)"}
	case MetricExtraneous:
		return []string{"No extraneous information", "Yes, extraneous information"}
	case MetricFlow:
		return []string{"No flow issues", "Yes, flow issues"}
	default:
		return nil
	}
}

// FailRating is the option marking this metric as a failure, the second
// entry of the rating enumeration.
func (m Metric) FailRating() string {
	options := m.RatingOptions()
	if len(options) < 2 {
		return ""
	}
	return options[1]
}

func MetricFromKey(key string) (Metric, error) {
	for _, m := range AllMetrics {
		if m.Key() == key {
			return m, nil
		}
	}
	return 0, errors.Wrap(BadParameterError, fmt.Sprintf("unknown metric %q", key))
}

// ModelSide distinguishes the two anonymized model responses of a query.
type ModelSide int

const (
	ModelA ModelSide = iota
	ModelB
)

var BothModelSides = []ModelSide{ModelA, ModelB}

func (s ModelSide) Key() string {
	if s == ModelB {
		return "b"
	}
	return "a"
}

func (s ModelSide) Label() string {
	if s == ModelB {
		return "Model B"
	}
	return "Model A"
}

// ColumnSuffix is appended to every model B column header of the raw export.
func (s ModelSide) ColumnSuffix() string {
	if s == ModelB {
		return ".1"
	}
	return ""
}

func ModelSideFromKey(key string) (ModelSide, error) {
	switch key {
	case "a":
		return ModelA, nil
	case "b":
		return ModelB, nil
	}
	return 0, errors.Wrap(BadParameterError, fmt.Sprintf("unknown model side %q", key))
}

// PreferenceOptions is the closed set of overall preference picks.
var PreferenceOptions = []string{"Model A", "Model B"}
