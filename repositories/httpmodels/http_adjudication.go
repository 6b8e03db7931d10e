package httpmodels

import (
	"time"

	"github.com/gmkhealth/verdict-backend/models"
)

// isoTimeLayout matches the naive isoformat timestamps the mirror sheet
// stores, e.g. "2026-08-23T14:05:09.123456".
const isoTimeLayout = "2006-01-02T15:04:05.999999"

func parseIsoTime(value string) (time.Time, bool) {
	if t, err := time.Parse(isoTimeLayout, value); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// HTTPAdjudicationMetric is one resolved key of an adjudication push: the
// final verdict next to both original ratings. Root cause detail text stays
// local; the mirror only keeps the classified cause.
type HTTPAdjudicationMetric struct {
	Metric      string `json:"metric"`
	MetricKey   string `json:"metric_key"`
	Eval1Rating string `json:"eval1_rating"`
	Eval2Rating string `json:"eval2_rating"`
	Rating      string `json:"rating"`
	Findings    string `json:"findings"`
	RootCause   string `json:"root_cause"`
}

// HTTPAdjudicationPush is the POST body of an adjudication submission, one
// metrics entry per resolved key.
type HTTPAdjudicationPush struct {
	Type      string                   `json:"_type"`
	QueryKey  string                   `json:"query_key"`
	PatientId string                   `json:"patient_id"`
	QueryNum  int                      `json:"query_num"`
	Group     string                   `json:"group"`
	QueryType string                   `json:"query_type"`
	Evaluator string                   `json:"evaluator"`
	Timestamp string                   `json:"timestamp"`
	Metrics   []HTTPAdjudicationMetric `json:"metrics"`
}

// AdaptAdjudicationPush flattens a resolved query for the mirror. Metrics
// follow the query's disagreement order; keys without a resolution are
// skipped.
func AdaptAdjudicationPush(query models.QueryRecord, record models.AdjudicationRecord,
	evaluator string, now time.Time,
) HTTPAdjudicationPush {
	push := HTTPAdjudicationPush{
		Type:      "adjudication",
		QueryKey:  query.QueryKey,
		PatientId: query.PatientId,
		QueryNum:  query.QueryNum,
		Group:     query.Group.Letter(),
		QueryType: query.QueryType,
		Evaluator: evaluator,
		Timestamp: now.Format(isoTimeLayout),
		Metrics:   make([]HTTPAdjudicationMetric, 0, len(record.Resolutions)),
	}
	for _, key := range query.Disagreements {
		resolution, ok := record.Resolutions[key]
		if !ok {
			continue
		}
		push.Metrics = append(push.Metrics, HTTPAdjudicationMetric{
			Metric:      key.DisplayName(),
			MetricKey:   string(key),
			Eval1Rating: query.Evaluator1.RatingFor(key),
			Eval2Rating: query.Evaluator2.RatingFor(key),
			Rating:      resolution.Rating,
			Findings:    resolution.Findings,
			RootCause:   resolution.RootCause,
		})
	}
	return push
}

type HTTPAdjudicationResolution struct {
	Rating          string `json:"rating"`
	Findings        string `json:"findings"`
	RootCause       string `json:"root_cause"`
	RootCauseDetail string `json:"root_cause_detail"`
}

// HTTPAdjudicationRow is one prior submission returned by the mirror's GET
// endpoint.
type HTTPAdjudicationRow struct {
	QueryKey         string                                `json:"query_key"`
	AdjudicationData map[string]HTTPAdjudicationResolution `json:"adjudication_data"`
	Timestamp        string                                `json:"timestamp"`
}

// AdaptRecoveredAdjudication rebuilds a completed local record from a mirror
// row. Rows without a parseable timestamp get the recovery time.
func AdaptRecoveredAdjudication(row HTTPAdjudicationRow, now time.Time) models.AdjudicationRecord {
	record := models.AdjudicationRecord{
		QueryKey:    row.QueryKey,
		Completed:   true,
		Timestamp:   now,
		Resolutions: make(map[models.ComparisonKey]models.MetricResolution, len(row.AdjudicationData)),
	}
	if timestamp, ok := parseIsoTime(row.Timestamp); ok {
		record.Timestamp = timestamp
	}
	for key, resolution := range row.AdjudicationData {
		record.Resolutions[models.ComparisonKey(key)] = models.MetricResolution{
			Rating:          resolution.Rating,
			Findings:        resolution.Findings,
			RootCause:       resolution.RootCause,
			RootCauseDetail: resolution.RootCauseDetail,
		}
	}
	return record
}
