package dto

import (
	"fmt"
	"time"

	"github.com/gmkhealth/verdict-backend/models"
	"github.com/gmkhealth/verdict-backend/pure_utils"
)

type QueryContext struct {
	QueryKey       string `json:"query_key"`
	PatientId      string `json:"patient_id"`
	QueryNum       int    `json:"query_num"`
	Group          string `json:"group"`
	QueryType      string `json:"query_type"`
	PhiDependency  string `json:"phi_dependency"`
	PatientSummary string `json:"patient_summary"`
	QueryText      string `json:"query_text"`
	Evaluator1     string `json:"evaluator_1"`
	Evaluator2     string `json:"evaluator_2"`
	NDisagreements int    `json:"n_disagreements"`
	Severity       string `json:"severity"`
}

func AdaptQueryContextDto(query models.QueryRecord) QueryContext {
	return QueryContext{
		QueryKey:       query.QueryKey,
		PatientId:      query.PatientId,
		QueryNum:       query.QueryNum,
		Group:          query.Group.String(),
		QueryType:      query.QueryType,
		PhiDependency:  query.PhiDependency,
		PatientSummary: query.PatientSummary,
		QueryText:      query.QueryText,
		Evaluator1:     query.Evaluator1.Name,
		Evaluator2:     query.Evaluator2.Name,
		NDisagreements: query.NDisagreements,
		Severity:       query.Severity().String(),
	}
}

// DisagreementDetail is one disagreed field laid out for the review screen:
// both original verdicts side by side, the selectable ratings and which
// evaluator flagged the failure.
type DisagreementDetail struct {
	Key                string   `json:"key"`
	Label              string   `json:"label"`
	Model              string   `json:"model"`
	Evaluator1Rating   string   `json:"evaluator_1_rating"`
	Evaluator2Rating   string   `json:"evaluator_2_rating"`
	Evaluator1Findings string   `json:"evaluator_1_findings"`
	Evaluator2Findings string   `json:"evaluator_2_findings"`
	FlaggedBy          int      `json:"flagged_by"`
	RatingOptions      []string `json:"rating_options"`
}

func findingsFor(sheet models.EvaluatorSheet, key models.ComparisonKey) string {
	if key.IsPreference() {
		return sheet.PreferenceReasons
	}
	metric, side, ok := key.Metric()
	if !ok {
		return ""
	}
	return sheet.Ratings(side).Grade(metric).Findings
}

func AdaptDisagreementDetailDto(query models.QueryRecord, key models.ComparisonKey) DisagreementDetail {
	return DisagreementDetail{
		Key:                string(key),
		Label:              key.DisplayName(),
		Model:              models.CalibrationModelOf(key),
		Evaluator1Rating:   query.Evaluator1.RatingFor(key),
		Evaluator2Rating:   query.Evaluator2.RatingFor(key),
		Evaluator1Findings: findingsFor(query.Evaluator1, key),
		Evaluator2Findings: findingsFor(query.Evaluator2, key),
		FlaggedBy:          query.FlaggingEvaluator(key),
		RatingOptions:      key.RatingOptions(),
	}
}

type MetricResolution struct {
	Rating          string `json:"rating"`
	Findings        string `json:"findings"`
	RootCause       string `json:"root_cause"`
	RootCauseDetail string `json:"root_cause_detail,omitempty"`
}

func AdaptMetricResolutionDto(resolution models.MetricResolution) MetricResolution {
	return MetricResolution{
		Rating:          resolution.Rating,
		Findings:        resolution.Findings,
		RootCause:       resolution.RootCause,
		RootCauseDetail: resolution.RootCauseDetail,
	}
}

type AdjudicationRecord struct {
	QueryKey    string                      `json:"query_key"`
	Completed   bool                        `json:"completed"`
	Timestamp   time.Time                   `json:"timestamp"`
	Resolutions map[string]MetricResolution `json:"resolutions"`
}

func AdaptAdjudicationRecordDto(record models.AdjudicationRecord) AdjudicationRecord {
	resolutions := make(map[string]MetricResolution, len(record.Resolutions))
	for key, resolution := range record.Resolutions {
		resolutions[string(key)] = AdaptMetricResolutionDto(resolution)
	}
	return AdjudicationRecord{
		QueryKey:    record.QueryKey,
		Completed:   record.Completed,
		Timestamp:   record.Timestamp,
		Resolutions: resolutions,
	}
}

type DocLinks struct {
	ModelAUrl string `json:"model_a_url"`
	ModelBUrl string `json:"model_b_url"`
}

type ReviewBundle struct {
	Query            QueryContext         `json:"query"`
	Disagreements    []DisagreementDetail `json:"disagreements"`
	Resolution       *AdjudicationRecord  `json:"resolution,omitempty"`
	DocLinks         *DocLinks            `json:"doc_links,omitempty"`
	RootCauseOptions []string             `json:"root_cause_options"`
}

func AdaptReviewBundleDto(bundle models.ReviewBundle) ReviewBundle {
	out := ReviewBundle{
		Query: AdaptQueryContextDto(bundle.Query),
		Disagreements: pure_utils.Map(bundle.Query.Disagreements,
			func(key models.ComparisonKey) DisagreementDetail {
				return AdaptDisagreementDetailDto(bundle.Query, key)
			}),
		RootCauseOptions: models.RootCauseOptions,
	}
	if bundle.Resolution != nil {
		resolution := AdaptAdjudicationRecordDto(*bundle.Resolution)
		out.Resolution = &resolution
	}
	if bundle.DocLinks != nil {
		out.DocLinks = &DocLinks{
			ModelAUrl: bundle.DocLinks.ModelAUrl,
			ModelBUrl: bundle.DocLinks.ModelBUrl,
		}
	}
	return out
}

type SubmitAdjudicationBody struct {
	Resolutions map[string]MetricResolution `json:"resolutions" binding:"required"`
}

// AdaptSubmitAdjudication rejects unknown comparison keys up front so the
// usecase only ever sees the thirteen legal ones.
func AdaptSubmitAdjudication(body SubmitAdjudicationBody,
) (map[models.ComparisonKey]models.MetricResolution, error) {
	resolutions := make(map[models.ComparisonKey]models.MetricResolution, len(body.Resolutions))
	for rawKey, resolution := range body.Resolutions {
		key, err := models.ComparisonKeyFromString(rawKey)
		if err != nil {
			return nil, err
		}
		resolutions[key] = models.MetricResolution{
			Rating:          resolution.Rating,
			Findings:        resolution.Findings,
			RootCause:       resolution.RootCause,
			RootCauseDetail: resolution.RootCauseDetail,
		}
	}
	return resolutions, nil
}

type SubmitOutcome struct {
	QueryKey     string `json:"query_key"`
	Synced       bool   `json:"synced"`
	NextQueryKey string `json:"next_query_key,omitempty"`
	Message      string `json:"message"`
}

func AdaptSubmitOutcomeDto(outcome models.SubmitOutcome) SubmitOutcome {
	message := "Adjudication saved and synced."
	if !outcome.Synced {
		message = "Sheets sync failed. Data saved locally and will sync later."
	}
	return SubmitOutcome{
		QueryKey:     outcome.QueryKey,
		Synced:       outcome.Synced,
		NextQueryKey: outcome.NextQueryKey,
		Message:      message,
	}
}

// IncompleteAdjudicationResponse carries the per-field display-name lists
// the review screen highlights, in the order they should be shown.
type IncompleteAdjudicationResponse struct {
	Message           string    `json:"message"`
	ErrorCode         ErrorCode `json:"error_code"`
	MissingRatings    []string  `json:"missing_ratings"`
	MissingFindings   []string  `json:"missing_findings"`
	MissingRootCauses []string  `json:"missing_root_causes"`
}

func AdaptIncompleteAdjudicationDto(err models.IncompleteAdjudicationError) IncompleteAdjudicationResponse {
	missing := len(err.MissingRatings) + len(err.MissingFindings) + len(err.MissingRootCauses)
	return IncompleteAdjudicationResponse{
		Message:           fmt.Sprintf("adjudication incomplete: %d fields still open", missing),
		ErrorCode:         IncompleteAdjudication,
		MissingRatings:    err.MissingRatings,
		MissingFindings:   err.MissingFindings,
		MissingRootCauses: err.MissingRootCauses,
	}
}
