package httpmodels

import (
	"github.com/gmkhealth/verdict-backend/models"
)

// HTTPEvaluationPush is the POST body of a completed evaluation. Field names
// repeat the submission sheet's column script verbatim, quirks included
// ("a_completeness" for the content metric, "_f" findings suffixes).
type HTTPEvaluationPush struct {
	Type           string `json:"_type"`
	PatientId      string `json:"patientId"`
	QueryNum       string `json:"queryNum"`
	Group          string `json:"group"`
	QueryType      string `json:"queryType"`
	PhiDependency  string `json:"phiDependency"`
	PatientSummary string `json:"patientSummary"`
	FullQuery      string `json:"fullQuery"`
	Evaluator      string `json:"evaluator"`

	ASource        string `json:"a_source"`
	ASourceF       string `json:"a_source_f"`
	AHallucination string `json:"a_hallucination"`
	AHallF         string `json:"a_hall_f"`
	ASafety        string `json:"a_safety"`
	ASafetyF       string `json:"a_safety_f"`
	ACompleteness  string `json:"a_completeness"`
	ACompF         string `json:"a_comp_f"`
	AExtraneous    string `json:"a_extraneous"`
	AExtraF        string `json:"a_extra_f"`
	AFlow          string `json:"a_flow"`
	AFlowF         string `json:"a_flow_f"`

	BSource        string `json:"b_source"`
	BSourceF       string `json:"b_source_f"`
	BHallucination string `json:"b_hallucination"`
	BHallF         string `json:"b_hall_f"`
	BSafety        string `json:"b_safety"`
	BSafetyF       string `json:"b_safety_f"`
	BCompleteness  string `json:"b_completeness"`
	BCompF         string `json:"b_comp_f"`
	BExtraneous    string `json:"b_extraneous"`
	BExtraF        string `json:"b_extra_f"`
	BFlow          string `json:"b_flow"`
	BFlowF         string `json:"b_flow_f"`

	Preference  string `json:"preference"`
	PrefReasons string `json:"pref_reasons"`
}

// gradeOrDefault reads one metric's grade, substituting the pass-side rating
// when the stage data never recorded one.
func gradeOrDefault(ratings models.ModelRatings, metric models.Metric) (string, string) {
	grade := ratings.Grade(metric)
	rating := grade.Rating
	if rating == "" {
		rating = metric.RatingOptions()[0]
	}
	return rating, grade.Findings
}

// AdaptEvaluationPush flattens a completed evaluation for the mirror.
func AdaptEvaluationPush(task models.EvaluationTask, record models.EvaluationRecord) HTTPEvaluationPush {
	aSource, aSourceF := gradeOrDefault(record.ModelAData, models.MetricSource)
	aHallucination, aHallF := gradeOrDefault(record.ModelAData, models.MetricHallucination)
	aSafety, aSafetyF := gradeOrDefault(record.ModelAData, models.MetricSafety)
	aCompleteness, aCompF := gradeOrDefault(record.ModelAData, models.MetricContent)
	aExtraneous, aExtraF := gradeOrDefault(record.ModelAData, models.MetricExtraneous)
	aFlow, aFlowF := gradeOrDefault(record.ModelAData, models.MetricFlow)

	bSource, bSourceF := gradeOrDefault(record.ModelBData, models.MetricSource)
	bHallucination, bHallF := gradeOrDefault(record.ModelBData, models.MetricHallucination)
	bSafety, bSafetyF := gradeOrDefault(record.ModelBData, models.MetricSafety)
	bCompleteness, bCompF := gradeOrDefault(record.ModelBData, models.MetricContent)
	bExtraneous, bExtraF := gradeOrDefault(record.ModelBData, models.MetricExtraneous)
	bFlow, bFlowF := gradeOrDefault(record.ModelBData, models.MetricFlow)

	return HTTPEvaluationPush{
		Type:           "evaluation",
		PatientId:      task.PatientId,
		QueryNum:       task.QueryNum,
		Group:          task.Group.Letter(),
		QueryType:      task.QueryType,
		PhiDependency:  task.PhiDependency,
		PatientSummary: task.PatientSummary,
		FullQuery:      task.FullQuery,
		Evaluator:      record.Evaluator,

		ASource:        aSource,
		ASourceF:       aSourceF,
		AHallucination: aHallucination,
		AHallF:         aHallF,
		ASafety:        aSafety,
		ASafetyF:       aSafetyF,
		ACompleteness:  aCompleteness,
		ACompF:         aCompF,
		AExtraneous:    aExtraneous,
		AExtraF:        aExtraF,
		AFlow:          aFlow,
		AFlowF:         aFlowF,

		BSource:        bSource,
		BSourceF:       bSourceF,
		BHallucination: bHallucination,
		BHallF:         bHallF,
		BSafety:        bSafety,
		BSafetyF:       bSafetyF,
		BCompleteness:  bCompleteness,
		BCompF:         bCompF,
		BExtraneous:    bExtraneous,
		BExtraF:        bExtraF,
		BFlow:          bFlow,
		BFlowF:         bFlowF,

		Preference:  record.Comparison.Preference,
		PrefReasons: record.Comparison.PreferenceReasons,
	}
}
