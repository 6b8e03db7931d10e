package dto

import (
	"github.com/gmkhealth/verdict-backend/models"
	"github.com/gmkhealth/verdict-backend/pure_utils"
	"github.com/guregu/null/v5"
)

type EvaluationTask struct {
	PatientId      string `json:"patient_id"`
	BasePatientId  string `json:"base_patient_id"`
	QueryNum       string `json:"query_num"`
	FullQuery      string `json:"full_query"`
	PatientSummary string `json:"patient_summary"`
	Group          string `json:"group"`
	QueryType      string `json:"query_type"`
	PhiDependency  string `json:"phi_dependency"`
}

func AdaptEvaluationTaskDto(task models.EvaluationTask) EvaluationTask {
	return EvaluationTask{
		PatientId:      task.PatientId,
		BasePatientId:  task.BasePatientId,
		QueryNum:       task.QueryNum,
		FullQuery:      task.FullQuery,
		PatientSummary: task.PatientSummary,
		Group:          task.Group.String(),
		QueryType:      task.QueryType,
		PhiDependency:  task.PhiDependency,
	}
}

type Assignment struct {
	Evaluator string           `json:"evaluator"`
	Group     string           `json:"group"`
	Tasks     []EvaluationTask `json:"tasks"`
}

func AdaptAssignmentDto(assignment models.Assignment) Assignment {
	return Assignment{
		Evaluator: assignment.Evaluator,
		Group:     assignment.Group.String(),
		Tasks:     pure_utils.Map(assignment.Tasks, AdaptEvaluationTaskDto),
	}
}

type MetricGrade struct {
	Rating   string `json:"rating"`
	Findings string `json:"findings,omitempty"`
}

func AdaptModelRatingsDto(ratings models.ModelRatings) map[string]MetricGrade {
	out := make(map[string]MetricGrade, len(ratings))
	for metric, grade := range ratings {
		out[metric.Key()] = MetricGrade{Rating: grade.Rating, Findings: grade.Findings}
	}
	return out
}

type EvaluationRecord struct {
	Evaluator         string                 `json:"evaluator"`
	PatientId         string                 `json:"patient_id"`
	QueryNum          string                 `json:"query_num"`
	Started           bool                   `json:"started"`
	ModelAGraded      bool                   `json:"model_a_graded"`
	ModelBGraded      bool                   `json:"model_b_graded"`
	ComparisonDone    bool                   `json:"comparison_done"`
	ModelAData        map[string]MetricGrade `json:"model_a_data"`
	ModelBData        map[string]MetricGrade `json:"model_b_data"`
	Preference        string                 `json:"preference,omitempty"`
	PreferenceReasons string                 `json:"preference_reasons,omitempty"`
}

func AdaptEvaluationRecordDto(record models.EvaluationRecord) EvaluationRecord {
	return EvaluationRecord{
		Evaluator:         record.Evaluator,
		PatientId:         record.PatientId,
		QueryNum:          record.QueryNum,
		Started:           record.Started,
		ModelAGraded:      record.ModelAGraded,
		ModelBGraded:      record.ModelBGraded,
		ComparisonDone:    record.ComparisonDone,
		ModelAData:        AdaptModelRatingsDto(record.ModelAData),
		ModelBData:        AdaptModelRatingsDto(record.ModelBData),
		Preference:        record.Comparison.Preference,
		PreferenceReasons: record.Comparison.PreferenceReasons,
	}
}

type TaskStatus struct {
	Task           EvaluationTask `json:"task"`
	Started        bool           `json:"started"`
	ModelAGraded   bool           `json:"model_a_graded"`
	ModelBGraded   bool           `json:"model_b_graded"`
	ComparisonDone bool           `json:"comparison_done"`
}

func AdaptTaskStatusDto(status models.TaskStatus) TaskStatus {
	return TaskStatus{
		Task:           AdaptEvaluationTaskDto(status.Task),
		Started:        status.Record.Started,
		ModelAGraded:   status.Record.ModelAGraded,
		ModelBGraded:   status.Record.ModelBGraded,
		ComparisonDone: status.Record.ComparisonDone,
	}
}

// SubmitGradesBody carries one model side's six metric grades. Findings are
// nullable because passing metrics carry none.
type SubmitGradesBody struct {
	Grades map[string]SubmitGradeBody `json:"grades" binding:"required"`
}

type SubmitGradeBody struct {
	Rating   string      `json:"rating" binding:"required"`
	Findings null.String `json:"findings"`
}

func AdaptSubmitGrades(body SubmitGradesBody) models.ModelRatings {
	out := make(models.ModelRatings, len(body.Grades))
	for rawKey, grade := range body.Grades {
		metric, err := models.MetricFromKey(rawKey)
		if err != nil {
			continue
		}
		out[metric] = models.MetricGrade{
			Rating:   grade.Rating,
			Findings: grade.Findings.ValueOrZero(),
		}
	}
	return out
}

type SubmitComparisonBody struct {
	Preference        string `json:"preference" binding:"required,oneof='Model A' 'Model B'"`
	PreferenceReasons string `json:"preference_reasons"`
}

func AdaptSubmitComparison(body SubmitComparisonBody) models.ComparisonVerdict {
	return models.ComparisonVerdict{
		Preference:        body.Preference,
		PreferenceReasons: body.PreferenceReasons,
	}
}

type EvaluationOutcome struct {
	Key           string `json:"key"`
	Synced        bool   `json:"synced"`
	NextPatientId string `json:"next_patient_id,omitempty"`
	NextQueryNum  string `json:"next_query_num,omitempty"`
	Message       string `json:"message"`
}

func AdaptEvaluationOutcomeDto(outcome models.EvaluationOutcome) EvaluationOutcome {
	message := "Evaluation saved and synced."
	if !outcome.Synced {
		message = "Sheets sync failed. Data saved locally and will sync later."
	}
	return EvaluationOutcome{
		Key:           outcome.Key,
		Synced:        outcome.Synced,
		NextPatientId: outcome.NextPatientId,
		NextQueryNum:  outcome.NextQueryNum,
		Message:       message,
	}
}
