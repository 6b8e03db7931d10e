package usecases

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/gmkhealth/verdict-backend/models"
	"github.com/gmkhealth/verdict-backend/usecases/security"
	"github.com/gmkhealth/verdict-backend/usecases/tracking"
	"github.com/gmkhealth/verdict-backend/utils"
)

type evaluationDatasetRepository interface {
	LoadQueryDataset(ctx context.Context, bucketUrl, fileName string) ([]models.QueryDatasetRow, error)
}

type evaluationSnapshotRepository interface {
	LoadSnapshot(ctx context.Context, bucketUrl string) (models.EvaluationSnapshot, error)
	SaveSnapshot(ctx context.Context, bucketUrl string, snapshot models.EvaluationSnapshot) error
}

type evaluationMirrorRepository interface {
	PushEvaluation(ctx context.Context, task models.EvaluationTask, record models.EvaluationRecord) error
}

type EvaluationUsecase struct {
	enforceSecurity    security.EnforceSecurityEvaluation
	datasetRepository  evaluationDatasetRepository
	snapshotRepository evaluationSnapshotRepository
	mirrorRepository   evaluationMirrorRepository
	bucketUrl          string
	datasetFileName    string
}

// BuildAssignment derives an evaluator's ordered task list from the dataset.
// The group's rows are taken in dataset order, four consecutive rows forming
// one patient block whose first patient id labels all four. The same dataset
// always yields the same assignment.
func BuildAssignment(evaluator string, rows []models.QueryDatasetRow) (models.Assignment, error) {
	group, ok := models.GroupOfEvaluator(evaluator)
	if !ok {
		return models.Assignment{}, errors.Wrap(models.ErrUnknownEvaluator, evaluator)
	}

	groupRows := make([]models.QueryDatasetRow, 0, len(rows))
	for _, row := range rows {
		if row.Group == group {
			groupRows = append(groupRows, row)
		}
	}

	assignment := models.Assignment{
		Evaluator: evaluator,
		Group:     group,
		Tasks:     make([]models.EvaluationTask, 0, len(groupRows)),
	}
	for i, row := range groupRows {
		assignment.Tasks = append(assignment.Tasks, models.EvaluationTask{
			PatientId:      row.PatientId,
			BasePatientId:  groupRows[(i/4)*4].PatientId,
			QueryNum:       row.QueryNum,
			FullQuery:      row.QueryText,
			PatientSummary: row.PatientSummary,
			Group:          row.Group,
			QueryType:      row.QueryType,
			PhiDependency:  row.PhiDependency,
		})
	}
	return assignment, nil
}

// GetAssignment regenerates the evaluator's task list from the dataset.
func (usecase *EvaluationUsecase) GetAssignment(ctx context.Context, evaluator string,
) (models.Assignment, error) {
	if err := usecase.enforceSecurity.ReadEvaluation(evaluator); err != nil {
		return models.Assignment{}, err
	}
	rows, err := usecase.datasetRepository.LoadQueryDataset(ctx, usecase.bucketUrl, usecase.datasetFileName)
	if err != nil {
		return models.Assignment{}, err
	}
	return BuildAssignment(evaluator, rows)
}

// ListTaskStatuses pairs every assigned query with its stage flags, in
// assignment order. Untouched queries come back with an all-false record.
func (usecase *EvaluationUsecase) ListTaskStatuses(ctx context.Context, evaluator string,
) ([]models.TaskStatus, error) {
	assignment, err := usecase.GetAssignment(ctx, evaluator)
	if err != nil {
		return nil, err
	}
	snapshot, err := usecase.snapshotRepository.LoadSnapshot(ctx, usecase.bucketUrl)
	if err != nil {
		return nil, err
	}

	statuses := make([]models.TaskStatus, 0, len(assignment.Tasks))
	for _, task := range assignment.Tasks {
		statuses = append(statuses, models.TaskStatus{
			Task:   task,
			Record: recordOf(snapshot, evaluator, task.PatientId, task.QueryNum),
		})
	}
	return statuses, nil
}

func recordOf(snapshot models.EvaluationSnapshot, evaluator, patientId, queryNum string,
) models.EvaluationRecord {
	if record, ok := snapshot[models.EvaluationKey(evaluator, patientId, queryNum)]; ok {
		return record
	}
	return models.EvaluationRecord{Evaluator: evaluator, PatientId: patientId, QueryNum: queryNum}
}

// GetRecord returns one query's evaluation state. A query never touched
// yields a record with every stage flag off, not an error.
func (usecase *EvaluationUsecase) GetRecord(ctx context.Context, evaluator, patientId, queryNum string,
) (models.EvaluationRecord, error) {
	if err := usecase.enforceSecurity.ReadEvaluation(evaluator); err != nil {
		return models.EvaluationRecord{}, err
	}
	snapshot, err := usecase.snapshotRepository.LoadSnapshot(ctx, usecase.bucketUrl)
	if err != nil {
		return models.EvaluationRecord{}, err
	}
	return recordOf(snapshot, evaluator, patientId, models.NormalizeQueryNum(queryNum)), nil
}

// StartEvaluation marks a query as opened. Already-started queries are left
// untouched, so the call is idempotent.
func (usecase *EvaluationUsecase) StartEvaluation(ctx context.Context, evaluator, patientId, queryNum string,
) (models.EvaluationRecord, error) {
	if err := usecase.enforceSecurity.SubmitGrade(evaluator); err != nil {
		return models.EvaluationRecord{}, err
	}
	snapshot, err := usecase.snapshotRepository.LoadSnapshot(ctx, usecase.bucketUrl)
	if err != nil {
		return models.EvaluationRecord{}, err
	}

	record := recordOf(snapshot, evaluator, patientId, models.NormalizeQueryNum(queryNum))
	if record.Started {
		return record, nil
	}
	record.Started = true
	snapshot[record.Key()] = record
	if err := usecase.snapshotRepository.SaveSnapshot(ctx, usecase.bucketUrl, snapshot); err != nil {
		return models.EvaluationRecord{}, err
	}
	return record, nil
}

// SubmitGrades stores one model side's metric grades and flags the stage
// done. Regrading a side overwrites the previous pass.
func (usecase *EvaluationUsecase) SubmitGrades(ctx context.Context, evaluator, patientId, queryNum string,
	side models.ModelSide, data models.ModelRatings,
) (models.EvaluationRecord, error) {
	if err := usecase.enforceSecurity.SubmitGrade(evaluator); err != nil {
		return models.EvaluationRecord{}, err
	}
	snapshot, err := usecase.snapshotRepository.LoadSnapshot(ctx, usecase.bucketUrl)
	if err != nil {
		return models.EvaluationRecord{}, err
	}

	record := recordOf(snapshot, evaluator, patientId, models.NormalizeQueryNum(queryNum))
	record.SetGraded(side, data)
	snapshot[record.Key()] = record
	if err := usecase.snapshotRepository.SaveSnapshot(ctx, usecase.bucketUrl, snapshot); err != nil {
		return models.EvaluationRecord{}, err
	}

	tracking.TrackEvent(ctx, models.AnalyticsEvaluationGraded, map[string]interface{}{
		"evaluator":  evaluator,
		"patient_id": patientId,
		"query_num":  record.QueryNum,
		"model":      side.Label(),
	})
	return record, nil
}

// SubmitComparison stores the head-to-head verdict, completing the query, and
// mirrors the full flat submission best effort. Reasons are mandatory; the
// pick must be one of the two models.
func (usecase *EvaluationUsecase) SubmitComparison(ctx context.Context, evaluator, patientId, queryNum string,
	verdict models.ComparisonVerdict,
) (models.EvaluationOutcome, error) {
	if err := usecase.enforceSecurity.SubmitGrade(evaluator); err != nil {
		return models.EvaluationOutcome{}, err
	}
	if strings.TrimSpace(verdict.PreferenceReasons) == "" {
		return models.EvaluationOutcome{}, errors.Wrap(models.ErrMissingReasons,
			fmt.Sprintf("comparison for patient %s query %s", patientId, queryNum))
	}
	if !slices.Contains(models.PreferenceOptions, verdict.Preference) {
		return models.EvaluationOutcome{}, errors.Wrap(models.BadParameterError,
			fmt.Sprintf("%q is not a valid preference", verdict.Preference))
	}

	rows, err := usecase.datasetRepository.LoadQueryDataset(ctx, usecase.bucketUrl, usecase.datasetFileName)
	if err != nil {
		return models.EvaluationOutcome{}, err
	}
	assignment, err := BuildAssignment(evaluator, rows)
	if err != nil {
		return models.EvaluationOutcome{}, err
	}
	queryNum = models.NormalizeQueryNum(queryNum)
	task, ok := assignment.Find(patientId, queryNum)
	if !ok {
		return models.EvaluationOutcome{}, errors.Wrap(models.ErrUnknownAssignment,
			fmt.Sprintf("%s has no query %s for patient %s", evaluator, queryNum, patientId))
	}

	snapshot, err := usecase.snapshotRepository.LoadSnapshot(ctx, usecase.bucketUrl)
	if err != nil {
		return models.EvaluationOutcome{}, err
	}
	record := recordOf(snapshot, evaluator, patientId, queryNum)
	record.Comparison = verdict
	record.ComparisonDone = true
	record.Started = true
	snapshot[record.Key()] = record
	if err := usecase.snapshotRepository.SaveSnapshot(ctx, usecase.bucketUrl, snapshot); err != nil {
		return models.EvaluationOutcome{}, err
	}

	synced := true
	if err := usecase.mirrorRepository.PushEvaluation(ctx, task, record); err != nil {
		synced = false
		utils.LoggerFromContext(ctx).WarnContext(ctx,
			"mirror push failed, the evaluation is safe in the local store",
			"key", record.Key(), "error", err.Error())
	}

	outcome := models.EvaluationOutcome{Key: record.Key(), Synced: synced}
	if next, ok := assignment.Next(patientId, queryNum); ok {
		outcome.NextPatientId = next.PatientId
		outcome.NextQueryNum = next.QueryNum
	}

	tracking.TrackEvent(ctx, models.AnalyticsComparisonSubmitted, map[string]interface{}{
		"evaluator":  evaluator,
		"patient_id": patientId,
		"query_num":  queryNum,
		"synced":     synced,
	})
	return outcome, nil
}
