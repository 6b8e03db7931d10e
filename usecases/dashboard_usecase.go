package usecases

import (
	"context"
	"slices"

	"github.com/gmkhealth/verdict-backend/models"
	"github.com/gmkhealth/verdict-backend/usecases/security"
)

type DashboardUsecase struct {
	enforceSecurity       security.EnforceSecurityAdmin
	partitionRepository   adjudicationPartitionRepository
	adjudicationSnapshots adjudicationSnapshotRepository
	evaluationSnapshots   evaluationSnapshotRepository
	datasetRepository     evaluationDatasetRepository
	bucketUrl             string
	datasetFileName       string
}

// AdjudicationDashboard aggregates the whole adjudication effort: overall and
// per-group progress plus the root-cause analysis of the completed work.
func (usecase *DashboardUsecase) AdjudicationDashboard(ctx context.Context,
) (models.AdjudicationDashboard, error) {
	if err := usecase.enforceSecurity.ReadDashboard(); err != nil {
		return models.AdjudicationDashboard{}, err
	}
	disagreed, err := usecase.partitionRepository.LoadDisagreements(ctx, usecase.bucketUrl)
	if err != nil {
		return models.AdjudicationDashboard{}, err
	}
	snapshot, err := usecase.adjudicationSnapshots.LoadSnapshot(ctx, usecase.bucketUrl)
	if err != nil {
		return models.AdjudicationDashboard{}, err
	}

	dashboard := models.AdjudicationDashboard{
		Overall:  progressOf(disagreed, snapshot, nil),
		PerGroup: make([]models.GroupProgress, 0, len(models.AllGroups)),
	}
	for _, group := range models.AllGroups {
		dashboard.PerGroup = append(dashboard.PerGroup, models.GroupProgress{
			Group:    group,
			Progress: progressOf(disagreed, snapshot, &group),
		})
	}

	calibration := calibrationRows(disagreed, snapshot)
	dashboard.RootCauses = rootCauseDistribution(calibration)
	dashboard.CrossTab = rootCauseCrossTab(calibration, dashboard.RootCauses)
	return dashboard, nil
}

// rootCauseDistribution counts calibration rows per root cause, most common
// first, ties keeping first appearance.
func rootCauseDistribution(calibration []models.CalibrationRow) []models.RootCauseDistribution {
	counts := make(map[string]int, len(models.RootCauseOptions))
	order := make([]string, 0, len(models.RootCauseOptions))
	for _, row := range calibration {
		if _, seen := counts[row.RootCause]; !seen {
			order = append(order, row.RootCause)
		}
		counts[row.RootCause]++
	}

	distribution := make([]models.RootCauseDistribution, 0, len(order))
	for _, cause := range order {
		distribution = append(distribution, models.RootCauseDistribution{
			RootCause: cause,
			Count:     counts[cause],
			Percent:   float64(counts[cause]) / float64(len(calibration)) * 100,
		})
	}
	slices.SortStableFunc(distribution, func(a, b models.RootCauseDistribution) int {
		return b.Count - a.Count
	})
	return distribution
}

// rootCauseCrossTab emits the non-empty cells of the metric by root-cause
// table, metrics in canonical order, causes in distribution order.
func rootCauseCrossTab(calibration []models.CalibrationRow,
	distribution []models.RootCauseDistribution,
) []models.RootCauseByMetric {
	type cell struct {
		metric models.ComparisonKey
		cause  string
	}
	counts := make(map[cell]int, len(calibration))
	for _, row := range calibration {
		counts[cell{row.Metric, row.RootCause}]++
	}

	table := make([]models.RootCauseByMetric, 0, len(counts))
	for _, key := range models.AllComparisonKeys() {
		for _, cause := range distribution {
			count := counts[cell{key, cause.RootCause}]
			if count == 0 {
				continue
			}
			table = append(table, models.RootCauseByMetric{
				Metric:    key,
				RootCause: cause.RootCause,
				Count:     count,
			})
		}
	}
	return table
}

// EvaluationDashboard aggregates every evaluator's advancement: per-stage
// counts against the assignment plus the per-patient drill-down, with the
// overall completion on top.
func (usecase *DashboardUsecase) EvaluationDashboard(ctx context.Context,
) (models.EvaluationDashboard, error) {
	if err := usecase.enforceSecurity.ReadDashboard(); err != nil {
		return models.EvaluationDashboard{}, err
	}
	rows, err := usecase.datasetRepository.LoadQueryDataset(ctx, usecase.bucketUrl, usecase.datasetFileName)
	if err != nil {
		return models.EvaluationDashboard{}, err
	}
	snapshot, err := usecase.evaluationSnapshots.LoadSnapshot(ctx, usecase.bucketUrl)
	if err != nil {
		return models.EvaluationDashboard{}, err
	}

	dashboard := models.EvaluationDashboard{}
	for _, group := range models.AllGroups {
		first, second := group.Evaluators()
		for _, evaluator := range []string{first, second} {
			assignment, err := BuildAssignment(evaluator, rows)
			if err != nil {
				return models.EvaluationDashboard{}, err
			}
			progress, patients := evaluatorProgress(evaluator, group, assignment, snapshot)
			dashboard.Evaluators = append(dashboard.Evaluators, progress)
			dashboard.Patients = append(dashboard.Patients, patients...)
			dashboard.TotalQueries += progress.Total
			dashboard.TotalCompleted += progress.Completed
		}
	}
	if dashboard.TotalQueries > 0 {
		dashboard.Percent = float64(dashboard.TotalCompleted) / float64(dashboard.TotalQueries) * 100
	}
	return dashboard, nil
}

func evaluatorProgress(evaluator string, group models.Group, assignment models.Assignment,
	snapshot models.EvaluationSnapshot,
) (models.EvaluatorProgress, []models.PatientCompletion) {
	progress := models.EvaluatorProgress{
		Evaluator: evaluator,
		Group:     group,
		Total:     len(assignment.Tasks),
	}

	perPatient := make(map[string]*models.PatientCompletion, len(assignment.Tasks)/4)
	patientOrder := make([]string, 0, len(assignment.Tasks)/4)
	for _, task := range assignment.Tasks {
		record := recordOf(snapshot, evaluator, task.PatientId, task.QueryNum)
		if record.Started {
			progress.Started++
		}
		if record.ModelAGraded {
			progress.ModelA++
		}
		if record.ModelBGraded {
			progress.ModelB++
		}
		if record.ComparisonDone {
			progress.Completed++
		}

		completion, ok := perPatient[task.PatientId]
		if !ok {
			completion = &models.PatientCompletion{
				Evaluator: evaluator,
				Group:     group,
				PatientId: task.PatientId,
			}
			perPatient[task.PatientId] = completion
			patientOrder = append(patientOrder, task.PatientId)
		}
		completion.Total++
		if record.ComparisonDone {
			completion.Completed++
		}
	}
	if progress.Total > 0 {
		progress.Percent = float64(progress.Completed) / float64(progress.Total) * 100
	}

	patients := make([]models.PatientCompletion, 0, len(patientOrder))
	for _, patientId := range patientOrder {
		patients = append(patients, *perPatient[patientId])
	}
	return progress, patients
}
