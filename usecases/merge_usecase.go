package usecases

import (
	"context"
	"slices"

	"github.com/gmkhealth/verdict-backend/models"
	"github.com/gmkhealth/verdict-backend/usecases/security"
	"github.com/gmkhealth/verdict-backend/usecases/tracking"
	"github.com/gmkhealth/verdict-backend/utils"
)

type mergePartitionRepository interface {
	LoadPartition(ctx context.Context, bucketUrl string) (models.Partition, error)
}

type mergedDatasetRepository interface {
	SaveFinalDataset(ctx context.Context, bucketUrl string, rows []models.FinalDatasetRow) error
	SaveCalibrationReport(ctx context.Context, bucketUrl string, rows []models.CalibrationRow) error
}

type MergeUsecase struct {
	enforceSecurity     security.EnforceSecurityAdmin
	partitionRepository mergePartitionRepository
	snapshotRepository  adjudicationSnapshotRepository
	datasetRepository   mergedDatasetRepository
	bucketUrl           string
}

// MergeDataset folds the partition and the adjudication store into the
// canonical dataset and the calibration report, and writes both. Queries
// still waiting on an adjudication are reported, never defaulted.
func (usecase *MergeUsecase) MergeDataset(ctx context.Context) (models.MergeResult, error) {
	if err := usecase.enforceSecurity.MergeDataset(); err != nil {
		return models.MergeResult{}, err
	}
	ctx, span := utils.OpenTelemetryTracerFromContext(ctx).Start(ctx, "merge_dataset")
	defer span.End()

	partition, err := usecase.partitionRepository.LoadPartition(ctx, usecase.bucketUrl)
	if err != nil {
		return models.MergeResult{}, err
	}
	snapshot, err := usecase.snapshotRepository.LoadSnapshot(ctx, usecase.bucketUrl)
	if err != nil {
		return models.MergeResult{}, err
	}

	result := MergeAdjudicated(partition, snapshot)
	if err := usecase.datasetRepository.SaveFinalDataset(ctx, usecase.bucketUrl, result.Rows); err != nil {
		return models.MergeResult{}, err
	}
	if len(result.Calibration) > 0 {
		if err := usecase.datasetRepository.SaveCalibrationReport(ctx, usecase.bucketUrl,
			result.Calibration); err != nil {
			return models.MergeResult{}, err
		}
	}

	logger := utils.LoggerFromContext(ctx)
	logger.InfoContext(ctx, "merged the final dataset",
		"rows", len(result.Rows),
		"agreed", result.AgreedCount,
		"adjudicated", result.AdjudicatedCount,
		"calibration_rows", len(result.Calibration))
	if len(result.MissingAdjudications) > 0 {
		logger.WarnContext(ctx, "queries are missing adjudications and were left out",
			"missing", len(result.MissingAdjudications),
			"keys", sampleKeys(result.MissingAdjudications))
	}

	tracking.TrackEvent(ctx, models.AnalyticsDatasetMerged, map[string]interface{}{
		"rows":        len(result.Rows),
		"agreed":      result.AgreedCount,
		"adjudicated": result.AdjudicatedCount,
		"missing":     len(result.MissingAdjudications),
	})
	return result, nil
}

// MergeAdjudicated builds the canonical rows: agreed queries keep their
// canonical ratings, disagreed queries take evaluator 1's sheet as the base
// and overlay the adjudicated verdict on every disagreed field. A disagreed
// query without a completed adjudication lands in MissingAdjudications.
func MergeAdjudicated(partition models.Partition, snapshot models.AdjudicationSnapshot) models.MergeResult {
	result := models.MergeResult{
		Rows:        make([]models.FinalDatasetRow, 0, partition.Total()),
		AgreedCount: len(partition.Agreed),
	}

	for _, query := range partition.Agreed {
		canonical := canonicalOf(query)
		result.Rows = append(result.Rows, finalRowOf(query, canonical.ModelA, canonical.ModelB,
			canonical.Preference, canonical.PreferenceReasons, models.StatusAgreed))
	}

	for _, query := range partition.Disagreed {
		if !snapshot.IsCompleted(query.QueryKey) {
			result.MissingAdjudications = append(result.MissingAdjudications, query.QueryKey)
			continue
		}
		record := snapshot[query.QueryKey]

		modelA := cloneRatings(query.Evaluator1.ModelA)
		modelB := cloneRatings(query.Evaluator1.ModelB)
		preference := query.Evaluator1.Preference
		preferenceReasons := query.Evaluator1.PreferenceReasons

		for _, key := range query.Disagreements {
			resolution, ok := record.Resolution(key)
			if !ok {
				continue
			}
			if key.IsPreference() {
				preference = resolution.Rating
				preferenceReasons = resolution.Findings
				continue
			}
			metric, side, ok := key.Metric()
			if !ok {
				continue
			}
			grade := models.MetricGrade{Rating: resolution.Rating, Findings: resolution.Findings}
			if side == models.ModelB {
				modelB[metric] = grade
			} else {
				modelA[metric] = grade
			}
		}

		result.Rows = append(result.Rows, finalRowOf(query, modelA, modelB,
			preference, preferenceReasons, models.StatusAdjudicated))
		result.AdjudicatedCount++
	}

	slices.SortStableFunc(result.Rows, func(a, b models.FinalDatasetRow) int {
		if c := int(a.Group) - int(b.Group); c != 0 {
			return c
		}
		return a.QueryNum - b.QueryNum
	})

	result.Calibration = calibrationRows(partition.Disagreed, snapshot)
	return result
}

// calibrationRows emits one report line per disagreed field of every
// completed query, in partition order. A field whose resolution went missing
// keeps its row with the adjudicated columns empty.
func calibrationRows(disagreed []models.QueryRecord, snapshot models.AdjudicationSnapshot,
) []models.CalibrationRow {
	rows := make([]models.CalibrationRow, 0, len(disagreed))
	for _, query := range disagreed {
		if !snapshot.IsCompleted(query.QueryKey) {
			continue
		}
		record := snapshot[query.QueryKey]

		for _, key := range query.Disagreements {
			model := models.CalibrationModelOf(key)
			if model == "" {
				continue
			}
			resolution, _ := record.Resolution(key)
			rows = append(rows, models.CalibrationRow{
				QueryKey:          query.QueryKey,
				PatientId:         query.PatientId,
				QueryNum:          query.QueryNum,
				Group:             query.Group,
				QueryType:         query.QueryType,
				Metric:            key,
				Model:             model,
				Evaluator1Name:    query.Evaluator1.Name,
				Evaluator2Name:    query.Evaluator2.Name,
				Evaluator1Rating:  query.Evaluator1.RatingFor(key),
				Evaluator2Rating:  query.Evaluator2.RatingFor(key),
				AdjudicatedRating: resolution.Rating,
				RootCause:         resolution.RootCause,
				RootCauseDetail:   resolution.RootCauseDetail,
			})
		}
	}
	return rows
}

func finalRowOf(query models.QueryRecord, modelA, modelB models.ModelRatings,
	preference, preferenceReasons, status string,
) models.FinalDatasetRow {
	return models.FinalDatasetRow{
		PatientId:         query.PatientId,
		QueryNum:          query.QueryNum,
		Group:             query.Group,
		QueryType:         query.QueryType,
		PhiDependency:     query.PhiDependency,
		PatientSummary:    query.PatientSummary,
		QueryText:         query.QueryText,
		ModelA:            modelA,
		ModelB:            modelB,
		Preference:        preference,
		PreferenceReasons: preferenceReasons,
		Status:            status,
	}
}

// canonicalOf falls back to evaluator 1's sheet: on an agreed query the two
// sheets are equal on every compared field.
func canonicalOf(query models.QueryRecord) models.CanonicalRatings {
	if query.Canonical != nil {
		return *query.Canonical
	}
	return models.CanonicalRatings{
		ModelA:            query.Evaluator1.ModelA,
		ModelB:            query.Evaluator1.ModelB,
		Preference:        query.Evaluator1.Preference,
		PreferenceReasons: query.Evaluator1.PreferenceReasons,
	}
}

func cloneRatings(ratings models.ModelRatings) models.ModelRatings {
	out := make(models.ModelRatings, len(ratings))
	for metric, grade := range ratings {
		out[metric] = grade
	}
	return out
}
