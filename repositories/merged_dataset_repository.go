package repositories

import (
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/cockroachdb/errors"

	"github.com/gmkhealth/verdict-backend/models"
)

const (
	finalDatasetFileName      = "final_adjudicated.csv"
	calibrationReportFileName = "calibration_report.csv"
)

// MergedDatasetRepository writes the merge outputs: the canonical resolved
// dataset and the per-metric calibration report.
type MergedDatasetRepository struct {
	blobRepository BlobRepository
}

func NewMergedDatasetRepository(blobRepository BlobRepository) MergedDatasetRepository {
	return MergedDatasetRepository{blobRepository: blobRepository}
}

func finalDatasetHeaders() []string {
	headers := []string{
		"Patient ID", "Query", "Group", "Query Type", "PHI Dependency",
		"Patient Summary", "Query Text",
	}
	for _, side := range []models.ModelSide{models.ModelA, models.ModelB} {
		for _, metric := range models.AllMetrics {
			headers = append(headers,
				fmt.Sprintf("%s - %s", side.Label(), metric.RatingColumn()),
				fmt.Sprintf("%s - %s", side.Label(), metric.MergedFindingsColumn()))
		}
	}
	return append(headers, "Model Preference", "Preference Reasons", "Adjudication Status")
}

func finalDatasetRecord(row models.FinalDatasetRow) []string {
	record := []string{
		row.PatientId,
		strconv.Itoa(row.QueryNum),
		row.Group.Letter(),
		row.QueryType,
		row.PhiDependency,
		row.PatientSummary,
		row.QueryText,
	}
	for _, side := range []models.ModelSide{models.ModelA, models.ModelB} {
		ratings := row.Ratings(side)
		for _, metric := range models.AllMetrics {
			grade := ratings.Grade(metric)
			record = append(record, grade.Rating, grade.Findings)
		}
	}
	return append(record, row.Preference, row.PreferenceReasons, row.Status)
}

func (repo MergedDatasetRepository) SaveFinalDataset(ctx context.Context, bucketUrl string,
	rows []models.FinalDatasetRow,
) error {
	records := make([][]string, 0, len(rows)+1)
	records = append(records, finalDatasetHeaders())
	for _, row := range rows {
		records = append(records, finalDatasetRecord(row))
	}
	return repo.writeCsv(ctx, bucketUrl, finalDatasetFileName, records)
}

func calibrationHeaders() []string {
	return []string{
		"query_key", "patient_id", "query_num", "group", "query_type",
		"metric", "model", "evaluator_1_name", "evaluator_2_name",
		"evaluator_1_rating", "evaluator_2_rating", "adjudicated_rating",
		"root_cause", "root_cause_detail",
	}
}

func calibrationRecord(row models.CalibrationRow) []string {
	return []string{
		row.QueryKey,
		row.PatientId,
		strconv.Itoa(row.QueryNum),
		row.Group.Letter(),
		row.QueryType,
		string(row.Metric),
		row.Model,
		row.Evaluator1Name,
		row.Evaluator2Name,
		row.Evaluator1Rating,
		row.Evaluator2Rating,
		row.AdjudicatedRating,
		row.RootCause,
		row.RootCauseDetail,
	}
}

func (repo MergedDatasetRepository) SaveCalibrationReport(ctx context.Context, bucketUrl string,
	rows []models.CalibrationRow,
) error {
	records := make([][]string, 0, len(rows)+1)
	records = append(records, calibrationHeaders())
	for _, row := range rows {
		records = append(records, calibrationRecord(row))
	}
	return repo.writeCsv(ctx, bucketUrl, calibrationReportFileName, records)
}

func (repo MergedDatasetRepository) writeCsv(ctx context.Context, bucketUrl, fileName string,
	records [][]string,
) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	writer, err := repo.blobRepository.OpenStream(ctx, bucketUrl, fileName)
	if err != nil {
		return err
	}
	csvWriter := csv.NewWriter(writer)
	if err := csvWriter.WriteAll(records); err != nil {
		cancel()
		_ = writer.Close()
		return errors.Wrapf(err, "failed to write %s", fileName)
	}
	return errors.Wrapf(writer.Close(), "failed to write %s", fileName)
}
