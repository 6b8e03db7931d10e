package repositories

import (
	"context"
	"encoding/csv"
	"io"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/gmkhealth/verdict-backend/models"
	"github.com/gmkhealth/verdict-backend/pure_utils"
)

// SubmissionsExportRepository reads a CSV export of the evaluation submission
// sheet, used to rebuild local progress after the store was lost. Only the
// identifying columns matter; everything else in the export is ignored.
type SubmissionsExportRepository struct {
	blobRepository BlobRepository
}

func NewSubmissionsExportRepository(blobRepository BlobRepository) SubmissionsExportRepository {
	return SubmissionsExportRepository{blobRepository: blobRepository}
}

// submissionCell reads the first non-empty cell of the candidate columns.
// Exports made without the header row fall back to sheet letter headers.
func submissionCell(values map[string]string, columns ...string) string {
	for _, column := range columns {
		if value := strings.TrimSpace(values[column]); value != "" {
			return value
		}
	}
	return ""
}

func (repo SubmissionsExportRepository) LoadSubmissionsExport(ctx context.Context, bucketUrl, fileName string,
) ([]models.EvaluationSubmission, error) {
	file, err := repo.blobRepository.GetBlob(ctx, bucketUrl, fileName)
	if err != nil {
		return nil, err
	}
	defer file.ReadCloser.Close()

	reader := csv.NewReader(pure_utils.NewReaderWithoutBom(file.ReadCloser))
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read header of %s", fileName)
	}
	headers = mangleDuplicateHeaders(headers)

	var submissions []models.EvaluationSubmission
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read %s", fileName)
		}

		values := make(map[string]string, len(headers))
		for i, header := range headers {
			if i < len(record) {
				values[header] = record[i]
			}
		}

		submission := models.EvaluationSubmission{
			Evaluator: submissionCell(values, "Evaluator #", "AX"),
			PatientId: submissionCell(values, "Patient ID", "A"),
			QueryNum:  submissionCell(values, "Query", "B"),
		}
		if submission.Evaluator == "" || submission.PatientId == "" || submission.QueryNum == "" {
			continue
		}
		submissions = append(submissions, submission)
	}
	return submissions, nil
}
