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

// Columns of the assignment dataset, by position. Only patient id, query
// number, summary and query text are shown to evaluators; group, query type
// and PHI dependency ride along for submissions.
const (
	datasetColPatientId = iota
	datasetColQueryNum
	datasetColGroup
	datasetColQueryType
	datasetColPhiDependency
	datasetColPatientSummary
	datasetColQueryText
)

type QueryDatasetRepository struct {
	blobRepository BlobRepository
}

func NewQueryDatasetRepository(blobRepository BlobRepository) QueryDatasetRepository {
	return QueryDatasetRepository{blobRepository: blobRepository}
}

func datasetCell(record []string, index int) string {
	if index >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[index])
}

// LoadQueryDataset reads the assignment dataset. Patient id and summary only
// appear on the first of each patient's rows and are forward-filled; rows
// with no patient id even after filling are dropped, as are rows whose group
// letter is unusable.
func (repo QueryDatasetRepository) LoadQueryDataset(ctx context.Context, bucketUrl, fileName string,
) ([]models.QueryDatasetRow, error) {
	file, err := repo.blobRepository.GetBlob(ctx, bucketUrl, fileName)
	if err != nil {
		return nil, err
	}
	defer file.ReadCloser.Close()

	reader := csv.NewReader(pure_utils.NewReaderWithoutBom(file.ReadCloser))
	reader.FieldsPerRecord = -1

	if _, err := reader.Read(); err != nil {
		return nil, errors.Wrapf(err, "failed to read header of %s", fileName)
	}

	var rows []models.QueryDatasetRow
	var lastPatientId, lastSummary string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read %s", fileName)
		}

		patientId := datasetCell(record, datasetColPatientId)
		if patientId == "" {
			patientId = lastPatientId
		} else {
			lastPatientId = patientId
		}
		summary := datasetCell(record, datasetColPatientSummary)
		if summary == "" {
			summary = lastSummary
		} else {
			lastSummary = summary
		}
		if patientId == "" {
			continue
		}

		group, err := models.GroupFromString(datasetCell(record, datasetColGroup))
		if err != nil {
			continue
		}

		rows = append(rows, models.QueryDatasetRow{
			PatientId:      patientId,
			QueryNum:       datasetCell(record, datasetColQueryNum),
			Group:          group,
			QueryType:      datasetCell(record, datasetColQueryType),
			PhiDependency:  datasetCell(record, datasetColPhiDependency),
			PatientSummary: summary,
			QueryText:      datasetCell(record, datasetColQueryText),
		})
	}
	return rows, nil
}
