package repositories

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/gmkhealth/verdict-backend/models"
	"github.com/gmkhealth/verdict-backend/pure_utils"
)

// RatingsExportRepository reads the wide ratings CSV exported from the
// evaluation sheet: one row per evaluator per query, metric columns repeated
// once per model.
type RatingsExportRepository struct {
	blobRepository BlobRepository
}

func NewRatingsExportRepository(blobRepository BlobRepository) RatingsExportRepository {
	return RatingsExportRepository{blobRepository: blobRepository}
}

// mangleDuplicateHeaders rewrites repeated column names as "name.1",
// "name.2", ... in order of appearance. The export carries the same metric
// headers once per model, and every downstream column reference expects the
// ".1" suffix on the second copy.
func mangleDuplicateHeaders(headers []string) []string {
	seen := make(map[string]int, len(headers))
	mangled := make([]string, len(headers))
	for i, header := range headers {
		name := strings.TrimSpace(header)
		count := seen[name]
		seen[name] = count + 1
		if count > 0 {
			name = fmt.Sprintf("%s.%d", name, count)
		}
		mangled[i] = name
	}
	return mangled
}

func (repo RatingsExportRepository) LoadRatingsExport(ctx context.Context, bucketUrl, fileName string,
) (models.RatingsExport, error) {
	file, err := repo.blobRepository.GetBlob(ctx, bucketUrl, fileName)
	if err != nil {
		return models.RatingsExport{}, err
	}
	defer file.ReadCloser.Close()

	reader := csv.NewReader(pure_utils.NewReaderWithoutBom(file.ReadCloser))
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return models.RatingsExport{}, errors.Wrapf(err, "failed to read header of %s", fileName)
	}
	headers = mangleDuplicateHeaders(headers)

	export := models.RatingsExport{Headers: headers}
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return models.RatingsExport{}, errors.Wrapf(err, "failed to read %s", fileName)
		}
		line++

		values := make(map[string]string, len(headers))
		for i, header := range headers {
			if i < len(record) {
				values[header] = record[i]
			}
		}
		export.Rows = append(export.Rows, models.RawExportRow{Line: line, Values: values})
	}
	return export, nil
}
