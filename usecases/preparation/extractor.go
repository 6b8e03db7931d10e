// Package preparation turns the wide ratings export into the agreed and
// disagreed partitions consumed by the adjudication tool. All of it is pure
// data transformation over extracted rows.
package preparation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/gmkhealth/verdict-backend/models"
)

const (
	columnEvaluator      = "Evaluator"
	columnGroup          = "Group"
	columnPatientId      = "Patient ID"
	columnQueryNum       = "Query"
	columnQueryType      = "Query Type"
	columnPhiDependency  = "PHI Dependency"
	columnPatientSummary = "Patient Summary (Ground Truth)"
	columnQueryText      = "Query.1"
	columnPreference     = "Model Preference"
	columnPrefReasons    = "Preference Reasons"
)

// RequiredColumns lists every header the extractor reads: identity and
// context columns plus the rating and findings columns of both model sides.
func RequiredColumns() []string {
	cols := []string{
		columnEvaluator,
		columnGroup,
		columnPatientId,
		columnQueryNum,
		columnQueryType,
		columnPhiDependency,
		columnPatientSummary,
		columnQueryText,
		columnPreference,
		columnPrefReasons,
	}
	for _, side := range models.BothModelSides {
		for _, m := range models.AllMetrics {
			cols = append(cols,
				m.RatingColumn()+side.ColumnSuffix(),
				m.FindingsColumn()+side.ColumnSuffix())
		}
	}
	return cols
}

// ValidateExport fails fast when the export is missing any expected column.
// A missing column would otherwise read as an empty rating for the whole
// table, which must never happen silently.
func ValidateExport(export models.RatingsExport) error {
	present := make(map[string]bool, len(export.Headers))
	for _, h := range export.Headers {
		present[h] = true
	}
	var missing []string
	for _, col := range RequiredColumns() {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return errors.Wrap(models.ErrMissingColumn,
			fmt.Sprintf("missing columns: %s", strings.Join(missing, ", ")))
	}
	return nil
}

// ExtractRows validates the export then lifts every row into a typed record.
// Cells are whitespace-trimmed; a missing cell reads as the empty string.
func ExtractRows(export models.RatingsExport) ([]models.RatingsExportRow, error) {
	if err := ValidateExport(export); err != nil {
		return nil, err
	}

	rows := make([]models.RatingsExportRow, 0, len(export.Rows))
	for _, raw := range export.Rows {
		row, err := extractRow(raw)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func extractRow(raw models.RawExportRow) (models.RatingsExportRow, error) {
	group, err := models.GroupFromString(clean(raw.Get(columnGroup)))
	if err != nil {
		return models.RatingsExportRow{}, errors.Wrap(err,
			fmt.Sprintf("line %d", raw.Line))
	}
	queryNum, err := parseQueryNum(raw.Get(columnQueryNum))
	if err != nil {
		return models.RatingsExportRow{}, errors.Wrap(err,
			fmt.Sprintf("line %d", raw.Line))
	}

	evaluator := clean(raw.Get(columnEvaluator))
	return models.RatingsExportRow{
		Evaluator:      evaluator,
		Group:          group,
		PatientId:      clean(raw.Get(columnPatientId)),
		QueryNum:       queryNum,
		QueryType:      clean(raw.Get(columnQueryType)),
		PhiDependency:  clean(raw.Get(columnPhiDependency)),
		PatientSummary: clean(raw.Get(columnPatientSummary)),
		QueryText:      clean(raw.Get(columnQueryText)),
		Sheet: models.EvaluatorSheet{
			Name:              evaluator,
			ModelA:            extractModelRatings(raw, models.ModelA),
			ModelB:            extractModelRatings(raw, models.ModelB),
			Preference:        clean(raw.Get(columnPreference)),
			PreferenceReasons: clean(raw.Get(columnPrefReasons)),
		},
	}, nil
}

func extractModelRatings(raw models.RawExportRow, side models.ModelSide) models.ModelRatings {
	ratings := make(models.ModelRatings, len(models.AllMetrics))
	for _, m := range models.AllMetrics {
		ratings[m] = models.MetricGrade{
			Rating:   clean(raw.Get(m.RatingColumn() + side.ColumnSuffix())),
			Findings: clean(raw.Get(m.FindingsColumn() + side.ColumnSuffix())),
		}
	}
	return ratings
}

// parseQueryNum accepts the export's "3" and "3.0" spellings of a query
// number. Anything non-numeric aborts the batch.
func parseQueryNum(s string) (int, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f != float64(int(f)) {
		return 0, errors.Wrap(models.ErrMalformedQueryNum,
			fmt.Sprintf("query number %q", s))
	}
	return int(f), nil
}

func clean(s string) string {
	return strings.TrimSpace(s)
}
