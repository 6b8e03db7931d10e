package models

// RawExportRow is one unparsed row of the wide ratings export, header to
// cell value. Line tracks the CSV line for error messages.
type RawExportRow struct {
	Line   int
	Values map[string]string
}

func (r RawExportRow) Get(column string) string {
	return r.Values[column]
}

// RatingsExport is the loaded ratings CSV: the header list for fail-fast
// column validation plus every data row.
type RatingsExport struct {
	Headers []string
	Rows    []RawExportRow
}

// RatingsExportRow is one validated, extracted row: a single evaluator's
// full sheet for a single query, with the query context.
type RatingsExportRow struct {
	Evaluator      string
	Group          Group
	PatientId      string
	QueryNum       int
	QueryType      string
	PhiDependency  string
	PatientSummary string
	QueryText      string
	Sheet          EvaluatorSheet
}
