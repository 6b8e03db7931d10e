package models

// QueryDatasetRow is one row of the assignment dataset, read by column
// position. Patient id and summary are forward-filled from the previous row
// when blank; the query number keeps the sheet's decimal string form.
type QueryDatasetRow struct {
	PatientId      string
	QueryNum       string
	Group          Group
	QueryType      string
	PhiDependency  string
	PatientSummary string
	QueryText      string
}
