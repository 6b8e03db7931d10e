package models

// Adjudication status values of the merged dataset.
const (
	StatusAgreed      = "agreed"
	StatusAdjudicated = "adjudicated"
)

// FinalDatasetRow is one row of the merged canonical dataset: the query
// context plus a single resolved verdict per compared field. Status records
// whether the verdict came straight from agreement or through adjudication.
type FinalDatasetRow struct {
	PatientId         string
	QueryNum          int
	Group             Group
	QueryType         string
	PhiDependency     string
	PatientSummary    string
	QueryText         string
	ModelA            ModelRatings
	ModelB            ModelRatings
	Preference        string
	PreferenceReasons string
	Status            string
}

func (r FinalDatasetRow) Ratings(side ModelSide) ModelRatings {
	if side == ModelB {
		return r.ModelB
	}
	return r.ModelA
}

// MergeResult is the outcome of a merge run. Queries whose adjudication is
// absent or incomplete are excluded from Rows and listed in
// MissingAdjudications instead.
type MergeResult struct {
	Rows                 []FinalDatasetRow
	Calibration          []CalibrationRow
	AgreedCount          int
	AdjudicatedCount     int
	MissingAdjudications []string
}
