package models

import (
	"fmt"
	"strconv"
	"strings"
)

// ComparisonVerdict is the final stage of an evaluation: the overall pick
// between the two model responses.
type ComparisonVerdict struct {
	Preference        string
	PreferenceReasons string
}

// EvaluationRecord tracks one evaluator's pass over one query: the three
// stages (grade model A, grade model B, compare) with their data. Stage
// flags survive even when the underlying data was lost, so recovery can
// mark work done without restoring its content.
type EvaluationRecord struct {
	Evaluator      string
	PatientId      string
	QueryNum       string
	Started        bool
	ModelAGraded   bool
	ModelBGraded   bool
	ComparisonDone bool
	ModelAData     ModelRatings
	ModelBData     ModelRatings
	Comparison     ComparisonVerdict
}

func (r EvaluationRecord) Key() string {
	return EvaluationKey(r.Evaluator, r.PatientId, r.QueryNum)
}

func (r *EvaluationRecord) SetGraded(side ModelSide, data ModelRatings) {
	if side == ModelB {
		r.ModelBData = data
		r.ModelBGraded = true
	} else {
		r.ModelAData = data
		r.ModelAGraded = true
	}
	r.Started = true
}

// EvaluationSnapshot is the whole evaluation store, keyed by
// evaluator_patient_querynum.
type EvaluationSnapshot map[string]EvaluationRecord

// RecoverSubmissions marks every submitted query as fully evaluated. Existing
// records keep their grade data and only get their stage flags raised; new
// records carry flags without data, which is all the mirror retains.
// Submissions missing any identity field are skipped. Returns the store keys
// applied, in input order.
func (s EvaluationSnapshot) RecoverSubmissions(submissions []EvaluationSubmission) []string {
	applied := make([]string, 0, len(submissions))
	for _, submission := range submissions {
		evaluator := strings.TrimSpace(submission.Evaluator)
		patientId := strings.TrimSpace(submission.PatientId)
		queryNum := NormalizeQueryNum(submission.QueryNum)
		if evaluator == "" || patientId == "" || queryNum == "" {
			continue
		}
		key := EvaluationKey(evaluator, patientId, queryNum)
		record, ok := s[key]
		if !ok {
			record = EvaluationRecord{Evaluator: evaluator, PatientId: patientId, QueryNum: queryNum}
		}
		record.Started = true
		record.ModelAGraded = true
		record.ModelBGraded = true
		record.ComparisonDone = true
		s[key] = record
		applied = append(applied, key)
	}
	return applied
}

// EvaluationOutcome reports a stored comparison and whether the mirror took
// the copy. The next fields point at the evaluator's next assigned query in
// dataset order, both empty when the assignment is finished.
type EvaluationOutcome struct {
	Key           string
	Synced        bool
	NextPatientId string
	NextQueryNum  string
}

// EvaluationKey builds the store key. Query numbers keep their string form
// because the legacy store carries them as "1.0"-style decimals.
func EvaluationKey(evaluator, patientId, queryNum string) string {
	return fmt.Sprintf("%s_%s_%s", evaluator, patientId, queryNum)
}

// ParseEvaluationKey splits a store key back into its parts. Evaluator names
// and query numbers never contain underscores, so the first and last
// separators are unambiguous even when a patient id embeds one.
func ParseEvaluationKey(key string) (evaluator, patientId, queryNum string, ok bool) {
	first := strings.Index(key, "_")
	last := strings.LastIndex(key, "_")
	if first < 0 || last <= first {
		return "", "", "", false
	}
	return key[:first], key[first+1 : last], key[last+1:], true
}

// NormalizeQueryNum rewrites whole numbers to the "1.0" decimal form the
// assignment keys use. Recovery inputs arrive as "1", "1.0" or free text;
// non-numeric values pass through unchanged.
func NormalizeQueryNum(queryNum string) string {
	trimmed := strings.TrimSpace(queryNum)
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return trimmed
	}
	if f == float64(int64(f)) {
		return fmt.Sprintf("%.1f", f)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
