package models

import "time"

// MetricResolution is the reviewers' final verdict on one disagreed field.
// Preference resolutions use the same shape, with Findings holding the
// agreed preference reasons.
type MetricResolution struct {
	Rating          string
	Findings        string
	RootCause       string
	RootCauseDetail string
}

// Complete reports whether every mandatory field of the resolution is
// filled in.
func (r MetricResolution) Complete() bool {
	return r.Rating != "" && r.Findings != "" && IsRootCauseChosen(r.RootCause)
}

// AdjudicationRecord is the stored outcome of one disagreed query's review
// session. Completed records are never downgraded by recovery.
type AdjudicationRecord struct {
	QueryKey    string
	Completed   bool
	Timestamp   time.Time
	Resolutions map[ComparisonKey]MetricResolution
}

func (r AdjudicationRecord) Resolution(key ComparisonKey) (MetricResolution, bool) {
	res, ok := r.Resolutions[key]
	return res, ok
}

// AdjudicationSnapshot is the whole progress store, keyed by query key.
// Reads of a missing store yield an empty snapshot, never an error.
type AdjudicationSnapshot map[string]AdjudicationRecord

func (s AdjudicationSnapshot) IsCompleted(queryKey string) bool {
	rec, ok := s[queryKey]
	return ok && rec.Completed
}

// Recover merges mirror records into the snapshot. A record is written only
// when its key is absent locally or the local record is not completed:
// completed local records always win over remote echoes. Rows without a key
// or without resolutions are skipped. Returns the keys written, in input
// order.
func (s AdjudicationSnapshot) Recover(records []AdjudicationRecord) []string {
	applied := make([]string, 0, len(records))
	for _, record := range records {
		if record.QueryKey == "" || len(record.Resolutions) == 0 {
			continue
		}
		if s.IsCompleted(record.QueryKey) {
			continue
		}
		s[record.QueryKey] = record
		applied = append(applied, record.QueryKey)
	}
	return applied
}
