package models

// QueueEntry is one disagreed query as listed on the adjudication queue.
type QueueEntry struct {
	QueryKey       string
	PatientId      string
	QueryNum       int
	QueryType      string
	Disagreements  []ComparisonKey
	NDisagreements int
	Severity       Severity
	Completed      bool
}

// AdjudicationQueue is the queue screen payload for one group: the sorted
// entries (incomplete first, widest disagreement first), the group's
// progress and the evaluator pair under review. Recovered reports how many
// records an opportunistic mirror pull restored while loading, zero when
// none ran.
type AdjudicationQueue struct {
	Group      Group
	Evaluator1 string
	Evaluator2 string
	Entries    []QueueEntry
	Progress   ProgressStats
	Recovered  int
}

// ReviewBundle is everything the review screen needs for one query.
// Resolution is nil when the query has not been touched yet, DocLinks when
// the patient has no response documents registered.
type ReviewBundle struct {
	Query      QueryRecord
	Resolution *AdjudicationRecord
	DocLinks   *DocLinks
}

// SubmitOutcome reports a stored resolution and whether the mirror took the
// copy. Synced false means the data is safe locally only.
type SubmitOutcome struct {
	QueryKey string
	Synced   bool
	// NextQueryKey points at the next incomplete query of the group, empty
	// when the group is done.
	NextQueryKey string
}
