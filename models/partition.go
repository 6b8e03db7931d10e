package models

// Partition is the outcome of classifying a ratings export: every common
// query of every evaluator pair lands in exactly one of the two lists, both
// sorted by (group, query number).
type Partition struct {
	Disagreed []QueryRecord
	Agreed    []QueryRecord
}

func (p Partition) Total() int {
	return len(p.Disagreed) + len(p.Agreed)
}

// DisagreedByGroup filters the disagreed list down to one group, keeping
// order.
func (p Partition) DisagreedByGroup(group Group) []QueryRecord {
	out := make([]QueryRecord, 0, len(p.Disagreed))
	for _, q := range p.Disagreed {
		if q.Group == group {
			out = append(out, q)
		}
	}
	return out
}

// Find looks a query up by key in the disagreed list.
func (p Partition) Find(queryKey string) (QueryRecord, bool) {
	for _, q := range p.Disagreed {
		if q.QueryKey == queryKey {
			return q, true
		}
	}
	return QueryRecord{}, false
}

// PartitionGroupCount is the disagreed-query count of one group.
type PartitionGroupCount struct {
	Group Group
	Count int
}

// PartitionCountBucket is one bar of the disagreements-per-query histogram.
type PartitionCountBucket struct {
	NDisagreements int
	Queries        int
}

// PartitionKeyCount counts how often one comparison key disagreed, with the
// share of disagreed queries it appears in.
type PartitionKeyCount struct {
	Key     ComparisonKey
	Count   int
	Percent float64
}

// PartitionSummary is the statistics block logged after a prepare run.
type PartitionSummary struct {
	TotalQueries   int
	AgreedCount    int
	DisagreedCount int
	ByGroup        []PartitionGroupCount
	ByCount        []PartitionCountBucket
	ByKey          []PartitionKeyCount
}
