package preparation

import (
	"cmp"
	"slices"

	"github.com/hashicorp/go-set/v2"

	"github.com/gmkhealth/verdict-backend/models"
)

type queryIndexKey struct {
	patientId string
	queryNum  int
}

// BuildPartition matches each group's evaluator pair row by row and splits
// every query both evaluators rated into the agreed or the disagreed set.
// Rows from evaluators outside the group's pair are ignored, as are queries
// only one of the two rated. Both output lists sort by (group, query num).
func BuildPartition(rows []models.RatingsExportRow) models.Partition {
	var partition models.Partition

	for _, group := range models.AllGroups {
		e1Name, e2Name := group.Evaluators()
		e1Rows := indexGroupRows(rows, group, e1Name)
		e2Rows := indexGroupRows(rows, group, e2Name)

		for _, key := range sortedCommonKeys(e1Rows, e2Rows) {
			record := buildQueryRecord(group, e1Rows[key], e2Rows[key])
			if record.Agreed() {
				partition.Agreed = append(partition.Agreed, record)
			} else {
				partition.Disagreed = append(partition.Disagreed, record)
			}
		}
	}

	sortRecords(partition.Agreed)
	sortRecords(partition.Disagreed)
	return partition
}

func indexGroupRows(rows []models.RatingsExportRow, group models.Group, evaluator string) map[queryIndexKey]models.RatingsExportRow {
	index := make(map[queryIndexKey]models.RatingsExportRow)
	for _, row := range rows {
		if row.Group == group && row.Evaluator == evaluator {
			index[queryIndexKey{row.PatientId, row.QueryNum}] = row
		}
	}
	return index
}

func sortedCommonKeys(e1, e2 map[queryIndexKey]models.RatingsExportRow) []queryIndexKey {
	e1Keys := set.New[queryIndexKey](len(e1))
	for key := range e1 {
		e1Keys.Insert(key)
	}
	e2Keys := set.New[queryIndexKey](len(e2))
	for key := range e2 {
		e2Keys.Insert(key)
	}

	common := e1Keys.Intersect(e2Keys).Slice()
	slices.SortFunc(common, func(a, b queryIndexKey) int {
		if c := cmp.Compare(a.patientId, b.patientId); c != 0 {
			return c
		}
		return cmp.Compare(a.queryNum, b.queryNum)
	})
	return common
}

func buildQueryRecord(group models.Group, e1, e2 models.RatingsExportRow) models.QueryRecord {
	disagreements := ClassifyDisagreements(e1.Sheet, e2.Sheet)

	record := models.QueryRecord{
		QueryKey:       models.QueryKeyOf(e1.PatientId, e1.QueryNum),
		PatientId:      e1.PatientId,
		QueryNum:       e1.QueryNum,
		Group:          group,
		QueryType:      e1.QueryType,
		PhiDependency:  e1.PhiDependency,
		PatientSummary: e1.PatientSummary,
		QueryText:      e1.QueryText,
		Evaluator1:     e1.Sheet,
		Evaluator2:     e2.Sheet,
		Disagreements:  disagreements,
		NDisagreements: len(disagreements),
	}

	if record.Agreed() {
		record.Canonical = &models.CanonicalRatings{
			ModelA:            e1.Sheet.ModelA,
			ModelB:            e1.Sheet.ModelB,
			Preference:        e1.Sheet.Preference,
			PreferenceReasons: e1.Sheet.PreferenceReasons,
		}
	}
	return record
}

func sortRecords(records []models.QueryRecord) {
	slices.SortStableFunc(records, func(a, b models.QueryRecord) int {
		if c := cmp.Compare(a.Group, b.Group); c != 0 {
			return c
		}
		return cmp.Compare(a.QueryNum, b.QueryNum)
	})
}

// Summarize derives the statistics block logged after a prepare run:
// totals, disagreed counts per group, the disagreements-per-query histogram
// and the per-key counts with their share of disagreed queries, most
// frequent first.
func Summarize(partition models.Partition) models.PartitionSummary {
	summary := models.PartitionSummary{
		TotalQueries:   partition.Total(),
		AgreedCount:    len(partition.Agreed),
		DisagreedCount: len(partition.Disagreed),
	}

	for _, group := range models.AllGroups {
		summary.ByGroup = append(summary.ByGroup, models.PartitionGroupCount{
			Group: group,
			Count: len(partition.DisagreedByGroup(group)),
		})
	}

	byCount := make(map[int]int)
	byKey := make(map[models.ComparisonKey]int)
	for _, q := range partition.Disagreed {
		byCount[q.NDisagreements]++
		for _, key := range q.Disagreements {
			byKey[key]++
		}
	}

	counts := make([]int, 0, len(byCount))
	for n := range byCount {
		counts = append(counts, n)
	}
	slices.Sort(counts)
	for _, n := range counts {
		summary.ByCount = append(summary.ByCount, models.PartitionCountBucket{
			NDisagreements: n,
			Queries:        byCount[n],
		})
	}

	for _, key := range models.AllComparisonKeys() {
		count := byKey[key]
		if count == 0 {
			continue
		}
		entry := models.PartitionKeyCount{Key: key, Count: count}
		if summary.DisagreedCount > 0 {
			entry.Percent = float64(count) / float64(summary.DisagreedCount) * 100
		}
		summary.ByKey = append(summary.ByKey, entry)
	}
	slices.SortStableFunc(summary.ByKey, func(a, b models.PartitionKeyCount) int {
		return cmp.Compare(b.Count, a.Count)
	})

	return summary
}
