package dto

import (
	"github.com/gmkhealth/verdict-backend/models"
	"github.com/gmkhealth/verdict-backend/pure_utils"
)

type QueueEntry struct {
	QueryKey       string   `json:"query_key"`
	PatientId      string   `json:"patient_id"`
	QueryNum       int      `json:"query_num"`
	QueryType      string   `json:"query_type"`
	Disagreements  []string `json:"disagreements"`
	Labels         []string `json:"labels"`
	NDisagreements int      `json:"n_disagreements"`
	Severity       string   `json:"severity"`
	Completed      bool     `json:"completed"`
}

func AdaptQueueEntryDto(entry models.QueueEntry) QueueEntry {
	return QueueEntry{
		QueryKey:  entry.QueryKey,
		PatientId: entry.PatientId,
		QueryNum:  entry.QueryNum,
		QueryType: entry.QueryType,
		Disagreements: pure_utils.Map(entry.Disagreements,
			func(k models.ComparisonKey) string { return string(k) }),
		Labels: pure_utils.Map(entry.Disagreements,
			func(k models.ComparisonKey) string { return k.DisplayName() }),
		NDisagreements: entry.NDisagreements,
		Severity:       entry.Severity.String(),
		Completed:      entry.Completed,
	}
}

type AdjudicationQueue struct {
	Group      string        `json:"group"`
	Evaluator1 string        `json:"evaluator_1"`
	Evaluator2 string        `json:"evaluator_2"`
	Entries    []QueueEntry  `json:"entries"`
	Progress   ProgressStats `json:"progress"`
	Recovered  int           `json:"recovered,omitempty"`
}

func AdaptAdjudicationQueueDto(queue models.AdjudicationQueue) AdjudicationQueue {
	return AdjudicationQueue{
		Group:      queue.Group.String(),
		Evaluator1: queue.Evaluator1,
		Evaluator2: queue.Evaluator2,
		Entries:    pure_utils.Map(queue.Entries, AdaptQueueEntryDto),
		Progress:   AdaptProgressStatsDto(queue.Progress),
		Recovered:  queue.Recovered,
	}
}
