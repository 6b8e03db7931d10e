package repositories

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmkhealth/verdict-backend/models"
)

func sampleSheet(name, preference string) models.EvaluatorSheet {
	return models.EvaluatorSheet{
		Name:              name,
		ModelA:            sampleRatings("No Hallucination", "clean"),
		ModelB:            sampleRatings("Yes Hallucination", "invented follow-up"),
		Preference:        preference,
		PreferenceReasons: "reads better",
	}
}

func TestPartitionRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	bucketUrl, _ := testBucket(t)
	repo := NewPartitionRepository(NewBlobRepository())

	disagreed := models.QueryRecord{
		QueryKey:       "PT-3_1",
		PatientId:      "PT-3",
		QueryNum:       1,
		Group:          models.GroupB,
		QueryType:      "Medication",
		PhiDependency:  "Yes",
		PatientSummary: "62yo with CHF",
		QueryText:      "Can I double my dose?",
		Evaluator1:     sampleSheet("Evaluator 3", "Model A"),
		Evaluator2:     sampleSheet("Evaluator 4", "Model B"),
		Disagreements:  []models.ComparisonKey{"hallucination_b", "preference"},
		NDisagreements: 2,
	}
	agreed := models.QueryRecord{
		QueryKey:   "PT-5_2",
		PatientId:  "PT-5",
		QueryNum:   2,
		Group:      models.GroupB,
		QueryType:  "Labs",
		Evaluator1: sampleSheet("Evaluator 3", "Model A"),
		Evaluator2: sampleSheet("Evaluator 4", "Model A"),
		Canonical: &models.CanonicalRatings{
			ModelA:            sampleRatings("No Hallucination", "clean"),
			ModelB:            sampleRatings("Yes Hallucination", "invented follow-up"),
			Preference:        "Model A",
			PreferenceReasons: "reads better",
		},
	}

	require.NoError(t, repo.SavePartition(ctx, bucketUrl, models.Partition{
		Disagreed: []models.QueryRecord{disagreed},
		Agreed:    []models.QueryRecord{agreed},
	}))

	partition, err := repo.LoadPartition(ctx, bucketUrl)
	require.NoError(t, err)
	require.Len(t, partition.Disagreed, 1)
	require.Len(t, partition.Agreed, 1)

	got := partition.Disagreed[0]
	assert.Equal(t, disagreed.QueryKey, got.QueryKey)
	assert.Equal(t, models.GroupB, got.Group)
	assert.Equal(t, disagreed.Disagreements, got.Disagreements)
	assert.Equal(t, disagreed.Evaluator1.ModelA, got.Evaluator1.ModelA)
	assert.Nil(t, got.Canonical)

	gotAgreed := partition.Agreed[0]
	require.NotNil(t, gotAgreed.Canonical)
	assert.Equal(t, "Model A", gotAgreed.Canonical.Preference)
	assert.Equal(t, agreed.Canonical.ModelB, gotAgreed.Canonical.ModelB)
	assert.True(t, gotAgreed.Agreed())
}

func TestPartitionRepositoryMissingDisagreements(t *testing.T) {
	ctx := context.Background()
	bucketUrl, _ := testBucket(t)
	repo := NewPartitionRepository(NewBlobRepository())

	_, err := repo.LoadDisagreements(ctx, bucketUrl)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.NotFoundError)
	assert.ErrorContains(t, err, "run the adjudication preparation first")
}

func TestPartitionRepositoryDropsUnusableRecords(t *testing.T) {
	ctx := context.Background()
	bucketUrl, dir := testBucket(t)
	repo := NewPartitionRepository(NewBlobRepository())

	doc := []map[string]any{
		{"query_key": "PT-1_1", "patient_id": "PT-1", "query_num": 1, "group": "A"},
		{"query_key": "PT-9_9", "patient_id": "PT-9", "query_num": 9, "group": "D"},
	}
	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, disagreementsFileName), raw, 0o644))

	records, err := repo.LoadDisagreements(ctx, bucketUrl)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "PT-1_1", records[0].QueryKey)
}

// Sheets are serialized as flat rating maps: "{metric}" for the rating,
// "{metric}_findings" for the text, every metric key present.
func TestPartitionRepositoryFlatSheetFormat(t *testing.T) {
	ctx := context.Background()
	bucketUrl, dir := testBucket(t)
	repo := NewPartitionRepository(NewBlobRepository())

	record := models.QueryRecord{
		QueryKey:  "PT-2_4",
		PatientId: "PT-2",
		QueryNum:  4,
		Group:     models.GroupA,
		Evaluator1: models.EvaluatorSheet{
			Name: "Evaluator 1",
			ModelA: models.ModelRatings{
				models.MetricFlow: {Rating: "Yes, flow issues", Findings: "abrupt ending"},
			},
		},
		Disagreements:  []models.ComparisonKey{"flow_a"},
		NDisagreements: 1,
	}
	require.NoError(t, repo.SavePartition(ctx, bucketUrl, models.Partition{
		Disagreed: []models.QueryRecord{record},
	}))

	raw, err := os.ReadFile(filepath.Join(dir, disagreementsFileName))
	require.NoError(t, err)

	var doc []struct {
		Group      string `json:"group"`
		Evaluator1 struct {
			Name   string            `json:"name"`
			ModelA map[string]string `json:"model_a"`
		} `json:"evaluator_1"`
		Canonical *json.RawMessage `json:"canonical"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))
	require.Len(t, doc, 1)

	assert.Equal(t, "A", doc[0].Group)
	assert.Equal(t, "Evaluator 1", doc[0].Evaluator1.Name)
	assert.Equal(t, "Yes, flow issues", doc[0].Evaluator1.ModelA["flow"])
	assert.Equal(t, "abrupt ending", doc[0].Evaluator1.ModelA["flow_findings"])
	assert.Len(t, doc[0].Evaluator1.ModelA, 2*len(models.AllMetrics))
	assert.Nil(t, doc[0].Canonical, "agreed-only canonical must be omitted")
}

func TestPartitionRepositoryDocLinks(t *testing.T) {
	ctx := context.Background()
	bucketUrl, dir := testBucket(t)
	repo := NewPartitionRepository(NewBlobRepository())

	links, err := repo.LoadDocLinks(ctx, bucketUrl)
	require.NoError(t, err)
	assert.Empty(t, links)

	raw := []byte(`{"PT-1": {"model_a_url": "https://docs/pt1-a", "model_b_url": "https://docs/pt1-b"}}`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, docLinksFileName), raw, 0o644))

	links, err = repo.LoadDocLinks(ctx, bucketUrl)
	require.NoError(t, err)
	assert.Equal(t, models.DocLinksMap{
		"PT-1": {ModelAUrl: "https://docs/pt1-a", ModelBUrl: "https://docs/pt1-b"},
	}, links)
}
