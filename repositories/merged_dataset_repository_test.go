package repositories

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmkhealth/verdict-backend/models"
)

func TestSaveFinalDatasetColumnOrder(t *testing.T) {
	ctx := context.Background()
	bucketUrl, dir := testBucket(t)
	repo := NewMergedDatasetRepository(NewBlobRepository())

	row := models.FinalDatasetRow{
		PatientId:      "PT-1",
		QueryNum:       3,
		Group:          models.GroupC,
		QueryType:      "Medication",
		PhiDependency:  "Yes",
		PatientSummary: "71yo with CKD",
		QueryText:      "Is ibuprofen safe for me?",
		ModelA: models.ModelRatings{
			models.MetricSource: {Rating: "No source issues (Pass)", Findings: "all cited"},
		},
		ModelB: models.ModelRatings{
			models.MetricHallucination: {Rating: "Yes Hallucination", Findings: "invented a creatinine value"},
		},
		Preference:        "Model A",
		PreferenceReasons: "safer guidance",
		Status:            models.StatusAdjudicated,
	}
	require.NoError(t, repo.SaveFinalDataset(ctx, bucketUrl, []models.FinalDatasetRow{row}))

	raw, err := os.ReadFile(filepath.Join(dir, finalDatasetFileName))
	require.NoError(t, err)
	records, err := csv.NewReader(strings.NewReader(string(raw))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	header := records[0]
	assert.Equal(t, []string{
		"Patient ID", "Query", "Group", "Query Type", "PHI Dependency",
		"Patient Summary", "Query Text",
	}, header[:7])
	assert.Equal(t, "Model A - Source Accuracy", header[7])
	assert.Equal(t, "Model A - Source Accuracy Findings", header[8])
	// the merged export title-cases the hallucination findings header
	assert.Equal(t, "Model A - Hallucination Findings", header[10])
	assert.Equal(t, "Model B - Source Accuracy", header[19])
	assert.Equal(t, []string{"Model Preference", "Preference Reasons", "Adjudication Status"},
		header[len(header)-3:])
	assert.Len(t, header, 7+4*len(models.AllMetrics)+3)

	data := records[1]
	assert.Equal(t, "PT-1", data[0])
	assert.Equal(t, "3", data[1])
	assert.Equal(t, "C", data[2])
	assert.Equal(t, "No source issues (Pass)", data[7])
	assert.Equal(t, "all cited", data[8])
	assert.Equal(t, "Yes Hallucination", data[21])
	assert.Equal(t, models.StatusAdjudicated, data[len(data)-1])
}

func TestSaveCalibrationReport(t *testing.T) {
	ctx := context.Background()
	bucketUrl, dir := testBucket(t)
	repo := NewMergedDatasetRepository(NewBlobRepository())

	rows := []models.CalibrationRow{
		{
			QueryKey:          "PT-1_3",
			PatientId:         "PT-1",
			QueryNum:          3,
			Group:             models.GroupA,
			QueryType:         "Medication",
			Metric:            "hallucination_b",
			Model:             "B",
			Evaluator1Name:    "Evaluator 1",
			Evaluator2Name:    "Evaluator 2",
			Evaluator1Rating:  "No Hallucination",
			Evaluator2Rating:  "Yes Hallucination",
			AdjudicatedRating: "Yes Hallucination",
			RootCause:         "Model error",
			RootCauseDetail:   "fabricated lab value",
		},
		{
			QueryKey: "PT-1_3",
			Group:    models.GroupA,
			Metric:   "preference",
			Model:    "comparison",
		},
	}
	require.NoError(t, repo.SaveCalibrationReport(ctx, bucketUrl, rows))

	raw, err := os.ReadFile(filepath.Join(dir, calibrationReportFileName))
	require.NoError(t, err)
	records, err := csv.NewReader(strings.NewReader(string(raw))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{
		"query_key", "patient_id", "query_num", "group", "query_type",
		"metric", "model", "evaluator_1_name", "evaluator_2_name",
		"evaluator_1_rating", "evaluator_2_rating", "adjudicated_rating",
		"root_cause", "root_cause_detail",
	}, records[0])
	assert.Equal(t, "hallucination_b", records[1][5])
	assert.Equal(t, "B", records[1][6])
	assert.Equal(t, "comparison", records[2][6])
}
