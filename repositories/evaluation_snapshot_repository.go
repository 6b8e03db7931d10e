package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/gmkhealth/verdict-backend/models"
	"github.com/gmkhealth/verdict-backend/utils"
)

const evaluationsFileName = "evaluations.json"

// fileEvaluationRecord is one record of evaluations.json. Stage data maps
// carry the form fields keyed "{metric}_yes_no" / "{metric}_explain"; the
// comparison map is empty until the comparison stage is submitted.
type fileEvaluationRecord struct {
	Started        bool              `json:"started"`
	ModelAGraded   bool              `json:"model_a_graded"`
	ModelBGraded   bool              `json:"model_b_graded"`
	ComparisonDone bool              `json:"comparison_done"`
	ModelAData     map[string]string `json:"model_a_data"`
	ModelBData     map[string]string `json:"model_b_data"`
	ComparisonData map[string]string `json:"comparison_data"`
}

func stageDataOfGrades(ratings models.ModelRatings) map[string]string {
	if len(ratings) == 0 {
		return map[string]string{}
	}
	data := make(map[string]string, 2*len(models.AllMetrics))
	for _, metric := range models.AllMetrics {
		grade := ratings.Grade(metric)
		data[fmt.Sprintf("%s_yes_no", metric.Key())] = grade.Rating
		data[fmt.Sprintf("%s_explain", metric.Key())] = grade.Findings
	}
	return data
}

func gradesOfStageData(data map[string]string) models.ModelRatings {
	if len(data) == 0 {
		return nil
	}
	ratings := make(models.ModelRatings, len(models.AllMetrics))
	for _, metric := range models.AllMetrics {
		ratings[metric] = models.MetricGrade{
			Rating:   data[fmt.Sprintf("%s_yes_no", metric.Key())],
			Findings: data[fmt.Sprintf("%s_explain", metric.Key())],
		}
	}
	return ratings
}

func adaptEvaluationRecord(key string, file fileEvaluationRecord) (models.EvaluationRecord, bool) {
	evaluator, patientId, queryNum, ok := models.ParseEvaluationKey(key)
	if !ok {
		return models.EvaluationRecord{}, false
	}
	return models.EvaluationRecord{
		Evaluator:      evaluator,
		PatientId:      patientId,
		QueryNum:       queryNum,
		Started:        file.Started,
		ModelAGraded:   file.ModelAGraded,
		ModelBGraded:   file.ModelBGraded,
		ComparisonDone: file.ComparisonDone,
		ModelAData:     gradesOfStageData(file.ModelAData),
		ModelBData:     gradesOfStageData(file.ModelBData),
		Comparison: models.ComparisonVerdict{
			Preference:        file.ComparisonData["preference"],
			PreferenceReasons: file.ComparisonData["preference_reasons"],
		},
	}, true
}

func adaptFileEvaluationRecord(record models.EvaluationRecord) fileEvaluationRecord {
	comparison := map[string]string{}
	if record.Comparison != (models.ComparisonVerdict{}) {
		comparison = map[string]string{
			"preference":         record.Comparison.Preference,
			"preference_reasons": record.Comparison.PreferenceReasons,
		}
	}
	return fileEvaluationRecord{
		Started:        record.Started,
		ModelAGraded:   record.ModelAGraded,
		ModelBGraded:   record.ModelBGraded,
		ComparisonDone: record.ComparisonDone,
		ModelAData:     stageDataOfGrades(record.ModelAData),
		ModelBData:     stageDataOfGrades(record.ModelBData),
		ComparisonData: comparison,
	}
}

type EvaluationSnapshotRepository struct {
	blobRepository BlobRepository
}

func NewEvaluationSnapshotRepository(blobRepository BlobRepository) EvaluationSnapshotRepository {
	return EvaluationSnapshotRepository{blobRepository: blobRepository}
}

// LoadSnapshot reads the whole evaluation store. Missing or unreadable files
// yield an empty snapshot. Records whose key does not split into
// evaluator_patient_querynum are dropped: no lookup can ever reach them.
func (repo EvaluationSnapshotRepository) LoadSnapshot(ctx context.Context, bucketUrl string,
) (models.EvaluationSnapshot, error) {
	file, err := repo.blobRepository.GetBlob(ctx, bucketUrl, evaluationsFileName)
	if err != nil {
		if errors.Is(err, models.NotFoundError) {
			return models.EvaluationSnapshot{}, nil
		}
		return nil, err
	}
	defer file.ReadCloser.Close()

	var doc map[string]fileEvaluationRecord
	if err := json.NewDecoder(file.ReadCloser).Decode(&doc); err != nil {
		utils.LoggerFromContext(ctx).WarnContext(ctx,
			"unreadable evaluations file, starting from an empty store",
			"error", err.Error())
		return models.EvaluationSnapshot{}, nil
	}

	snapshot := make(models.EvaluationSnapshot, len(doc))
	for key, fileRecord := range doc {
		record, ok := adaptEvaluationRecord(key, fileRecord)
		if !ok {
			utils.LoggerFromContext(ctx).WarnContext(ctx,
				"dropping evaluation record with unusable key", "key", key)
			continue
		}
		snapshot[key] = record
	}
	return snapshot, nil
}

// SaveSnapshot rewrites the whole evaluation store in one pass.
func (repo EvaluationSnapshotRepository) SaveSnapshot(ctx context.Context, bucketUrl string,
	snapshot models.EvaluationSnapshot,
) error {
	doc := make(map[string]fileEvaluationRecord, len(snapshot))
	for key, record := range snapshot {
		doc[key] = adaptFileEvaluationRecord(record)
	}
	return writeJsonBlob(ctx, repo.blobRepository, bucketUrl, evaluationsFileName, doc)
}
