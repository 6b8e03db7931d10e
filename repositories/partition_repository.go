package repositories

import (
	"context"
	"encoding/json"

	"github.com/cockroachdb/errors"

	"github.com/gmkhealth/verdict-backend/models"
	"github.com/gmkhealth/verdict-backend/utils"
)

const (
	disagreementsFileName = "disagreements.json"
	agreedQueriesFileName = "agreed_queries.json"
	docLinksFileName      = "doc_links.json"
)

type fileEvaluatorSheet struct {
	Name              string            `json:"name"`
	ModelA            map[string]string `json:"model_a"`
	ModelB            map[string]string `json:"model_b"`
	Preference        string            `json:"preference"`
	PreferenceReasons string            `json:"preference_reasons"`
}

type fileCanonicalRatings struct {
	ModelA            map[string]string `json:"model_a"`
	ModelB            map[string]string `json:"model_b"`
	Preference        string            `json:"preference"`
	PreferenceReasons string            `json:"preference_reasons"`
}

type fileQueryRecord struct {
	QueryKey       string                `json:"query_key"`
	PatientId      string                `json:"patient_id"`
	QueryNum       int                   `json:"query_num"`
	Group          string                `json:"group"`
	QueryType      string                `json:"query_type"`
	PhiDependency  string                `json:"phi_dependency"`
	PatientSummary string                `json:"patient_summary"`
	QueryText      string                `json:"query_text"`
	Evaluator1     fileEvaluatorSheet    `json:"evaluator_1"`
	Evaluator2     fileEvaluatorSheet    `json:"evaluator_2"`
	Disagreements  []string              `json:"disagreements"`
	NDisagreements int                   `json:"n_disagreements"`
	Canonical      *fileCanonicalRatings `json:"canonical,omitempty"`
}

// flatRatings writes one model's grades as the flat rating map the partition
// files carry: "{metric}" for the rating, "{metric}_findings" for the text.
// Every metric key is present even when empty.
func flatRatings(ratings models.ModelRatings) map[string]string {
	flat := make(map[string]string, 2*len(models.AllMetrics))
	for _, metric := range models.AllMetrics {
		grade := ratings.Grade(metric)
		flat[metric.Key()] = grade.Rating
		flat[metric.Key()+"_findings"] = grade.Findings
	}
	return flat
}

func ratingsOfFlat(flat map[string]string) models.ModelRatings {
	ratings := make(models.ModelRatings, len(models.AllMetrics))
	for _, metric := range models.AllMetrics {
		ratings[metric] = models.MetricGrade{
			Rating:   flat[metric.Key()],
			Findings: flat[metric.Key()+"_findings"],
		}
	}
	return ratings
}

func adaptFileEvaluatorSheet(sheet models.EvaluatorSheet) fileEvaluatorSheet {
	return fileEvaluatorSheet{
		Name:              sheet.Name,
		ModelA:            flatRatings(sheet.ModelA),
		ModelB:            flatRatings(sheet.ModelB),
		Preference:        sheet.Preference,
		PreferenceReasons: sheet.PreferenceReasons,
	}
}

func adaptEvaluatorSheet(file fileEvaluatorSheet) models.EvaluatorSheet {
	return models.EvaluatorSheet{
		Name:              file.Name,
		ModelA:            ratingsOfFlat(file.ModelA),
		ModelB:            ratingsOfFlat(file.ModelB),
		Preference:        file.Preference,
		PreferenceReasons: file.PreferenceReasons,
	}
}

func adaptFileQueryRecord(record models.QueryRecord) fileQueryRecord {
	file := fileQueryRecord{
		QueryKey:       record.QueryKey,
		PatientId:      record.PatientId,
		QueryNum:       record.QueryNum,
		Group:          record.Group.Letter(),
		QueryType:      record.QueryType,
		PhiDependency:  record.PhiDependency,
		PatientSummary: record.PatientSummary,
		QueryText:      record.QueryText,
		Evaluator1:     adaptFileEvaluatorSheet(record.Evaluator1),
		Evaluator2:     adaptFileEvaluatorSheet(record.Evaluator2),
		Disagreements:  make([]string, 0, len(record.Disagreements)),
		NDisagreements: record.NDisagreements,
	}
	for _, key := range record.Disagreements {
		file.Disagreements = append(file.Disagreements, string(key))
	}
	if record.Canonical != nil {
		file.Canonical = &fileCanonicalRatings{
			ModelA:            flatRatings(record.Canonical.ModelA),
			ModelB:            flatRatings(record.Canonical.ModelB),
			Preference:        record.Canonical.Preference,
			PreferenceReasons: record.Canonical.PreferenceReasons,
		}
	}
	return file
}

func adaptQueryRecord(file fileQueryRecord) (models.QueryRecord, error) {
	group, err := models.GroupFromString(file.Group)
	if err != nil {
		return models.QueryRecord{}, err
	}
	record := models.QueryRecord{
		QueryKey:       file.QueryKey,
		PatientId:      file.PatientId,
		QueryNum:       file.QueryNum,
		Group:          group,
		QueryType:      file.QueryType,
		PhiDependency:  file.PhiDependency,
		PatientSummary: file.PatientSummary,
		QueryText:      file.QueryText,
		Evaluator1:     adaptEvaluatorSheet(file.Evaluator1),
		Evaluator2:     adaptEvaluatorSheet(file.Evaluator2),
		Disagreements:  make([]models.ComparisonKey, 0, len(file.Disagreements)),
		NDisagreements: file.NDisagreements,
	}
	for _, key := range file.Disagreements {
		record.Disagreements = append(record.Disagreements, models.ComparisonKey(key))
	}
	if file.Canonical != nil {
		record.Canonical = &models.CanonicalRatings{
			ModelA:            ratingsOfFlat(file.Canonical.ModelA),
			ModelB:            ratingsOfFlat(file.Canonical.ModelB),
			Preference:        file.Canonical.Preference,
			PreferenceReasons: file.Canonical.PreferenceReasons,
		}
	}
	return record, nil
}

// PartitionRepository persists the prepared partition: the disagreed and
// agreed query lists written by the preparation run, plus the per-patient
// document links dropped alongside them.
type PartitionRepository struct {
	blobRepository BlobRepository
}

func NewPartitionRepository(blobRepository BlobRepository) PartitionRepository {
	return PartitionRepository{blobRepository: blobRepository}
}

func (repo PartitionRepository) SavePartition(ctx context.Context, bucketUrl string,
	partition models.Partition,
) error {
	if err := repo.saveRecords(ctx, bucketUrl, disagreementsFileName, partition.Disagreed); err != nil {
		return err
	}
	return repo.saveRecords(ctx, bucketUrl, agreedQueriesFileName, partition.Agreed)
}

func (repo PartitionRepository) saveRecords(ctx context.Context, bucketUrl, fileName string,
	records []models.QueryRecord,
) error {
	doc := make([]fileQueryRecord, 0, len(records))
	for _, record := range records {
		doc = append(doc, adaptFileQueryRecord(record))
	}
	return writeJsonBlob(ctx, repo.blobRepository, bucketUrl, fileName, doc)
}

// LoadDisagreements reads the disagreed query list. A missing file is a real
// error: adjudication cannot run before the preparation step has.
func (repo PartitionRepository) LoadDisagreements(ctx context.Context, bucketUrl string,
) ([]models.QueryRecord, error) {
	return repo.loadRecords(ctx, bucketUrl, disagreementsFileName)
}

func (repo PartitionRepository) LoadAgreed(ctx context.Context, bucketUrl string,
) ([]models.QueryRecord, error) {
	return repo.loadRecords(ctx, bucketUrl, agreedQueriesFileName)
}

func (repo PartitionRepository) LoadPartition(ctx context.Context, bucketUrl string,
) (models.Partition, error) {
	disagreed, err := repo.LoadDisagreements(ctx, bucketUrl)
	if err != nil {
		return models.Partition{}, err
	}
	agreed, err := repo.LoadAgreed(ctx, bucketUrl)
	if err != nil {
		return models.Partition{}, err
	}
	return models.Partition{Disagreed: disagreed, Agreed: agreed}, nil
}

func (repo PartitionRepository) loadRecords(ctx context.Context, bucketUrl, fileName string,
) ([]models.QueryRecord, error) {
	file, err := repo.blobRepository.GetBlob(ctx, bucketUrl, fileName)
	if err != nil {
		if errors.Is(err, models.NotFoundError) {
			return nil, errors.Wrapf(err, "%s is missing, run the adjudication preparation first", fileName)
		}
		return nil, err
	}
	defer file.ReadCloser.Close()

	var doc []fileQueryRecord
	if err := json.NewDecoder(file.ReadCloser).Decode(&doc); err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s", fileName)
	}

	records := make([]models.QueryRecord, 0, len(doc))
	for _, fileRecord := range doc {
		record, err := adaptQueryRecord(fileRecord)
		if err != nil {
			utils.LoggerFromContext(ctx).WarnContext(ctx, "dropping unusable partition record",
				"query_key", fileRecord.QueryKey, "error", err.Error())
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

// LoadDocLinks reads the per-patient response document links. The file is
// optional: review screens simply hide the links when it is absent.
func (repo PartitionRepository) LoadDocLinks(ctx context.Context, bucketUrl string,
) (models.DocLinksMap, error) {
	file, err := repo.blobRepository.GetBlob(ctx, bucketUrl, docLinksFileName)
	if err != nil {
		if errors.Is(err, models.NotFoundError) {
			return models.DocLinksMap{}, nil
		}
		return nil, err
	}
	defer file.ReadCloser.Close()

	var doc map[string]struct {
		ModelAUrl string `json:"model_a_url"`
		ModelBUrl string `json:"model_b_url"`
	}
	if err := json.NewDecoder(file.ReadCloser).Decode(&doc); err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s", docLinksFileName)
	}

	links := make(models.DocLinksMap, len(doc))
	for patientId, entry := range doc {
		links[patientId] = models.DocLinks{ModelAUrl: entry.ModelAUrl, ModelBUrl: entry.ModelBUrl}
	}
	return links, nil
}
