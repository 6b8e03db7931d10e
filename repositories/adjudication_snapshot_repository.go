package repositories

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/gmkhealth/verdict-backend/models"
	"github.com/gmkhealth/verdict-backend/utils"
)

const adjudicationProgressFileName = "adjudication_progress.json"

// legacyTimeLayout is the naive local datetime format the JSON stores carry,
// e.g. "2026-08-23T14:05:09.123456". No zone, microsecond precision at most.
const legacyTimeLayout = "2006-01-02T15:04:05.999999"

func formatLegacyTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(legacyTimeLayout)
}

func parseLegacyTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(legacyTimeLayout, value)
	if err == nil {
		return t, nil
	}
	// Mirror rows sometimes come back with a zone suffix.
	t, rfcErr := time.Parse(time.RFC3339Nano, value)
	if rfcErr == nil {
		return t, nil
	}
	return time.Time{}, errors.Wrapf(err, "cannot parse timestamp %q", value)
}

type fileMetricResolution struct {
	Rating          string `json:"rating"`
	Findings        string `json:"findings"`
	RootCause       string `json:"root_cause"`
	RootCauseDetail string `json:"root_cause_detail"`
}

// fileAdjudicationRecord is one record of adjudication_progress.json. The
// layout is inherited: per-metric resolutions sit as sibling keys next to
// "completed" and "timestamp" rather than under a sub-object, so the record
// needs hand-rolled JSON in both directions.
type fileAdjudicationRecord struct {
	Completed   bool
	Timestamp   string
	Resolutions map[string]fileMetricResolution
}

func (record fileAdjudicationRecord) MarshalJSON() ([]byte, error) {
	doc := make(map[string]any, len(record.Resolutions)+2)
	doc["completed"] = record.Completed
	doc["timestamp"] = record.Timestamp
	for key, resolution := range record.Resolutions {
		doc[key] = resolution
	}
	return json.Marshal(doc)
}

func (record *fileAdjudicationRecord) UnmarshalJSON(data []byte) error {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	record.Resolutions = make(map[string]fileMetricResolution, len(doc))
	for key, raw := range doc {
		switch key {
		case "completed":
			if err := json.Unmarshal(raw, &record.Completed); err != nil {
				return err
			}
		case "timestamp":
			if err := json.Unmarshal(raw, &record.Timestamp); err != nil {
				return err
			}
		default:
			var resolution fileMetricResolution
			if err := json.Unmarshal(raw, &resolution); err != nil {
				return err
			}
			record.Resolutions[key] = resolution
		}
	}
	return nil
}

func adaptAdjudicationRecord(queryKey string, file fileAdjudicationRecord) models.AdjudicationRecord {
	record := models.AdjudicationRecord{
		QueryKey:    queryKey,
		Completed:   file.Completed,
		Resolutions: make(map[models.ComparisonKey]models.MetricResolution, len(file.Resolutions)),
	}
	if timestamp, err := parseLegacyTime(file.Timestamp); err == nil {
		record.Timestamp = timestamp
	}
	for key, resolution := range file.Resolutions {
		record.Resolutions[models.ComparisonKey(key)] = models.MetricResolution{
			Rating:          resolution.Rating,
			Findings:        resolution.Findings,
			RootCause:       resolution.RootCause,
			RootCauseDetail: resolution.RootCauseDetail,
		}
	}
	return record
}

func adaptFileAdjudicationRecord(record models.AdjudicationRecord) fileAdjudicationRecord {
	file := fileAdjudicationRecord{
		Completed:   record.Completed,
		Timestamp:   formatLegacyTime(record.Timestamp),
		Resolutions: make(map[string]fileMetricResolution, len(record.Resolutions)),
	}
	for key, resolution := range record.Resolutions {
		file.Resolutions[string(key)] = fileMetricResolution{
			Rating:          resolution.Rating,
			Findings:        resolution.Findings,
			RootCause:       resolution.RootCause,
			RootCauseDetail: resolution.RootCauseDetail,
		}
	}
	return file
}

type AdjudicationSnapshotRepository struct {
	blobRepository BlobRepository
}

func NewAdjudicationSnapshotRepository(blobRepository BlobRepository) AdjudicationSnapshotRepository {
	return AdjudicationSnapshotRepository{blobRepository: blobRepository}
}

// LoadSnapshot reads the whole adjudication store. A missing or unreadable
// file yields an empty snapshot, never an error: the store starts empty and
// is rebuilt from the mirror when it is lost.
func (repo AdjudicationSnapshotRepository) LoadSnapshot(ctx context.Context, bucketUrl string,
) (models.AdjudicationSnapshot, error) {
	file, err := repo.blobRepository.GetBlob(ctx, bucketUrl, adjudicationProgressFileName)
	if err != nil {
		if errors.Is(err, models.NotFoundError) {
			return models.AdjudicationSnapshot{}, nil
		}
		return nil, err
	}
	defer file.ReadCloser.Close()

	var doc map[string]fileAdjudicationRecord
	if err := json.NewDecoder(file.ReadCloser).Decode(&doc); err != nil {
		utils.LoggerFromContext(ctx).WarnContext(ctx,
			"unreadable adjudication progress file, starting from an empty store",
			"error", err.Error())
		return models.AdjudicationSnapshot{}, nil
	}

	snapshot := make(models.AdjudicationSnapshot, len(doc))
	for queryKey, record := range doc {
		snapshot[queryKey] = adaptAdjudicationRecord(queryKey, record)
	}
	return snapshot, nil
}

// SaveSnapshot rewrites the whole adjudication store in one pass.
func (repo AdjudicationSnapshotRepository) SaveSnapshot(ctx context.Context, bucketUrl string,
	snapshot models.AdjudicationSnapshot,
) error {
	doc := make(map[string]fileAdjudicationRecord, len(snapshot))
	for queryKey, record := range snapshot {
		doc[queryKey] = adaptFileAdjudicationRecord(record)
	}
	return writeJsonBlob(ctx, repo.blobRepository, bucketUrl, adjudicationProgressFileName, doc)
}
