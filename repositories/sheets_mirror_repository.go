package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/gmkhealth/verdict-backend/models"
	"github.com/gmkhealth/verdict-backend/repositories/httpmodels"
	"github.com/gmkhealth/verdict-backend/utils"
)

// SheetsMirrorRepository talks to the Apps Script endpoint mirroring
// submissions into the tracking spreadsheet. Every call is a single attempt
// with a short client timeout; the local store is the source of truth and
// callers degrade on any error.
type SheetsMirrorRepository struct {
	endpointUrl string
	client      *http.Client
}

func NewSheetsMirrorRepository(endpointUrl string, client *http.Client) SheetsMirrorRepository {
	return SheetsMirrorRepository{
		endpointUrl: endpointUrl,
		client:      client,
	}
}

func (repo SheetsMirrorRepository) post(ctx context.Context, payload any) error {
	if repo.endpointUrl == "" {
		return errors.New("sheets mirror endpoint is not configured")
	}
	ctx, span := utils.OpenTelemetryTracerFromContext(ctx).Start(ctx, "sheets_mirror_push")
	defer span.End()

	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "failed to encode mirror payload")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, repo.endpointUrl, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := repo.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "mirror request failed")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return errors.Newf("mirror returned status %d", resp.StatusCode)
	}
	return nil
}

func (repo SheetsMirrorRepository) PushAdjudication(ctx context.Context, query models.QueryRecord,
	record models.AdjudicationRecord, evaluator string, now time.Time,
) error {
	return repo.post(ctx, httpmodels.AdaptAdjudicationPush(query, record, evaluator, now))
}

func (repo SheetsMirrorRepository) PushEvaluation(ctx context.Context, task models.EvaluationTask,
	record models.EvaluationRecord,
) error {
	return repo.post(ctx, httpmodels.AdaptEvaluationPush(task, record))
}

// PullAdjudications fetches every adjudication row the mirror holds. Rows
// keep their sheet timestamps when parseable and get now otherwise.
func (repo SheetsMirrorRepository) PullAdjudications(ctx context.Context, now time.Time,
) ([]models.AdjudicationRecord, error) {
	if repo.endpointUrl == "" {
		return nil, errors.New("sheets mirror endpoint is not configured")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, repo.endpointUrl+"?type=adjudication", nil)
	if err != nil {
		return nil, err
	}

	resp, err := repo.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "mirror request failed")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf("mirror returned status %d", resp.StatusCode)
	}

	var rows []httpmodels.HTTPAdjudicationRow
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, errors.Wrap(err, "failed to decode mirror response")
	}

	records := make([]models.AdjudicationRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, httpmodels.AdaptRecoveredAdjudication(row, now))
	}
	return records, nil
}
