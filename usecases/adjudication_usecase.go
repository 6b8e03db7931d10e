package usecases

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/gmkhealth/verdict-backend/models"
	"github.com/gmkhealth/verdict-backend/repositories/clock"
	"github.com/gmkhealth/verdict-backend/usecases/security"
	"github.com/gmkhealth/verdict-backend/usecases/tracking"
	"github.com/gmkhealth/verdict-backend/utils"
)

type adjudicationPartitionRepository interface {
	LoadDisagreements(ctx context.Context, bucketUrl string) ([]models.QueryRecord, error)
	LoadDocLinks(ctx context.Context, bucketUrl string) (models.DocLinksMap, error)
}

type adjudicationSnapshotRepository interface {
	LoadSnapshot(ctx context.Context, bucketUrl string) (models.AdjudicationSnapshot, error)
	SaveSnapshot(ctx context.Context, bucketUrl string, snapshot models.AdjudicationSnapshot) error
}

type adjudicationMirrorRepository interface {
	PushAdjudication(ctx context.Context, query models.QueryRecord, record models.AdjudicationRecord,
		evaluator string, now time.Time) error
	PullAdjudications(ctx context.Context, now time.Time) ([]models.AdjudicationRecord, error)
}

type AdjudicationUsecase struct {
	enforceSecurity     security.EnforceSecurityAdjudication
	credentials         models.Credentials
	partitionRepository adjudicationPartitionRepository
	snapshotRepository  adjudicationSnapshotRepository
	mirrorRepository    adjudicationMirrorRepository
	clock               clock.Clock
	bucketUrl           string
}

// GetQueue returns the group's disagreed queries merged with their progress
// state, incomplete first, widest disagreement first. When the local store is
// empty it first tries to repopulate it from the mirror, reporting how many
// records came back.
func (usecase *AdjudicationUsecase) GetQueue(ctx context.Context, group models.Group,
) (models.AdjudicationQueue, error) {
	if err := usecase.enforceSecurity.ReadQueue(group); err != nil {
		return models.AdjudicationQueue{}, err
	}

	disagreed, err := usecase.partitionRepository.LoadDisagreements(ctx, usecase.bucketUrl)
	if err != nil {
		return models.AdjudicationQueue{}, err
	}
	snapshot, err := usecase.snapshotRepository.LoadSnapshot(ctx, usecase.bucketUrl)
	if err != nil {
		return models.AdjudicationQueue{}, err
	}

	recovered := 0
	if len(snapshot) == 0 {
		recovered = usecase.recoverSnapshot(ctx, snapshot)
	}

	partition := models.Partition{Disagreed: disagreed}
	groupQueries := partition.DisagreedByGroup(group)

	entries := make([]models.QueueEntry, 0, len(groupQueries))
	completed := 0
	for _, query := range groupQueries {
		done := snapshot.IsCompleted(query.QueryKey)
		if done {
			completed++
		}
		entries = append(entries, queueEntryOf(query, done))
	}
	slices.SortStableFunc(entries, compareQueueEntries)

	evaluator1, evaluator2 := group.Evaluators()
	return models.AdjudicationQueue{
		Group:      group,
		Evaluator1: evaluator1,
		Evaluator2: evaluator2,
		Entries:    entries,
		Progress:   models.NewProgressStats(len(groupQueries), completed),
		Recovered:  recovered,
	}, nil
}

// recoverSnapshot pulls the mirror into an empty local store. Mirror failures
// only log: the queue works without the mirror and the next empty load tries
// again.
func (usecase *AdjudicationUsecase) recoverSnapshot(ctx context.Context,
	snapshot models.AdjudicationSnapshot,
) int {
	logger := utils.LoggerFromContext(ctx)

	records, err := usecase.mirrorRepository.PullAdjudications(ctx, usecase.clock.Now())
	if err != nil {
		logger.WarnContext(ctx, "mirror pull failed, starting from an empty adjudication store",
			"error", err.Error())
		return 0
	}
	recovered := len(snapshot.Recover(records))
	if recovered == 0 {
		return 0
	}
	if err := usecase.snapshotRepository.SaveSnapshot(ctx, usecase.bucketUrl, snapshot); err != nil {
		logger.WarnContext(ctx, "could not persist recovered adjudications", "error", err.Error())
	}
	logger.InfoContext(ctx, "recovered adjudications from the mirror", "count", recovered)
	return recovered
}

func queueEntryOf(query models.QueryRecord, completed bool) models.QueueEntry {
	return models.QueueEntry{
		QueryKey:       query.QueryKey,
		PatientId:      query.PatientId,
		QueryNum:       query.QueryNum,
		QueryType:      query.QueryType,
		Disagreements:  query.Disagreements,
		NDisagreements: query.NDisagreements,
		Severity:       query.Severity(),
		Completed:      completed,
	}
}

func compareQueueEntries(a, b models.QueueEntry) int {
	if a.Completed != b.Completed {
		if a.Completed {
			return 1
		}
		return -1
	}
	if a.NDisagreements != b.NDisagreements {
		return b.NDisagreements - a.NDisagreements
	}
	return a.QueryNum - b.QueryNum
}

// GetNextQuery returns the first incomplete query of the group in partition
// order, skipping the optional after key. This drives the review screen's
// auto-advance.
func (usecase *AdjudicationUsecase) GetNextQuery(ctx context.Context, group models.Group,
	after string,
) (models.QueueEntry, error) {
	if err := usecase.enforceSecurity.ReadQueue(group); err != nil {
		return models.QueueEntry{}, err
	}

	disagreed, err := usecase.partitionRepository.LoadDisagreements(ctx, usecase.bucketUrl)
	if err != nil {
		return models.QueueEntry{}, err
	}
	snapshot, err := usecase.snapshotRepository.LoadSnapshot(ctx, usecase.bucketUrl)
	if err != nil {
		return models.QueueEntry{}, err
	}

	next, ok := nextIncompleteQuery(disagreed, snapshot, group, after)
	if !ok {
		return models.QueueEntry{}, errors.Wrap(models.ErrNothingToAdvanceTo,
			fmt.Sprintf("every disagreed query of %s is adjudicated", group))
	}
	return queueEntryOf(next, false), nil
}

func nextIncompleteQuery(disagreed []models.QueryRecord, snapshot models.AdjudicationSnapshot,
	group models.Group, after string,
) (models.QueryRecord, bool) {
	for _, query := range disagreed {
		if query.Group != group || query.QueryKey == after {
			continue
		}
		if !snapshot.IsCompleted(query.QueryKey) {
			return query, true
		}
	}
	return models.QueryRecord{}, false
}

// GetReviewBundle returns everything the review screen shows for one query:
// the full record with both evaluator sheets, the stored resolution when one
// exists, and the patient's response document links.
func (usecase *AdjudicationUsecase) GetReviewBundle(ctx context.Context, queryKey string,
) (models.ReviewBundle, error) {
	disagreed, err := usecase.partitionRepository.LoadDisagreements(ctx, usecase.bucketUrl)
	if err != nil {
		return models.ReviewBundle{}, err
	}
	partition := models.Partition{Disagreed: disagreed}
	query, ok := partition.Find(queryKey)
	if !ok {
		return models.ReviewBundle{}, errors.Wrap(models.ErrUnknownQuery, queryKey)
	}
	if err := usecase.enforceSecurity.ReadQueue(query.Group); err != nil {
		return models.ReviewBundle{}, err
	}

	snapshot, err := usecase.snapshotRepository.LoadSnapshot(ctx, usecase.bucketUrl)
	if err != nil {
		return models.ReviewBundle{}, err
	}
	bundle := models.ReviewBundle{Query: query}
	if record, ok := snapshot[queryKey]; ok {
		bundle.Resolution = &record
	}

	docLinks, err := usecase.partitionRepository.LoadDocLinks(ctx, usecase.bucketUrl)
	if err != nil {
		return models.ReviewBundle{}, err
	}
	if links, ok := docLinks[query.PatientId]; ok {
		bundle.DocLinks = &links
	}
	return bundle, nil
}

// SubmitAdjudication stores the reviewers' resolution for one disagreed query
// and mirrors it best effort. The local write is the durable one; a failed
// mirror push only flips Synced off.
func (usecase *AdjudicationUsecase) SubmitAdjudication(ctx context.Context, queryKey string,
	resolutions map[models.ComparisonKey]models.MetricResolution,
) (models.SubmitOutcome, error) {
	disagreed, err := usecase.partitionRepository.LoadDisagreements(ctx, usecase.bucketUrl)
	if err != nil {
		return models.SubmitOutcome{}, err
	}
	partition := models.Partition{Disagreed: disagreed}
	query, ok := partition.Find(queryKey)
	if !ok {
		return models.SubmitOutcome{}, errors.Wrap(models.ErrUnknownQuery, queryKey)
	}
	if err := usecase.enforceSecurity.SubmitAdjudication(query.Group); err != nil {
		return models.SubmitOutcome{}, err
	}
	if err := validateResolutions(query, resolutions); err != nil {
		return models.SubmitOutcome{}, err
	}

	record := models.AdjudicationRecord{
		QueryKey:    queryKey,
		Completed:   true,
		Timestamp:   usecase.clock.Now(),
		Resolutions: make(map[models.ComparisonKey]models.MetricResolution, len(query.Disagreements)),
	}
	for _, key := range query.Disagreements {
		record.Resolutions[key] = resolutions[key]
	}

	snapshot, err := usecase.snapshotRepository.LoadSnapshot(ctx, usecase.bucketUrl)
	if err != nil {
		return models.SubmitOutcome{}, err
	}
	snapshot[queryKey] = record
	if err := usecase.snapshotRepository.SaveSnapshot(ctx, usecase.bucketUrl, snapshot); err != nil {
		return models.SubmitOutcome{}, err
	}

	synced := true
	err = usecase.mirrorRepository.PushAdjudication(ctx, query, record,
		usecase.credentials.ActorIdentity.Actor, usecase.clock.Now())
	if err != nil {
		synced = false
		utils.LoggerFromContext(ctx).WarnContext(ctx,
			"mirror push failed, the resolution is safe in the local store",
			"query_key", queryKey, "error", err.Error())
	}

	outcome := models.SubmitOutcome{QueryKey: queryKey, Synced: synced}
	if next, ok := nextIncompleteQuery(disagreed, snapshot, query.Group, queryKey); ok {
		outcome.NextQueryKey = next.QueryKey
	}

	tracking.TrackEvent(ctx, models.AnalyticsAdjudicationSubmitted, map[string]interface{}{
		"query_key": queryKey,
		"group":     query.Group.String(),
		"synced":    synced,
	})
	return outcome, nil
}

// validateResolutions checks that every disagreed key of the query carries a
// full resolution. Missing fields are collected per kind across all keys and
// reported by display name, ratings before findings before root causes. Filled
// ratings must come from the key's option set.
func validateResolutions(query models.QueryRecord,
	resolutions map[models.ComparisonKey]models.MetricResolution,
) error {
	incomplete := models.IncompleteAdjudicationError{}
	for _, key := range query.Disagreements {
		resolution := resolutions[key]
		display := key.DisplayName()
		if resolution.Rating == "" {
			incomplete.MissingRatings = append(incomplete.MissingRatings, display)
		}
		if strings.TrimSpace(resolution.Findings) == "" {
			incomplete.MissingFindings = append(incomplete.MissingFindings, display)
		}
		if !models.IsRootCauseChosen(resolution.RootCause) {
			incomplete.MissingRootCauses = append(incomplete.MissingRootCauses, display)
		}
	}
	if len(incomplete.MissingRatings) > 0 || len(incomplete.MissingFindings) > 0 ||
		len(incomplete.MissingRootCauses) > 0 {
		return incomplete
	}

	for _, key := range query.Disagreements {
		if !slices.Contains(key.RatingOptions(), resolutions[key].Rating) {
			return errors.Wrap(models.BadParameterError,
				fmt.Sprintf("%q is not a valid rating for %s", resolutions[key].Rating, key.DisplayName()))
		}
	}
	return nil
}

// GetProgress aggregates adjudication advancement, over one group or over the
// whole corpus when group is nil. The overall view needs progress read on
// every group, which only the review admin has.
func (usecase *AdjudicationUsecase) GetProgress(ctx context.Context, group *models.Group,
) (models.ProgressStats, error) {
	if group != nil {
		if err := usecase.enforceSecurity.ReadProgress(*group); err != nil {
			return models.ProgressStats{}, err
		}
	} else {
		for _, g := range models.AllGroups {
			if err := usecase.enforceSecurity.ReadProgress(g); err != nil {
				return models.ProgressStats{}, err
			}
		}
	}

	disagreed, err := usecase.partitionRepository.LoadDisagreements(ctx, usecase.bucketUrl)
	if err != nil {
		return models.ProgressStats{}, err
	}
	snapshot, err := usecase.snapshotRepository.LoadSnapshot(ctx, usecase.bucketUrl)
	if err != nil {
		return models.ProgressStats{}, err
	}
	return progressOf(disagreed, snapshot, group), nil
}

func progressOf(disagreed []models.QueryRecord, snapshot models.AdjudicationSnapshot,
	group *models.Group,
) models.ProgressStats {
	total := 0
	completed := 0
	for _, query := range disagreed {
		if group != nil && query.Group != *group {
			continue
		}
		total++
		if snapshot.IsCompleted(query.QueryKey) {
			completed++
		}
	}
	return models.NewProgressStats(total, completed)
}

// ValidateScreenTransition checks one move of the front-end's screen machine.
// The browser owns its current screen; the server only vets the move.
func (usecase *AdjudicationUsecase) ValidateScreenTransition(ctx context.Context, from, to string,
) (models.Screen, error) {
	fromScreen, err := models.ScreenFromString(from)
	if err != nil {
		return 0, err
	}
	toScreen, err := models.ScreenFromString(to)
	if err != nil {
		return 0, err
	}
	if !fromScreen.CanTransition(toScreen) {
		return 0, errors.Wrap(models.ErrIllegalTransition,
			fmt.Sprintf("cannot move from %s to %s", fromScreen, toScreen))
	}
	return toScreen, nil
}
