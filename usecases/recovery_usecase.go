package usecases

import (
	"context"

	"github.com/gmkhealth/verdict-backend/models"
	"github.com/gmkhealth/verdict-backend/repositories/clock"
	"github.com/gmkhealth/verdict-backend/usecases/security"
	"github.com/gmkhealth/verdict-backend/usecases/tracking"
	"github.com/gmkhealth/verdict-backend/utils"
)

type recoverySubmissionsRepository interface {
	LoadSubmissionsExport(ctx context.Context, bucketUrl, fileName string) ([]models.EvaluationSubmission, error)
}

// RecoveryUsecase rebuilds the local stores after data loss. Unlike the
// opportunistic pull on queue load, these runs are explicit admin actions:
// every failure surfaces.
type RecoveryUsecase struct {
	enforceSecurity       security.EnforceSecurityAdmin
	adjudicationSnapshots adjudicationSnapshotRepository
	evaluationSnapshots   evaluationSnapshotRepository
	mirrorRepository      adjudicationMirrorRepository
	submissionsRepository recoverySubmissionsRepository
	clock                 clock.Clock
	bucketUrl             string
	submissionsFileName   string
}

// RecoverAdjudications pulls every adjudication off the mirror and merges it
// into the local store, completed local records winning over remote echoes.
func (usecase *RecoveryUsecase) RecoverAdjudications(ctx context.Context) (models.RecoveryReport, error) {
	if err := usecase.enforceSecurity.RunRecovery(); err != nil {
		return models.RecoveryReport{}, err
	}
	records, err := usecase.mirrorRepository.PullAdjudications(ctx, usecase.clock.Now())
	if err != nil {
		return models.RecoveryReport{}, err
	}
	snapshot, err := usecase.adjudicationSnapshots.LoadSnapshot(ctx, usecase.bucketUrl)
	if err != nil {
		return models.RecoveryReport{}, err
	}

	applied := snapshot.Recover(records)
	if len(applied) > 0 {
		if err := usecase.adjudicationSnapshots.SaveSnapshot(ctx, usecase.bucketUrl, snapshot); err != nil {
			return models.RecoveryReport{}, err
		}
	}
	utils.LoggerFromContext(ctx).InfoContext(ctx, "recovered adjudications from the mirror",
		"pulled", len(records), "recovered", len(applied))

	tracking.TrackEvent(ctx, models.AnalyticsProgressRecovered, map[string]interface{}{
		"scope":     "adjudications",
		"recovered": len(applied),
	})
	return models.RecoveryReport{Recovered: len(applied), SampleKeys: sampleKeys(applied)}, nil
}

// RecoverEvaluations replays the submissions export into the evaluation
// store, raising stage flags without inventing grade data.
func (usecase *RecoveryUsecase) RecoverEvaluations(ctx context.Context) (models.RecoveryReport, error) {
	if err := usecase.enforceSecurity.RunRecovery(); err != nil {
		return models.RecoveryReport{}, err
	}
	submissions, err := usecase.submissionsRepository.LoadSubmissionsExport(ctx,
		usecase.bucketUrl, usecase.submissionsFileName)
	if err != nil {
		return models.RecoveryReport{}, err
	}
	snapshot, err := usecase.evaluationSnapshots.LoadSnapshot(ctx, usecase.bucketUrl)
	if err != nil {
		return models.RecoveryReport{}, err
	}

	applied := snapshot.RecoverSubmissions(submissions)
	if len(applied) > 0 {
		if err := usecase.evaluationSnapshots.SaveSnapshot(ctx, usecase.bucketUrl, snapshot); err != nil {
			return models.RecoveryReport{}, err
		}
	}
	utils.LoggerFromContext(ctx).InfoContext(ctx, "recovered evaluations from the submissions export",
		"exported", len(submissions), "recovered", len(applied))

	tracking.TrackEvent(ctx, models.AnalyticsProgressRecovered, map[string]interface{}{
		"scope":     "evaluations",
		"recovered": len(applied),
	})
	return models.RecoveryReport{Recovered: len(applied), SampleKeys: sampleKeys(applied)}, nil
}

// ResetEvaluations wipes the evaluation store. There is no undo beyond
// running a recovery afterwards.
func (usecase *RecoveryUsecase) ResetEvaluations(ctx context.Context) error {
	if err := usecase.enforceSecurity.ResetEvaluations(); err != nil {
		return err
	}
	if err := usecase.evaluationSnapshots.SaveSnapshot(ctx, usecase.bucketUrl,
		models.EvaluationSnapshot{}); err != nil {
		return err
	}
	utils.LoggerFromContext(ctx).InfoContext(ctx, "evaluation store reset")

	tracking.TrackEvent(ctx, models.AnalyticsEvaluationsReset, map[string]interface{}{
		"scope": "evaluations",
	})
	return nil
}

func sampleKeys(keys []string) []string {
	if len(keys) > 5 {
		return keys[:5]
	}
	return keys
}
