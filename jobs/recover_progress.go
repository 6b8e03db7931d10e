package jobs

import (
	"context"
	"time"

	"github.com/gmkhealth/verdict-backend/usecases"
	"github.com/gmkhealth/verdict-backend/utils"
)

const recoveryTimeout = 30 * time.Minute

// RecoverProgress replays both remote copies into the local stores: the
// mirror for adjudications, the submissions export for evaluations.
// Completed local records always win over remote echoes.
func RecoverProgress(ctx context.Context, uc usecases.Usecases) error {
	return executeWithMonitoring(
		ctx,
		uc,
		"recover-progress",
		func(
			ctx context.Context, usecases usecases.Usecases,
		) error {
			usecasesWithCreds := GenerateUsecaseWithCredForAdmin(usecases)
			usecase := usecasesWithCreds.NewRecoveryUsecase()
			ctx, cancel := context.WithTimeout(ctx, recoveryTimeout)
			defer cancel()
			ctx, span := utils.OpenTelemetryTracerFromContext(ctx).Start(ctx, "recover_progress")
			defer span.End()

			logger := utils.LoggerFromContext(ctx)
			adjudications, err := usecase.RecoverAdjudications(ctx)
			if err != nil {
				return err
			}
			logger.InfoContext(ctx, "adjudication recovery done",
				"recovered", adjudications.Recovered)

			evaluations, err := usecase.RecoverEvaluations(ctx)
			if err != nil {
				return err
			}
			logger.InfoContext(ctx, "evaluation recovery done",
				"recovered", evaluations.Recovered)
			return nil
		},
	)
}
