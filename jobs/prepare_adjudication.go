package jobs

import (
	"context"
	"time"

	"github.com/gmkhealth/verdict-backend/usecases"
)

const preparationTimeout = 10 * time.Minute

// PrepareAdjudication partitions the ratings export into agreed and
// disagreed queries, the step that seeds the adjudication queues.
func PrepareAdjudication(ctx context.Context, uc usecases.Usecases) error {
	return executeWithMonitoring(
		ctx,
		uc,
		"prepare-adjudication",
		func(
			ctx context.Context, usecases usecases.Usecases,
		) error {
			usecasesWithCreds := GenerateUsecaseWithCredForAdmin(usecases)
			usecase := usecasesWithCreds.NewPreparationUsecase()
			ctx, cancel := context.WithTimeout(ctx, preparationTimeout)
			defer cancel()
			_, err := usecase.PrepareAdjudication(ctx)
			return err
		},
	)
}
