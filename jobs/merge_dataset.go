package jobs

import (
	"context"
	"time"

	"github.com/gmkhealth/verdict-backend/usecases"
)

const mergeTimeout = 10 * time.Minute

// MergeDataset folds the adjudicated resolutions back into the partition and
// writes the final calibration dataset and report.
func MergeDataset(ctx context.Context, uc usecases.Usecases) error {
	return executeWithMonitoring(
		ctx,
		uc,
		"merge-dataset",
		func(
			ctx context.Context, usecases usecases.Usecases,
		) error {
			usecasesWithCreds := GenerateUsecaseWithCredForAdmin(usecases)
			usecase := usecasesWithCreds.NewMergeUsecase()
			ctx, cancel := context.WithTimeout(ctx, mergeTimeout)
			defer cancel()
			_, err := usecase.MergeDataset(ctx)
			return err
		},
	)
}
