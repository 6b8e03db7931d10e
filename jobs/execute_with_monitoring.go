package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/getsentry/sentry-go"

	"github.com/gmkhealth/verdict-backend/usecases"
	"github.com/gmkhealth/verdict-backend/utils"
)

// executeWithMonitoring wraps one batch run with a sentry monitor check-in,
// so a failed or missing scheduled run alerts instead of silently leaving
// stale partitions behind.
func executeWithMonitoring(
	ctx context.Context,
	uc usecases.Usecases,
	jobName string,
	fn func(context.Context, usecases.Usecases) error,
) error {
	logger := utils.LoggerFromContext(ctx)
	logger.InfoContext(ctx, "starting job", "job", jobName)
	startedAt := time.Now()

	checkinId := sentry.CaptureCheckIn(
		&sentry.CheckIn{
			MonitorSlug: jobName,
			Status:      sentry.CheckInStatusInProgress,
		},
		nil,
	)
	// checkinId is nil when sentry is not configured (local runs).
	reportStatus := func(status sentry.CheckInStatus) {
		checkin := sentry.CheckIn{MonitorSlug: jobName, Status: status}
		if checkinId != nil {
			checkin.ID = *checkinId
		}
		sentry.CaptureCheckIn(&checkin, nil)
	}

	if err := fn(ctx, uc); err != nil {
		reportStatus(sentry.CheckInStatusError)
		if hub := sentry.GetHubFromContext(ctx); hub != nil {
			hub.CaptureException(err)
		} else {
			sentry.CaptureException(err)
		}
		return errors.Wrap(err, fmt.Sprintf("job %s failed", jobName))
	}

	reportStatus(sentry.CheckInStatusOK)
	logger.InfoContext(ctx, "job done",
		"job", jobName, "duration", time.Since(startedAt).String())
	return nil
}
