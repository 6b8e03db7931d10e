package utils

import (
	"context"
	"errors"
	"fmt"

	"github.com/getsentry/sentry-go"
)

// LogAndReportSentryError logs err at error level and forwards it to sentry.
// Deadline and cancellation errors are logged only: whatever caused the
// timeout was already reported where it fired.
func LogAndReportSentryError(ctx context.Context, err error) {
	logger := LoggerFromContext(ctx)
	logger.ErrorContext(ctx, fmt.Sprintf("%+v", err))

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return
	}

	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		hub.CaptureException(err)
		return
	}
	sentry.CaptureException(err)
}
