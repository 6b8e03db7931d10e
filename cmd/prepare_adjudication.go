package cmd

import (
	"context"
	"log/slog"
	"time"

	"github.com/gmkhealth/verdict-backend/infra"
	"github.com/gmkhealth/verdict-backend/jobs"
	"github.com/gmkhealth/verdict-backend/repositories"
	"github.com/gmkhealth/verdict-backend/usecases"
	"github.com/gmkhealth/verdict-backend/utils"

	"github.com/getsentry/sentry-go"
)

// RunPrepareAdjudication partitions the ratings export into agreed and
// disagreed queries and writes the result to the data bucket.
func RunPrepareAdjudication(config CompiledConfig) error {
	gcpConfig := infra.GcpConfig{
		EnableTracing: utils.GetEnv("ENABLE_GCP_TRACING", false),
		ProjectId:     utils.GetEnv("GOOGLE_CLOUD_PROJECT", ""),
	}
	jobConfig := struct {
		env             string
		appName         string
		bucketUrl       string
		ratingsFileName string
		loggingFormat   string
		sentryDsn       string
	}{
		env:             utils.GetEnv("ENV", "development"),
		appName:         "verdict-backend",
		bucketUrl:       utils.GetEnv("BUCKET_URL", usecases.DefaultBucketUrl),
		ratingsFileName: utils.GetEnv("RATINGS_EXPORT_FILE", usecases.DefaultRatingsFileName),
		loggingFormat:   utils.GetEnv("LOGGING_FORMAT", "text"),
		sentryDsn:       utils.GetEnv("SENTRY_DSN", ""),
	}

	logger := utils.NewLogger(jobConfig.loggingFormat)
	ctx := utils.StoreLoggerInContext(context.Background(), logger)

	infra.SetupSentry(jobConfig.sentryDsn, jobConfig.env, config.Version)
	defer sentry.Flush(3 * time.Second)

	tracingConfig := infra.TelemetryConfiguration{
		ApplicationName: jobConfig.appName,
		Enabled:         gcpConfig.EnableTracing,
		ProjectID:       gcpConfig.ProjectId,
		Exporter:        utils.GetEnv("TELEMETRY_EXPORTER", ""),
	}
	telemetryRessources, err := infra.InitTelemetry(tracingConfig, config.Version)
	if err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return err
	}
	ctx = utils.StoreOpenTelemetryTracerInContext(ctx, telemetryRessources.Tracer)

	signingKey := infra.ReadParseOrGenerateSigningKey(ctx,
		utils.GetEnv("AUTHENTICATION_JWT_SIGNING_KEY", ""),
		utils.GetEnv("AUTHENTICATION_JWT_SIGNING_KEY_FILE", ""))

	repositories := repositories.NewRepositories(signingKey, utils.GetEnv("SHEETS_ENDPOINT_URL", ""))
	uc := usecases.NewUsecases(repositories,
		usecases.WithBucketUrl(jobConfig.bucketUrl),
		usecases.WithRatingsFileName(jobConfig.ratingsFileName),
	)

	err = jobs.PrepareAdjudication(ctx, uc)
	if err != nil {
		logger.ErrorContext(ctx, "failed to prepare the adjudication partition",
			slog.String("error", err.Error()))
	}

	return err
}
