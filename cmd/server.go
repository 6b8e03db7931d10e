package cmd

import (
	"context"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gmkhealth/verdict-backend/api"
	"github.com/gmkhealth/verdict-backend/infra"
	"github.com/gmkhealth/verdict-backend/repositories"
	"github.com/gmkhealth/verdict-backend/usecases"
	"github.com/gmkhealth/verdict-backend/utils"

	"github.com/cockroachdb/errors"
	"github.com/getsentry/sentry-go"
)

func RunServer(config CompiledConfig) error {
	// This is where we read the environment variables and set up the configuration for the application.
	apiConfig := api.Configuration{
		Env:                 utils.GetEnv("ENV", "development"),
		AppName:             "verdict-backend",
		AppVersion:          config.Version,
		Port:                utils.GetRequiredEnv[string]("PORT"),
		AppUrl:              utils.GetEnv("APP_URL", ""),
		RequestLoggingLevel: utils.GetEnv("REQUEST_LOGGING_LEVEL", "all"),
		TokenLifetimeMinute: utils.GetEnv("TOKEN_LIFETIME_MINUTE", 60*2),
		SegmentWriteKey:     utils.GetEnv("SEGMENT_WRITE_KEY", config.SegmentWriteKey),
		DisableSegment:      utils.GetEnv("DISABLE_SEGMENT", false),
		DefaultTimeout:      time.Duration(utils.GetEnv("DEFAULT_TIMEOUT_SECOND", 5)) * time.Second,
		RecoveryTimeout:     time.Duration(utils.GetEnv("RECOVERY_TIMEOUT_SECOND", 55)) * time.Second,
		GroupPasswords:      utils.GetRequiredEnv[string]("GROUP_PASSWORDS"),
		EvaluatorPasswords:  utils.GetRequiredEnv[string]("EVALUATOR_PASSWORDS"),
		AdminPassword:       utils.GetRequiredEnv[string]("ADMIN_PASSWORD"),
	}
	gcpConfig := infra.GcpConfig{
		EnableTracing:                utils.GetEnv("ENABLE_GCP_TRACING", false),
		ProjectId:                    utils.GetEnv("GOOGLE_CLOUD_PROJECT", ""),
		GoogleApplicationCredentials: utils.GetEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
	}
	serverConfig := struct {
		bucketUrl           string
		sheetsEndpointUrl   string
		ratingsFileName     string
		datasetFileName     string
		submissionsFileName string
		jwtSigningKey       string
		jwtSigningKeyFile   string
		loggingFormat       string
		sentryDsn           string
		telemetryExporter   string
	}{
		bucketUrl:           utils.GetEnv("BUCKET_URL", usecases.DefaultBucketUrl),
		sheetsEndpointUrl:   utils.GetEnv("SHEETS_ENDPOINT_URL", ""),
		ratingsFileName:     utils.GetEnv("RATINGS_EXPORT_FILE", usecases.DefaultRatingsFileName),
		datasetFileName:     utils.GetEnv("DATASET_FILE", usecases.DefaultDatasetFileName),
		submissionsFileName: utils.GetEnv("SUBMISSIONS_FILE", usecases.DefaultSubmissionsFileName),
		jwtSigningKey:       utils.GetEnv("AUTHENTICATION_JWT_SIGNING_KEY", ""),
		jwtSigningKeyFile:   utils.GetEnv("AUTHENTICATION_JWT_SIGNING_KEY_FILE", ""),
		loggingFormat:       utils.GetEnv("LOGGING_FORMAT", "text"),
		sentryDsn:           utils.GetEnv("SENTRY_DSN", ""),
		telemetryExporter:   utils.GetEnv("TELEMETRY_EXPORTER", ""),
	}

	logger := utils.NewLogger(serverConfig.loggingFormat)
	ctx := utils.StoreLoggerInContext(context.Background(), logger)
	jwtSigningKey := infra.ReadParseOrGenerateSigningKey(ctx,
		serverConfig.jwtSigningKey, serverConfig.jwtSigningKeyFile)

	infra.SetupSentry(serverConfig.sentryDsn, apiConfig.Env, apiConfig.AppVersion)
	defer sentry.Flush(3 * time.Second)

	tracingConfig := infra.TelemetryConfiguration{
		ApplicationName: apiConfig.AppName,
		Enabled:         gcpConfig.EnableTracing,
		ProjectID:       gcpConfig.ProjectId,
		Exporter:        serverConfig.telemetryExporter,
	}
	telemetryRessources, err := infra.InitTelemetry(tracingConfig, apiConfig.AppVersion)
	if err != nil {
		utils.LogAndReportSentryError(ctx, err)
	}

	repositories := repositories.NewRepositories(jwtSigningKey, serverConfig.sheetsEndpointUrl)

	uc := usecases.NewUsecases(repositories,
		usecases.WithBucketUrl(serverConfig.bucketUrl),
		usecases.WithRatingsFileName(serverConfig.ratingsFileName),
		usecases.WithDatasetFileName(serverConfig.datasetFileName),
		usecases.WithSubmissionsFileName(serverConfig.submissionsFileName),
	)

	deps, err := api.InitDependencies(ctx, apiConfig, jwtSigningKey)
	if err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return err
	}

	router := api.InitRouterMiddlewares(ctx, apiConfig, deps.SegmentClient, telemetryRessources)
	server := api.NewServer(router, apiConfig, uc, deps.Authentication, deps.TokenHandler)

	notify, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.InfoContext(ctx, "starting server",
			slog.String("version", config.Version), slog.String("port", apiConfig.Port))
		err := server.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			utils.LogAndReportSentryError(ctx, errors.Wrap(err, "Error while serving the app"))
		}
		logger.InfoContext(ctx, "server returned")
	}()

	<-notify.Done()
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	deps.SegmentClient.Close()

	if err := server.Shutdown(shutdownCtx); err != nil {
		utils.LogAndReportSentryError(
			ctx,
			errors.Wrap(err, "Error while shutting down the server"),
		)
		return err
	}

	return nil
}
