package usecases

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/gmkhealth/verdict-backend/models"
	"github.com/gmkhealth/verdict-backend/usecases/preparation"
	"github.com/gmkhealth/verdict-backend/usecases/security"
	"github.com/gmkhealth/verdict-backend/utils"
)

type preparationExportRepository interface {
	LoadRatingsExport(ctx context.Context, bucketUrl, fileName string) (models.RatingsExport, error)
}

type preparationPartitionRepository interface {
	SavePartition(ctx context.Context, bucketUrl string, partition models.Partition) error
}

// PreparationUsecase turns the raw ratings export into the adjudication
// partition. It runs before any adjudication can happen, normally from the
// batch CLI.
type PreparationUsecase struct {
	enforceSecurity     security.EnforceSecurityAdmin
	exportRepository    preparationExportRepository
	partitionRepository preparationPartitionRepository
	bucketUrl           string
	ratingsFileName     string
}

// PrepareAdjudication extracts the export, classifies every common query as
// agreed or disagreed, writes the partition and returns its statistics. A
// malformed export aborts the run before anything is written.
func (usecase *PreparationUsecase) PrepareAdjudication(ctx context.Context,
) (models.PartitionSummary, error) {
	if err := usecase.enforceSecurity.PreparePartition(); err != nil {
		return models.PartitionSummary{}, err
	}
	ctx, span := utils.OpenTelemetryTracerFromContext(ctx).Start(
		ctx,
		"prepare_adjudication",
		trace.WithAttributes(attribute.String("ratings_file", usecase.ratingsFileName)))
	defer span.End()

	export, err := usecase.exportRepository.LoadRatingsExport(ctx, usecase.bucketUrl, usecase.ratingsFileName)
	if err != nil {
		return models.PartitionSummary{}, err
	}
	rows, err := preparation.ExtractRows(export)
	if err != nil {
		return models.PartitionSummary{}, err
	}

	partition := preparation.BuildPartition(rows)
	if err := usecase.partitionRepository.SavePartition(ctx, usecase.bucketUrl, partition); err != nil {
		return models.PartitionSummary{}, err
	}

	summary := preparation.Summarize(partition)
	logger := utils.LoggerFromContext(ctx)
	logger.InfoContext(ctx, "prepared the adjudication partition",
		"queries", summary.TotalQueries,
		"agreed", summary.AgreedCount,
		"disagreed", summary.DisagreedCount)
	for _, group := range summary.ByGroup {
		logger.InfoContext(ctx, "disagreements in group",
			"group", group.Group.String(), "queries", group.Count)
	}
	return summary, nil
}
