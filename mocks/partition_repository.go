package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/gmkhealth/verdict-backend/models"
)

// PartitionRepository mocks every consumer-side view of the partition store:
// the adjudication reads, the merge read and the preparation write.
type PartitionRepository struct {
	mock.Mock
}

func (p *PartitionRepository) LoadDisagreements(ctx context.Context, bucketUrl string) ([]models.QueryRecord, error) {
	args := p.Called(ctx, bucketUrl)
	return args.Get(0).([]models.QueryRecord), args.Error(1)
}

func (p *PartitionRepository) LoadDocLinks(ctx context.Context, bucketUrl string) (models.DocLinksMap, error) {
	args := p.Called(ctx, bucketUrl)
	return args.Get(0).(models.DocLinksMap), args.Error(1)
}

func (p *PartitionRepository) LoadPartition(ctx context.Context, bucketUrl string) (models.Partition, error) {
	args := p.Called(ctx, bucketUrl)
	return args.Get(0).(models.Partition), args.Error(1)
}

func (p *PartitionRepository) SavePartition(ctx context.Context, bucketUrl string, partition models.Partition) error {
	args := p.Called(ctx, bucketUrl, partition)
	return args.Error(0)
}
