package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/gmkhealth/verdict-backend/models"
)

type AdjudicationSnapshotRepository struct {
	mock.Mock
}

func (a *AdjudicationSnapshotRepository) LoadSnapshot(ctx context.Context, bucketUrl string) (models.AdjudicationSnapshot, error) {
	args := a.Called(ctx, bucketUrl)
	return args.Get(0).(models.AdjudicationSnapshot), args.Error(1)
}

func (a *AdjudicationSnapshotRepository) SaveSnapshot(ctx context.Context, bucketUrl string, snapshot models.AdjudicationSnapshot) error {
	args := a.Called(ctx, bucketUrl, snapshot)
	return args.Error(0)
}
