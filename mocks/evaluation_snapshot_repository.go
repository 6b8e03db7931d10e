package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/gmkhealth/verdict-backend/models"
)

type EvaluationSnapshotRepository struct {
	mock.Mock
}

func (e *EvaluationSnapshotRepository) LoadSnapshot(ctx context.Context, bucketUrl string) (models.EvaluationSnapshot, error) {
	args := e.Called(ctx, bucketUrl)
	return args.Get(0).(models.EvaluationSnapshot), args.Error(1)
}

func (e *EvaluationSnapshotRepository) SaveSnapshot(ctx context.Context, bucketUrl string, snapshot models.EvaluationSnapshot) error {
	args := e.Called(ctx, bucketUrl, snapshot)
	return args.Error(0)
}
