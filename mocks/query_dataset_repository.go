package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/gmkhealth/verdict-backend/models"
)

type QueryDatasetRepository struct {
	mock.Mock
}

func (q *QueryDatasetRepository) LoadQueryDataset(ctx context.Context, bucketUrl, fileName string) ([]models.QueryDatasetRow, error) {
	args := q.Called(ctx, bucketUrl, fileName)
	return args.Get(0).([]models.QueryDatasetRow), args.Error(1)
}
