package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/gmkhealth/verdict-backend/models"
)

type RatingsExportRepository struct {
	mock.Mock
}

func (r *RatingsExportRepository) LoadRatingsExport(ctx context.Context, bucketUrl, fileName string) (models.RatingsExport, error) {
	args := r.Called(ctx, bucketUrl, fileName)
	return args.Get(0).(models.RatingsExport), args.Error(1)
}
