package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/gmkhealth/verdict-backend/models"
)

type MergedDatasetRepository struct {
	mock.Mock
}

func (m *MergedDatasetRepository) SaveFinalDataset(ctx context.Context, bucketUrl string, rows []models.FinalDatasetRow) error {
	args := m.Called(ctx, bucketUrl, rows)
	return args.Error(0)
}

func (m *MergedDatasetRepository) SaveCalibrationReport(ctx context.Context, bucketUrl string, rows []models.CalibrationRow) error {
	args := m.Called(ctx, bucketUrl, rows)
	return args.Error(0)
}
