package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/gmkhealth/verdict-backend/models"
)

type SubmissionsExportRepository struct {
	mock.Mock
}

func (s *SubmissionsExportRepository) LoadSubmissionsExport(ctx context.Context, bucketUrl, fileName string) ([]models.EvaluationSubmission, error) {
	args := s.Called(ctx, bucketUrl, fileName)
	return args.Get(0).([]models.EvaluationSubmission), args.Error(1)
}
