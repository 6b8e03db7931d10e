package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/gmkhealth/verdict-backend/models"
)

// SheetsMirrorRepository covers both mirror directions: adjudication
// push/pull and evaluation push.
type SheetsMirrorRepository struct {
	mock.Mock
}

func (s *SheetsMirrorRepository) PushAdjudication(ctx context.Context, query models.QueryRecord,
	record models.AdjudicationRecord, evaluator string, now time.Time,
) error {
	args := s.Called(ctx, query, record, evaluator, now)
	return args.Error(0)
}

func (s *SheetsMirrorRepository) PullAdjudications(ctx context.Context, now time.Time) ([]models.AdjudicationRecord, error) {
	args := s.Called(ctx, now)
	return args.Get(0).([]models.AdjudicationRecord), args.Error(1)
}

func (s *SheetsMirrorRepository) PushEvaluation(ctx context.Context, task models.EvaluationTask, record models.EvaluationRecord) error {
	args := s.Called(ctx, task, record)
	return args.Error(0)
}
