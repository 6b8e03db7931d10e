package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/gmkhealth/verdict-backend/models"
)

// EnforceSecurity satisfies every enforce-security interface so a single mock
// serves all usecase suites.
type EnforceSecurity struct {
	mock.Mock
}

func (e *EnforceSecurity) Permission(permission models.Permission) error {
	args := e.Called(permission)
	return args.Error(0)
}

func (e *EnforceSecurity) ReadGroup(group models.Group) error {
	args := e.Called(group)
	return args.Error(0)
}

func (e *EnforceSecurity) ReadQueue(group models.Group) error {
	args := e.Called(group)
	return args.Error(0)
}

func (e *EnforceSecurity) SubmitAdjudication(group models.Group) error {
	args := e.Called(group)
	return args.Error(0)
}

func (e *EnforceSecurity) ReadProgress(group models.Group) error {
	args := e.Called(group)
	return args.Error(0)
}

func (e *EnforceSecurity) ReadEvaluation(evaluator string) error {
	args := e.Called(evaluator)
	return args.Error(0)
}

func (e *EnforceSecurity) SubmitGrade(evaluator string) error {
	args := e.Called(evaluator)
	return args.Error(0)
}

func (e *EnforceSecurity) ReadDashboard() error {
	args := e.Called()
	return args.Error(0)
}

func (e *EnforceSecurity) RunRecovery() error {
	args := e.Called()
	return args.Error(0)
}

func (e *EnforceSecurity) ResetEvaluations() error {
	args := e.Called()
	return args.Error(0)
}

func (e *EnforceSecurity) MergeDataset() error {
	args := e.Called()
	return args.Error(0)
}

func (e *EnforceSecurity) PreparePartition() error {
	args := e.Called()
	return args.Error(0)
}
