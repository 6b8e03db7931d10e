package security

import (
	"errors"

	"github.com/gmkhealth/verdict-backend/models"
)

type EnforceSecurityAdmin interface {
	EnforceSecurity
	ReadDashboard() error
	RunRecovery() error
	ResetEvaluations() error
	MergeDataset() error
	PreparePartition() error
}

type EnforceSecurityAdminImpl struct {
	EnforceSecurity
	Credentials models.Credentials
}

func (e *EnforceSecurityAdminImpl) ReadDashboard() error {
	return errors.Join(
		e.Permission(models.DASHBOARD_READ),
	)
}

func (e *EnforceSecurityAdminImpl) RunRecovery() error {
	return errors.Join(
		e.Permission(models.RECOVERY_RUN),
	)
}

func (e *EnforceSecurityAdminImpl) ResetEvaluations() error {
	return errors.Join(
		e.Permission(models.RECOVERY_RUN),
	)
}

func (e *EnforceSecurityAdminImpl) MergeDataset() error {
	return errors.Join(
		e.Permission(models.RECOVERY_RUN),
		e.Permission(models.DASHBOARD_READ),
	)
}

func (e *EnforceSecurityAdminImpl) PreparePartition() error {
	return errors.Join(
		e.Permission(models.RECOVERY_RUN),
	)
}
