package security

import (
	"errors"

	"github.com/gmkhealth/verdict-backend/models"
)

type EnforceSecurityAdjudication interface {
	EnforceSecurity
	ReadQueue(group models.Group) error
	SubmitAdjudication(group models.Group) error
	ReadProgress(group models.Group) error
}

type EnforceSecurityAdjudicationImpl struct {
	EnforceSecurity
	Credentials models.Credentials
}

func (e *EnforceSecurityAdjudicationImpl) ReadQueue(group models.Group) error {
	return errors.Join(
		e.Permission(models.ADJUDICATION_QUEUE_READ),
		e.ReadGroup(group),
	)
}

func (e *EnforceSecurityAdjudicationImpl) SubmitAdjudication(group models.Group) error {
	return errors.Join(
		e.Permission(models.ADJUDICATION_SUBMIT),
		e.ReadGroup(group),
	)
}

func (e *EnforceSecurityAdjudicationImpl) ReadProgress(group models.Group) error {
	return errors.Join(
		e.Permission(models.PROGRESS_READ),
		e.ReadGroup(group),
	)
}
