package security

import (
	"github.com/cockroachdb/errors"
	"github.com/gmkhealth/verdict-backend/models"
)

type EnforceSecurityEvaluation interface {
	EnforceSecurity
	ReadEvaluation(evaluator string) error
	SubmitGrade(evaluator string) error
}

type EnforceSecurityEvaluationImpl struct {
	EnforceSecurity
	Credentials models.Credentials
}

func (e *EnforceSecurityEvaluationImpl) ReadEvaluation(evaluator string) error {
	// the review admin can read every evaluator's records
	err := e.Permission(models.DASHBOARD_READ)
	if err == nil {
		return e.Permission(models.EVALUATION_READ)
	}

	// an evaluator can only read their own
	if err := e.Permission(models.EVALUATION_READ); err != nil {
		return err
	}
	if e.Credentials.ActorIdentity.Actor == evaluator {
		return nil
	}
	return errors.Wrap(models.ForbiddenError, "evaluators can only access their own records")
}

func (e *EnforceSecurityEvaluationImpl) SubmitGrade(evaluator string) error {
	if err := e.Permission(models.EVALUATION_SUBMIT); err != nil {
		return err
	}
	if e.Credentials.ActorIdentity.Actor != evaluator {
		return errors.Wrap(models.ForbiddenError, "evaluators can only submit grades under their own name")
	}
	return nil
}
