package token

import (
	"context"

	"github.com/gmkhealth/verdict-backend/models"
)

type sessionTokenValidator interface {
	ValidateSessionToken(sessionToken string) (models.Credentials, error)
}

type Validator struct {
	validator sessionTokenValidator
}

func (v *Validator) Validate(ctx context.Context, sessionToken string) (models.Credentials, error) {
	return v.validator.ValidateSessionToken(sessionToken)
}

func NewValidator(validator sessionTokenValidator) *Validator {
	return &Validator{
		validator: validator,
	}
}
