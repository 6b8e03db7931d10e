package mocks

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/gmkhealth/verdict-backend/models"
)

type JWTEncoderValidator struct {
	mock.Mock
}

func (m *JWTEncoderValidator) EncodeSessionToken(expirationTime time.Time, creds models.Credentials) (string, error) {
	args := m.Called(expirationTime, creds)
	return args.String(0), args.Error(1)
}

func (m *JWTEncoderValidator) ValidateSessionToken(sessionToken string) (models.Credentials, error) {
	args := m.Called(sessionToken)
	return args.Get(0).(models.Credentials), args.Error(1)
}
