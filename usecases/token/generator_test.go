package token

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gmkhealth/verdict-backend/mocks"
	"github.com/gmkhealth/verdict-backend/models"
	"github.com/gmkhealth/verdict-backend/repositories/clock"
)

func testDirectory() PasswordDirectory {
	return PasswordDirectory{
		GroupPasswords: map[models.Group]string{
			models.GroupA: "alpha-secret",
			models.GroupB: "bravo-secret",
		},
		EvaluatorPasswords: map[string]string{
			"Evaluator 1": "eval-one-secret",
			"Evaluator 3": "eval-three-secret",
		},
		AdminPassword: "admin-secret",
	}
}

func TestGenerator_GenerateToken_Group(t *testing.T) {
	token := "token"
	now := time.Now()
	ctx := context.Background()

	t.Run("nominal", func(t *testing.T) {
		mockEncoder := new(mocks.JWTEncoderValidator)
		mockEncoder.On("EncodeSessionToken", now.Add(120*time.Minute),
			models.NewGroupCredentials(models.GroupA)).
			Return(token, nil)

		generator := Generator{
			directory:     testDirectory(),
			encoder:       mockEncoder,
			clock:         clock.NewMock(now),
			tokenLifetime: 120 * time.Minute,
		}

		receivedToken, expirationTime, err := generator.GenerateToken(ctx, LoginKindGroup, "Group A", "alpha-secret")
		assert.NoError(t, err)
		assert.Equal(t, token, receivedToken)
		assert.Equal(t, now.Add(120*time.Minute), expirationTime)

		mockEncoder.AssertExpectations(t)
	})

	t.Run("wrong password", func(t *testing.T) {
		generator := Generator{
			directory: testDirectory(),
		}

		_, _, err := generator.GenerateToken(ctx, LoginKindGroup, "Group A", "wrong")
		assert.ErrorIs(t, err, models.UnAuthorizedError)
	})

	t.Run("unknown group", func(t *testing.T) {
		generator := Generator{
			directory: testDirectory(),
		}

		_, _, err := generator.GenerateToken(ctx, LoginKindGroup, "Group Z", "alpha-secret")
		assert.ErrorIs(t, err, models.BadParameterError)
	})

	t.Run("group without a configured password", func(t *testing.T) {
		generator := Generator{
			directory: testDirectory(),
		}

		_, _, err := generator.GenerateToken(ctx, LoginKindGroup, "Group C", "")
		assert.ErrorIs(t, err, models.UnAuthorizedError)
	})

	t.Run("EncodeSessionToken error", func(t *testing.T) {
		mockEncoder := new(mocks.JWTEncoderValidator)
		mockEncoder.On("EncodeSessionToken", now.Add(120*time.Minute),
			models.NewGroupCredentials(models.GroupB)).
			Return("", assert.AnError)

		generator := Generator{
			directory:     testDirectory(),
			encoder:       mockEncoder,
			clock:         clock.NewMock(now),
			tokenLifetime: 120 * time.Minute,
		}

		_, _, err := generator.GenerateToken(ctx, LoginKindGroup, "Group B", "bravo-secret")
		assert.Error(t, err)
		mockEncoder.AssertExpectations(t)
	})
}

func TestGenerator_GenerateToken_Evaluator(t *testing.T) {
	token := "token"
	now := time.Now()
	ctx := context.Background()

	t.Run("nominal", func(t *testing.T) {
		mockEncoder := new(mocks.JWTEncoderValidator)
		mockEncoder.On("EncodeSessionToken", now.Add(120*time.Minute),
			models.NewEvaluatorCredentials("Evaluator 3", models.GroupB)).
			Return(token, nil)

		generator := Generator{
			directory:     testDirectory(),
			encoder:       mockEncoder,
			clock:         clock.NewMock(now),
			tokenLifetime: 120 * time.Minute,
		}

		receivedToken, expirationTime, err := generator.GenerateToken(ctx,
			LoginKindEvaluator, "Evaluator 3", "eval-three-secret")
		assert.NoError(t, err)
		assert.Equal(t, token, receivedToken)
		assert.Equal(t, now.Add(120*time.Minute), expirationTime)

		mockEncoder.AssertExpectations(t)
	})

	t.Run("unknown evaluator", func(t *testing.T) {
		generator := Generator{
			directory: testDirectory(),
		}

		_, _, err := generator.GenerateToken(ctx, LoginKindEvaluator, "Evaluator 9", "whatever")
		assert.ErrorIs(t, err, models.NotFoundError)
	})

	t.Run("wrong password", func(t *testing.T) {
		generator := Generator{
			directory: testDirectory(),
		}

		_, _, err := generator.GenerateToken(ctx, LoginKindEvaluator, "Evaluator 1", "wrong")
		assert.ErrorIs(t, err, models.UnAuthorizedError)
	})
}

func TestGenerator_GenerateToken_Admin(t *testing.T) {
	token := "token"
	now := time.Now()
	ctx := context.Background()

	t.Run("nominal", func(t *testing.T) {
		mockEncoder := new(mocks.JWTEncoderValidator)
		mockEncoder.On("EncodeSessionToken", now.Add(120*time.Minute),
			models.NewAdminCredentials()).
			Return(token, nil)

		generator := Generator{
			directory:     testDirectory(),
			encoder:       mockEncoder,
			clock:         clock.NewMock(now),
			tokenLifetime: 120 * time.Minute,
		}

		receivedToken, _, err := generator.GenerateToken(ctx, LoginKindAdmin, "", "admin-secret")
		assert.NoError(t, err)
		assert.Equal(t, token, receivedToken)

		mockEncoder.AssertExpectations(t)
	})

	t.Run("admin login disabled when no password is set", func(t *testing.T) {
		generator := Generator{
			directory: PasswordDirectory{},
		}

		_, _, err := generator.GenerateToken(ctx, LoginKindAdmin, "", "")
		assert.ErrorIs(t, err, models.UnAuthorizedError)
	})
}

func TestGenerator_GenerateToken_UnknownKind(t *testing.T) {
	generator := Generator{
		directory: testDirectory(),
	}

	_, _, err := generator.GenerateToken(context.Background(), "service-account", "x", "y")
	assert.ErrorIs(t, err, models.BadParameterError)
}
