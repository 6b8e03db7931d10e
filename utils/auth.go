package utils

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/gmkhealth/verdict-backend/models"
)

type validator interface {
	Validate(ctx context.Context, token string) (models.Credentials, error)
}

type Authentication struct {
	Validator validator
}

func NewAuthentication(validator validator) Authentication {
	return Authentication{
		Validator: validator,
	}
}

// Middleware authenticates the request from its bearer token and stores the
// resulting credentials in the request context, with the logger enriched so
// every downstream line carries the actor and role.
func (a *Authentication) Middleware(c *gin.Context) {
	ctx := c.Request.Context()

	token, err := ParseAuthorizationBearerHeader(c.Request.Header)
	if err != nil {
		_ = c.Error(fmt.Errorf("could not parse authorization header: %w", err))
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	credentials, err := a.Validator.Validate(ctx, token)
	if err != nil {
		if errors.Is(err, models.UnAuthorizedError) || errors.Is(err, models.NotFoundError) {
			_ = c.Error(fmt.Errorf("validator.Validate error: %w", err))
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		LogAndReportSentryError(ctx, err)
		LoggerFromContext(ctx).ErrorContext(ctx,
			"errors while validating token", "error", err)

		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	newContext := StoreCredentialsInContext(ctx, credentials)
	logger := LoggerFromContext(newContext).
		With("Actor", credentials.ActorIdentity.Actor).
		With("Role", credentials.Role.String())
	c.Request = c.Request.WithContext(StoreLoggerInContext(newContext, logger))
	c.Next()
}

func ParseAuthorizationBearerHeader(header http.Header) (string, error) {
	authorization := header.Get("Authorization")
	if authorization == "" {
		return "", nil
	}

	authHeader := strings.Split(authorization, "Bearer ")
	if len(authHeader) != 2 {
		return "", fmt.Errorf("malformed token: %w", models.UnAuthorizedError)
	}
	return authHeader[1], nil
}
