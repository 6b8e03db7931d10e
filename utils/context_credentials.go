package utils

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/gmkhealth/verdict-backend/models"
)

func StoreCredentialsInContext(ctx context.Context, creds models.Credentials) context.Context {
	return context.WithValue(ctx, ContextKeyCredentials, creds)
}

func CredentialsFromCtx(ctx context.Context) (models.Credentials, bool) {
	creds, ok := ctx.Value(ContextKeyCredentials).(models.Credentials)
	return creds, ok
}

// CredentialsFromContext is for handlers that cannot run unauthenticated. A
// missing value means the route was wired without the authentication
// middleware, which is a programming error rather than a client one.
func CredentialsFromContext(ctx context.Context) (models.Credentials, error) {
	creds, ok := CredentialsFromCtx(ctx)
	if !ok {
		return models.Credentials{}, errors.Wrap(models.UnAuthorizedError,
			"no credentials in context")
	}
	return creds, nil
}
