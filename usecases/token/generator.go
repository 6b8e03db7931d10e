package token

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/gmkhealth/verdict-backend/models"
	"github.com/gmkhealth/verdict-backend/repositories/clock"
	"github.com/gmkhealth/verdict-backend/usecases/tracking"
)

const (
	LoginKindGroup     = "group"
	LoginKindEvaluator = "evaluator"
	LoginKindAdmin     = "admin"
)

type encoder interface {
	EncodeSessionToken(expirationTime time.Time, creds models.Credentials) (string, error)
}

type Generator struct {
	directory     PasswordDirectory
	encoder       encoder
	clock         clock.Clock
	tokenLifetime time.Duration
}

func (g *Generator) encodeToken(credentials models.Credentials) (string, time.Time, models.Credentials, error) {
	expirationTime := g.clock.Now().Add(g.tokenLifetime)

	token, err := g.encoder.EncodeSessionToken(expirationTime, credentials)
	if err != nil {
		return "", time.Time{}, models.Credentials{},
			fmt.Errorf("encoder.EncodeSessionToken error: %w", err)
	}
	return token, expirationTime, credentials, nil
}

func passwordMatches(expected, got string) bool {
	if expected == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(got)) == 1
}

func (g *Generator) fromGroupPassword(name, password string) (string, time.Time, models.Credentials, error) {
	group, err := models.GroupFromString(name)
	if err != nil {
		return "", time.Time{}, models.Credentials{}, err
	}
	if !passwordMatches(g.directory.GroupPasswords[group], password) {
		return "", time.Time{}, models.Credentials{}, models.ErrInvalidPassword
	}
	return g.encodeToken(models.NewGroupCredentials(group))
}

func (g *Generator) fromEvaluatorPassword(name, password string) (string, time.Time, models.Credentials, error) {
	group, ok := models.GroupOfEvaluator(name)
	if !ok {
		return "", time.Time{}, models.Credentials{},
			errors.Wrap(models.ErrUnknownEvaluator, name)
	}
	if !passwordMatches(g.directory.EvaluatorPasswords[name], password) {
		return "", time.Time{}, models.Credentials{}, models.ErrInvalidPassword
	}
	return g.encodeToken(models.NewEvaluatorCredentials(name, group))
}

func (g *Generator) fromAdminPassword(password string) (string, time.Time, models.Credentials, error) {
	if !passwordMatches(g.directory.AdminPassword, password) {
		return "", time.Time{}, models.Credentials{}, models.ErrInvalidPassword
	}
	return g.encodeToken(models.NewAdminCredentials())
}

func (g *Generator) GenerateToken(ctx context.Context, kind, name, password string) (string, time.Time, error) {
	var (
		token          string
		expirationTime time.Time
		credentials    models.Credentials
		err            error
	)
	switch kind {
	case LoginKindGroup:
		token, expirationTime, credentials, err = g.fromGroupPassword(name, password)
	case LoginKindEvaluator:
		token, expirationTime, credentials, err = g.fromEvaluatorPassword(name, password)
	case LoginKindAdmin:
		token, expirationTime, credentials, err = g.fromAdminPassword(password)
	default:
		return "", time.Time{}, errors.Wrap(models.BadParameterError,
			fmt.Sprintf("unknown login kind %q", kind))
	}
	if err != nil {
		return "", time.Time{}, err
	}

	tracking.TrackEventWithActor(ctx, models.AnalyticsTokenCreated,
		credentials.ActorIdentity.Actor, map[string]interface{}{
			"role": credentials.Role.String(),
		})
	if credentials.Group != nil {
		tracking.Group(ctx, credentials.ActorIdentity.Actor, *credentials.Group,
			map[string]interface{}{"name": credentials.Group.String()})
	}

	return token, expirationTime, nil
}

func NewGenerator(directory PasswordDirectory, encoder encoder, tokenLifetime int) *Generator {
	return &Generator{
		directory:     directory,
		encoder:       encoder,
		clock:         clock.New(),
		tokenLifetime: time.Duration(tokenLifetime) * time.Minute,
	}
}
