package api

import (
	"context"
	"crypto/rsa"

	"github.com/segmentio/analytics-go/v3"

	"github.com/gmkhealth/verdict-backend/repositories"
	"github.com/gmkhealth/verdict-backend/usecases/token"
	"github.com/gmkhealth/verdict-backend/utils"
)

type dependencies struct {
	Authentication utils.Authentication
	TokenHandler   *TokenHandler
	SegmentClient  analytics.Client
}

func InitDependencies(
	ctx context.Context,
	conf Configuration,
	signingKey *rsa.PrivateKey,
) (dependencies, error) {
	if conf.DisableSegment {
		conf.SegmentWriteKey = ""
	}
	segmentClient := analytics.New(conf.SegmentWriteKey)

	directory, err := token.NewPasswordDirectory(
		conf.GroupPasswords, conf.EvaluatorPasswords, conf.AdminPassword)
	if err != nil {
		return dependencies{}, err
	}

	jwtRepository := repositories.NewSessionJwtRepository(signingKey)
	tokenGenerator := token.NewGenerator(directory, jwtRepository, conf.TokenLifetimeMinute)
	tokenValidator := token.NewValidator(jwtRepository)

	return dependencies{
		Authentication: utils.NewAuthentication(tokenValidator),
		TokenHandler:   NewTokenHandler(tokenGenerator),
		SegmentClient:  segmentClient,
	}, nil
}
