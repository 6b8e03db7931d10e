package repositories

import (
	"crypto/rsa"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/gmkhealth/verdict-backend/dto"
	"github.com/gmkhealth/verdict-backend/models"
)

// SessionJwtRepository signs and validates the session tokens both browser
// tools authenticate with.
type SessionJwtRepository struct {
	jwtSigningPrivateKey rsa.PrivateKey
}

// Claims embeds jwt.RegisteredClaims to provide fields like expiry time.
type Claims struct {
	Credentials dto.Credentials `json:"credentials"`
	jwt.RegisteredClaims
}

var ValidationAlgo = jwt.SigningMethodRS256

func (repo *SessionJwtRepository) EncodeSessionToken(expirationTime time.Time, creds models.Credentials) (string, error) {
	claims := &Claims{
		Credentials: dto.AdaptCredentialDto(creds),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			Issuer:    "verdict",
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(ValidationAlgo, claims)
	return token.SignedString(&repo.jwtSigningPrivateKey)
}

func (repo *SessionJwtRepository) ValidateSessionToken(sessionToken string) (models.Credentials, error) {
	keyFunc := func(token *jwt.Token) (interface{}, error) {
		method, ok := token.Method.(*jwt.SigningMethodRSA)
		if !ok || method != ValidationAlgo {
			return nil, errors.Wrapf(models.UnAuthorizedError,
				"unexpected signing method: %v", token.Header["alg"])
		}
		return &repo.jwtSigningPrivateKey.PublicKey, nil
	}

	token, err := jwt.ParseWithClaims(sessionToken, &Claims{}, keyFunc)
	if err != nil {
		return models.Credentials{}, errors.Join(
			models.UnAuthorizedError,
			errors.Wrapf(err, "Error parsing jwt token claims"),
		)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return dto.AdaptCredential(claims.Credentials), nil
	}
	return models.Credentials{}, fmt.Errorf("invalid session token")
}

func NewSessionJwtRepository(key *rsa.PrivateKey) *SessionJwtRepository {
	return &SessionJwtRepository{
		jwtSigningPrivateKey: *key,
	}
}
