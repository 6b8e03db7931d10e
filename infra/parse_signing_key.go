package infra

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"log"
	"os"
	"strings"

	"github.com/gmkhealth/verdict-backend/utils"
)

func MustParseSigningKey(privateKeyString string) *rsa.PrivateKey {
	// when a multi-line env variable is passed to the docker container by docker-compose, it escapes the newlines
	privateKeyString = strings.Replace(privateKeyString, "\\n", "\n", -1)
	block, _ := pem.Decode([]byte(privateKeyString))
	if block == nil || block.Type != "RSA PRIVATE KEY" {
		log.Fatalf("failed to decode PEM block containing RSA private key")
	}

	privateKey, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		log.Fatalf("Can't load AUTHENTICATION_JWT_SIGNING_KEY private key %s", err)
	}
	return privateKey
}

// ReadParseOrGenerateSigningKey resolves the session token signing key from
// the inline PEM first, then the key file. Without either it generates an
// ephemeral key, which invalidates all sessions on restart, so that path is
// only acceptable for local development.
func ReadParseOrGenerateSigningKey(ctx context.Context, keyString, keyFile string) *rsa.PrivateKey {
	if keyString != "" {
		return MustParseSigningKey(keyString)
	}

	if keyFile != "" {
		keyBytes, err := os.ReadFile(keyFile)
		if err != nil {
			log.Fatalf("Can't read the signing key file %s: %s", keyFile, err)
		}
		return MustParseSigningKey(string(keyBytes))
	}

	utils.LoggerFromContext(ctx).WarnContext(ctx,
		"no signing key configured, generating an ephemeral one: sessions will not survive a restart")

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		log.Fatalf("rsa.GenerateKey error: %s", err)
	}
	return privateKey
}
