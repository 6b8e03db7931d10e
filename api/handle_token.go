package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gmkhealth/verdict-backend/dto"
)

type tokenGenerator interface {
	GenerateToken(ctx context.Context, kind, name, password string) (string, time.Time, error)
}

type TokenHandler struct {
	generator tokenGenerator
}

func (t *TokenHandler) GenerateToken(c *gin.Context) {
	ctx := c.Request.Context()

	var body dto.CreateTokenBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	accessToken, expirationTime, err := t.generator.GenerateToken(ctx, body.Kind, body.Name, body.Password)
	if presentError(ctx, c, err) {
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresAt:   expirationTime,
	})
}

func NewTokenHandler(generator tokenGenerator) *TokenHandler {
	return &TokenHandler{
		generator: generator,
	}
}
