package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gmkhealth/verdict-backend/dto"
	"github.com/gmkhealth/verdict-backend/utils"
)

func handleGetCredentials() func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		creds, err := utils.CredentialsFromContext(ctx)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"credentials": dto.AdaptCredentialDto(creds),
		})
	}
}
