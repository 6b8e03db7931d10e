package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gmkhealth/verdict-backend/dto"
	"github.com/gmkhealth/verdict-backend/usecases"
)

func handleScreenTransition(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var body dto.ScreenTransitionBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewAdjudicationUsecase()
		screen, err := usecase.ValidateScreenTransition(ctx, body.From, body.To)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, dto.ScreenTransitionResponse{Screen: screen.String()})
	}
}
