package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gmkhealth/verdict-backend/dto"
	"github.com/gmkhealth/verdict-backend/usecases"
)

func handleRecoverAdjudications(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		usecase := usecasesWithCreds(ctx, uc).NewRecoveryUsecase()
		report, err := usecase.RecoverAdjudications(ctx)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{"report": dto.AdaptRecoveryReportDto(report)})
	}
}

func handleRecoverEvaluations(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		usecase := usecasesWithCreds(ctx, uc).NewRecoveryUsecase()
		report, err := usecase.RecoverEvaluations(ctx)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{"report": dto.AdaptRecoveryReportDto(report)})
	}
}

func handleResetEvaluations(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		usecase := usecasesWithCreds(ctx, uc).NewRecoveryUsecase()
		if presentError(ctx, c, usecase.ResetEvaluations(ctx)) {
			return
		}

		c.Status(http.StatusNoContent)
	}
}
