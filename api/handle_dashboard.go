package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gmkhealth/verdict-backend/dto"
	"github.com/gmkhealth/verdict-backend/usecases"
)

func handleAdjudicationDashboard(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		usecase := usecasesWithCreds(ctx, uc).NewDashboardUsecase()
		dashboard, err := usecase.AdjudicationDashboard(ctx)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{"dashboard": dto.AdaptAdjudicationDashboardDto(dashboard)})
	}
}

func handleEvaluationDashboard(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		usecase := usecasesWithCreds(ctx, uc).NewDashboardUsecase()
		dashboard, err := usecase.EvaluationDashboard(ctx)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{"dashboard": dto.AdaptEvaluationDashboardDto(dashboard)})
	}
}
