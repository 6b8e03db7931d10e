package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gmkhealth/verdict-backend/dto"
	"github.com/gmkhealth/verdict-backend/models"
	"github.com/gmkhealth/verdict-backend/usecases"
	"github.com/gmkhealth/verdict-backend/utils"
)

// groupFromRequest resolves the cohort a request targets. Adjudicators are
// pinned to their login group; the review admin selects one with ?group=.
func groupFromRequest(c *gin.Context, creds models.Credentials) (models.Group, error) {
	if creds.Group != nil {
		return *creds.Group, nil
	}
	return models.GroupFromString(c.Query("group"))
}

func handleGetAdjudicationQueue(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		creds, _ := utils.CredentialsFromCtx(ctx)

		group, err := groupFromRequest(c, creds)
		if presentError(ctx, c, err) {
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewAdjudicationUsecase()
		queue, err := usecase.GetQueue(ctx, group)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{"queue": dto.AdaptAdjudicationQueueDto(queue)})
	}
}

func handleGetNextQuery(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		creds, _ := utils.CredentialsFromCtx(ctx)

		group, err := groupFromRequest(c, creds)
		if presentError(ctx, c, err) {
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewAdjudicationUsecase()
		entry, err := usecase.GetNextQuery(ctx, group, c.Query("after"))
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{"entry": dto.AdaptQueueEntryDto(entry)})
	}
}

func handleGetReviewBundle(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var uri struct {
			QueryKey string `uri:"query_key" binding:"required"`
		}
		if err := c.ShouldBindUri(&uri); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewAdjudicationUsecase()
		bundle, err := usecase.GetReviewBundle(ctx, uri.QueryKey)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{"review": dto.AdaptReviewBundleDto(bundle)})
	}
}

func handleSubmitAdjudication(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var uri struct {
			QueryKey string `uri:"query_key" binding:"required"`
		}
		if err := c.ShouldBindUri(&uri); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}

		var body dto.SubmitAdjudicationBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		resolutions, err := dto.AdaptSubmitAdjudication(body)
		if presentError(ctx, c, err) {
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewAdjudicationUsecase()
		outcome, err := usecase.SubmitAdjudication(ctx, uri.QueryKey, resolutions)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{"outcome": dto.AdaptSubmitOutcomeDto(outcome)})
	}
}

func handleGetAdjudicationProgress(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		creds, _ := utils.CredentialsFromCtx(ctx)

		// The admin may omit ?group= for the overall figure; adjudicators
		// always get their own group.
		var group *models.Group
		if creds.Group != nil {
			group = creds.Group
		} else if raw := c.Query("group"); raw != "" {
			parsed, err := models.GroupFromString(raw)
			if presentError(ctx, c, err) {
				return
			}
			group = &parsed
		}

		usecase := usecasesWithCreds(ctx, uc).NewAdjudicationUsecase()
		stats, err := usecase.GetProgress(ctx, group)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{"progress": dto.AdaptProgressStatsDto(stats)})
	}
}
