package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gmkhealth/verdict-backend/dto"
	"github.com/gmkhealth/verdict-backend/models"
	"github.com/gmkhealth/verdict-backend/pure_utils"
	"github.com/gmkhealth/verdict-backend/usecases"
	"github.com/gmkhealth/verdict-backend/utils"
)

type evaluationRecordUriInput struct {
	PatientId string `uri:"patient_id" binding:"required"`
	QueryNum  string `uri:"query_num" binding:"required"`
}

// evaluatorFromRequest names the evaluator a request targets. Evaluators act
// under their own login; the review admin may select one with ?evaluator=.
// Access policy stays with the usecase.
func evaluatorFromRequest(c *gin.Context, creds models.Credentials) string {
	if evaluator := c.Query("evaluator"); evaluator != "" {
		return evaluator
	}
	return creds.ActorIdentity.Actor
}

func handleGetAssignment(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		creds, _ := utils.CredentialsFromCtx(ctx)

		usecase := usecasesWithCreds(ctx, uc).NewEvaluationUsecase()
		assignment, err := usecase.GetAssignment(ctx, evaluatorFromRequest(c, creds))
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{"assignment": dto.AdaptAssignmentDto(assignment)})
	}
}

func handleListTaskStatuses(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		creds, _ := utils.CredentialsFromCtx(ctx)

		usecase := usecasesWithCreds(ctx, uc).NewEvaluationUsecase()
		statuses, err := usecase.ListTaskStatuses(ctx, evaluatorFromRequest(c, creds))
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{"tasks": pure_utils.Map(statuses, dto.AdaptTaskStatusDto)})
	}
}

func handleGetEvaluationRecord(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		creds, _ := utils.CredentialsFromCtx(ctx)

		var uri evaluationRecordUriInput
		if err := c.ShouldBindUri(&uri); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewEvaluationUsecase()
		record, err := usecase.GetRecord(ctx, evaluatorFromRequest(c, creds),
			uri.PatientId, uri.QueryNum)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{"record": dto.AdaptEvaluationRecordDto(record)})
	}
}

func handleStartEvaluation(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		creds, _ := utils.CredentialsFromCtx(ctx)

		var uri evaluationRecordUriInput
		if err := c.ShouldBindUri(&uri); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewEvaluationUsecase()
		record, err := usecase.StartEvaluation(ctx, creds.ActorIdentity.Actor,
			uri.PatientId, uri.QueryNum)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{"record": dto.AdaptEvaluationRecordDto(record)})
	}
}

func handleSubmitGrades(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		creds, _ := utils.CredentialsFromCtx(ctx)

		var uri struct {
			PatientId string `uri:"patient_id" binding:"required"`
			QueryNum  string `uri:"query_num" binding:"required"`
			Model     string `uri:"model" binding:"required,oneof=a b"`
		}
		if err := c.ShouldBindUri(&uri); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		side, err := models.ModelSideFromKey(uri.Model)
		if presentError(ctx, c, err) {
			return
		}

		var body dto.SubmitGradesBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewEvaluationUsecase()
		record, err := usecase.SubmitGrades(ctx, creds.ActorIdentity.Actor,
			uri.PatientId, uri.QueryNum, side, dto.AdaptSubmitGrades(body))
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{"record": dto.AdaptEvaluationRecordDto(record)})
	}
}

func handleSubmitComparison(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		creds, _ := utils.CredentialsFromCtx(ctx)

		var uri evaluationRecordUriInput
		if err := c.ShouldBindUri(&uri); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}

		var body dto.SubmitComparisonBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewEvaluationUsecase()
		outcome, err := usecase.SubmitComparison(ctx, creds.ActorIdentity.Actor,
			uri.PatientId, uri.QueryNum, dto.AdaptSubmitComparison(body))
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{"outcome": dto.AdaptEvaluationOutcomeDto(outcome)})
	}
}
