package api

import (
	"context"
	"net/http"

	"github.com/gmkhealth/verdict-backend/dto"
	"github.com/gmkhealth/verdict-backend/models"
	"github.com/gmkhealth/verdict-backend/utils"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
)

// presentError writes the appropriate status code and error payload for err
// and reports whether it consumed the request. Handlers call it as
// `if presentError(ctx, c, err) { return }`.
func presentError(ctx context.Context, c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	var incomplete models.IncompleteAdjudicationError
	if errors.As(err, &incomplete) {
		c.JSON(http.StatusUnprocessableEntity, dto.AdaptIncompleteAdjudicationDto(incomplete))
		return true
	}

	switch {
	case errors.Is(err, models.BadParameterError):
		c.JSON(http.StatusBadRequest, dto.APIErrorResponse{
			Message:   err.Error(),
			ErrorCode: errorCodeFromError(err),
		})
	case errors.Is(err, models.UnAuthorizedError):
		c.JSON(http.StatusUnauthorized, dto.APIErrorResponse{
			Message:   err.Error(),
			ErrorCode: errorCodeFromError(err),
		})
	case errors.Is(err, models.ForbiddenError):
		c.JSON(http.StatusForbidden, dto.APIErrorResponse{
			Message: err.Error(),
		})
	case errors.Is(err, models.NotFoundError):
		c.JSON(http.StatusNotFound, dto.APIErrorResponse{
			Message:   err.Error(),
			ErrorCode: errorCodeFromError(err),
		})
	case errors.Is(err, models.ConflictError):
		c.JSON(http.StatusConflict, dto.APIErrorResponse{
			Message: err.Error(),
		})
	case errors.Is(err, models.UnprocessableEntityError):
		c.JSON(http.StatusUnprocessableEntity, dto.APIErrorResponse{
			Message: err.Error(),
		})
	default:
		utils.LogAndReportSentryError(ctx, err)
		c.JSON(http.StatusInternalServerError, dto.APIErrorResponse{
			Message: err.Error(),
		})
	}
	return true
}

// errorCodeFromError maps the domain sentinels that clients branch on to
// their stable machine-readable codes. Errors without a dedicated code keep
// an empty error_code field.
func errorCodeFromError(err error) dto.ErrorCode {
	switch {
	case errors.Is(err, models.ErrNothingToAdvanceTo):
		return dto.NothingToAdvanceTo
	case errors.Is(err, models.ErrInvalidPassword):
		return dto.InvalidPassword
	case errors.Is(err, models.ErrIllegalTransition):
		return dto.IllegalTransition
	case errors.Is(err, models.ErrUnknownEvaluator):
		return dto.UnknownEvaluator
	}
	return ""
}
