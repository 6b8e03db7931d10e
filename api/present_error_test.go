package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/gmkhealth/verdict-backend/models"
)

func performWithError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/test", func(c *gin.Context) {
		if presentError(c.Request.Context(), c, err) {
			return
		}
		c.Status(http.StatusOK)
	})

	r := httptest.NewRecorder()
	router.ServeHTTP(r, httptest.NewRequest(http.MethodGet, "/test", nil))
	return r
}

func TestPresentError_StatusCodes(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"nil passes through", nil, http.StatusOK},
		{"bad parameter", errors.Wrap(models.BadParameterError, "oops"), http.StatusBadRequest},
		{"unauthorized", models.ErrInvalidPassword, http.StatusUnauthorized},
		{"forbidden", errors.Wrap(models.ForbiddenError, "not yours"), http.StatusForbidden},
		{"not found", errors.Wrap(models.ErrUnknownQuery, "PT-093-1.0"), http.StatusNotFound},
		{"conflict", errors.Wrap(models.ConflictError, "dup"), http.StatusConflict},
		{"unprocessable", models.ErrMissingReasons, http.StatusUnprocessableEntity},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := performWithError(t, tc.err)
			assert.Equal(t, tc.status, r.Code)
		})
	}
}

func TestPresentError_ErrorCodes(t *testing.T) {
	t.Run("nothing to advance to", func(t *testing.T) {
		r := performWithError(t, errors.Wrap(models.ErrNothingToAdvanceTo, "Group B"))
		assert.Equal(t, http.StatusNotFound, r.Code)
		assert.Contains(t, r.Body.String(), `"error_code":"nothing_to_advance_to"`)
	})

	t.Run("illegal screen transition", func(t *testing.T) {
		r := performWithError(t, errors.Wrap(models.ErrIllegalTransition, "queue to dashboard"))
		assert.Equal(t, http.StatusBadRequest, r.Code)
		assert.Contains(t, r.Body.String(), `"error_code":"illegal_screen_transition"`)
	})

	t.Run("errors without a code omit the field", func(t *testing.T) {
		r := performWithError(t, errors.Wrap(models.BadParameterError, "oops"))
		assert.NotContains(t, r.Body.String(), "error_code")
	})
}

func TestPresentError_IncompleteAdjudication(t *testing.T) {
	err := models.IncompleteAdjudicationError{
		MissingRatings:  []string{"Hallucination (Model A)"},
		MissingFindings: []string{"Safety Omission (Model B)"},
	}

	r := performWithError(t, err)

	assert.Equal(t, http.StatusUnprocessableEntity, r.Code)
	assert.Contains(t, r.Body.String(), `"error_code":"incomplete_adjudication"`)
	assert.Contains(t, r.Body.String(), "Hallucination (Model A)")
	assert.Contains(t, r.Body.String(), "Safety Omission (Model B)")
}
