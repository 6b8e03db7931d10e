package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/gmkhealth/verdict-backend/models"
	"github.com/gmkhealth/verdict-backend/repositories"
	"github.com/gmkhealth/verdict-backend/usecases"
	"github.com/gmkhealth/verdict-backend/utils"
)

// storeTestCredentials stands in for the authentication middleware.
func storeTestCredentials(creds models.Credentials) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := utils.StoreCredentialsInContext(c.Request.Context(), creds)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func newSessionRouter(creds models.Credentials) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(storeTestCredentials(creds))
	router.POST("/session/screen", handleScreenTransition(usecases.NewUsecases(repositories.Repositories{})))
	return router
}

func TestHandleScreenTransition(t *testing.T) {
	creds := models.NewGroupCredentials(models.GroupA)

	t.Run("legal move", func(t *testing.T) {
		router := newSessionRouter(creds)

		body := `{"from": "queue", "to": "review"}`
		req := httptest.NewRequest(http.MethodPost, "/session/screen", strings.NewReader(body))
		r := httptest.NewRecorder()
		router.ServeHTTP(r, req)

		assert.Equal(t, http.StatusOK, r.Code)
		assert.JSONEq(t, `{"screen": "review"}`, r.Body.String())
	})

	t.Run("illegal move", func(t *testing.T) {
		router := newSessionRouter(creds)

		body := `{"from": "queue", "to": "dashboard"}`
		req := httptest.NewRequest(http.MethodPost, "/session/screen", strings.NewReader(body))
		r := httptest.NewRecorder()
		router.ServeHTTP(r, req)

		assert.Equal(t, http.StatusBadRequest, r.Code)
		assert.Contains(t, r.Body.String(), "illegal_screen_transition")
	})

	t.Run("unknown screen name", func(t *testing.T) {
		router := newSessionRouter(creds)

		body := `{"from": "queue", "to": "settings"}`
		req := httptest.NewRequest(http.MethodPost, "/session/screen", strings.NewReader(body))
		r := httptest.NewRecorder()
		router.ServeHTTP(r, req)

		assert.Equal(t, http.StatusBadRequest, r.Code)
	})
}
