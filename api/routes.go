package api

import (
	"net/http"
	"time"

	limits "github.com/gin-contrib/size"
	"github.com/gin-gonic/gin"
	timeout "github.com/vearne/gin-timeout"

	"github.com/gmkhealth/verdict-backend/usecases"
	"github.com/gmkhealth/verdict-backend/utils"
)

// Submissions are small JSON documents; anything larger is a broken client.
const maxBodySize = 1 * 1024 * 1024 // 1MB

func timeoutMiddleware(duration time.Duration) gin.HandlerFunc {
	return timeout.Timeout(
		timeout.WithTimeout(duration),
		timeout.WithErrorHttpCode(http.StatusRequestTimeout),
		timeout.WithDefaultMsg("Request timeout"),
	)
}

func addRoutes(r *gin.Engine, conf Configuration, uc usecases.Usecases,
	auth utils.Authentication, tokenHandler *TokenHandler,
) {
	r.GET("/liveness", handleLivenessProbe)
	r.POST("/token", tokenHandler.GenerateToken)

	router := r.Use(auth.Middleware, limits.RequestSizeLimiter(maxBodySize))

	router.GET("/credentials", handleGetCredentials())

	router.GET("/adjudication/queue", handleGetAdjudicationQueue(uc))
	router.GET("/adjudication/queue/next", handleGetNextQuery(uc))
	router.GET("/adjudication/queries/:query_key", handleGetReviewBundle(uc))
	router.POST("/adjudication/queries/:query_key", handleSubmitAdjudication(uc))
	router.GET("/adjudication/progress", handleGetAdjudicationProgress(uc))

	router.GET("/evaluation/assignments", handleGetAssignment(uc))
	router.GET("/evaluation/tasks", handleListTaskStatuses(uc))
	router.GET("/evaluation/records/:patient_id/:query_num", handleGetEvaluationRecord(uc))
	router.POST("/evaluation/records/:patient_id/:query_num/start", handleStartEvaluation(uc))
	router.POST("/evaluation/records/:patient_id/:query_num/grades/:model", handleSubmitGrades(uc))
	router.POST("/evaluation/records/:patient_id/:query_num/comparison", handleSubmitComparison(uc))

	router.GET("/dashboard/adjudication", handleAdjudicationDashboard(uc))
	router.GET("/dashboard/evaluation", handleEvaluationDashboard(uc))

	router.POST("/recovery/adjudications",
		timeoutMiddleware(conf.RecoveryTimeout), handleRecoverAdjudications(uc))
	router.POST("/recovery/evaluations",
		timeoutMiddleware(conf.RecoveryTimeout), handleRecoverEvaluations(uc))
	router.DELETE("/evaluation/records", handleResetEvaluations(uc))

	router.POST("/session/screen", handleScreenTransition(uc))
}
