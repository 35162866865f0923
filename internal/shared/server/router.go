package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hireup-backend/internal/accounts"
	"hireup-backend/internal/analysis"
	"hireup-backend/internal/applicants"
	"hireup-backend/internal/applications"
	googleauth "hireup-backend/internal/auth"
	"hireup-backend/internal/companies"
	"hireup-backend/internal/jobs"
	"hireup-backend/internal/quizzes"
	"hireup-backend/internal/shared/config"
	"hireup-backend/internal/shared/metrics"
	"hireup-backend/internal/shared/server/middleware"
	"hireup-backend/internal/shared/server/respond"
	"hireup-backend/internal/topics"
)

// RouterDeps carries the wired handlers the router mounts.
type RouterDeps struct {
	Config              config.Config
	AccountsHandler     *accounts.Handler
	ApplicantsHandler   *applicants.Handler
	CompaniesHandler    *companies.Handler
	JobsHandler         *jobs.Handler
	QuizzesHandler      *quizzes.Handler
	TopicsHandler       *topics.Handler
	ApplicationsHandler *applications.Handler
	AnalysisHandler     *analysis.Handler
	GoogleAuth          *googleauth.GoogleService
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	deps.AccountsHandler.RegisterRoutes(api)
	deps.ApplicantsHandler.RegisterRoutes(api)
	deps.CompaniesHandler.RegisterRoutes(api)
	deps.JobsHandler.RegisterRoutes(api)
	deps.QuizzesHandler.RegisterRoutes(api)
	deps.TopicsHandler.RegisterRoutes(api)
	deps.ApplicationsHandler.RegisterRoutes(api)
	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}

	// Analysis calls fan out camera frames to an external service, so
	// per-caller rates are kept tighter than on the rest of the API.
	analysisGroup := api.Group("", middleware.RateLimit(middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			"ANALYSIS": {Rate: 2, Burst: 10},
		},
		DefaultGroup: "ANALYSIS",
	}))
	deps.AnalysisHandler.RegisterRoutes(analysisGroup)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
