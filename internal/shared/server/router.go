package server

import (
	"github.com/gin-gonic/gin"

	"recruitment-backend/internal/candidates"
	"recruitment-backend/internal/shared/config"
	"recruitment-backend/internal/shared/metrics"
	"recruitment-backend/internal/shared/server/middleware"
	"recruitment-backend/internal/shared/server/respond"
)

// RouterDeps carries everything the router wires into routes.
type RouterDeps struct {
	Config           config.Config
	CandidateHandler *candidates.Handler
}

// NewRouter assembles the gin engine with the shared middleware chain and the
// versioned API group.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(middleware.RequestID())
	r.Use(middleware.Logging())
	r.Use(middleware.Recovery())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(deps.Config.CORSAllowOrigin))

	limiter := middleware.NewRateLimiter(nil)
	// 10 submissions per minute per client, small burst for retries.
	submitRule := middleware.RateLimitRule{Rate: 10.0 / 60.0, Burst: 3}

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, 200, gin.H{"status": "ok", "env": deps.Config.Env})
	})
	api.GET("/metrics", metrics.Handler())

	if deps.CandidateHandler != nil {
		submissions := api.Group("")
		submissions.Use(middleware.RateLimit(limiter, submitRule))
		deps.CandidateHandler.RegisterRoutes(submissions)
	}

	return r
}

// Addr renders the listen address for the configured port.
func Addr(cfg config.Config) string {
	return ":" + cfg.Port
}
