package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-match/internal/analyses"
	"resume-match/internal/feedback"
	"resume-match/internal/positions"
	"resume-match/internal/shared/auth"
	"resume-match/internal/shared/config"
	"resume-match/internal/shared/metrics"
	"resume-match/internal/shared/server/middleware"
	"resume-match/internal/shared/server/respond"
	"resume-match/internal/users"
	"resume-match/internal/versions"
)

// RouterDeps carries everything the router needs. All adapters are
// constructed once in bootstrap and handed in here.
type RouterDeps struct {
	Config          config.Config
	Signer          *auth.Signer
	UserHandler     *users.Handler
	PositionHandler *positions.Handler
	AnalysisHandler *analyses.Handler
	VersionHandler  *versions.Handler
	FeedbackHandler *feedback.Handler
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
		middleware.Auth(deps.Signer),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				"analyses": {Rate: 10.0 / 60.0, Burst: 10},
				"auth":     {Rate: 20.0 / 60.0, Burst: 20},
			},
			GroupFor: func(c *gin.Context) string {
				switch {
				case c.Request.Method == http.MethodPost && strings.HasPrefix(c.Request.URL.Path, "/api/v1/analyses"):
					return "analyses"
				case c.Request.Method == http.MethodPost && strings.HasPrefix(c.Request.URL.Path, "/api/v1/auth/"):
					return "auth"
				default:
					return ""
				}
			},
		}),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	if deps.UserHandler != nil {
		deps.UserHandler.RegisterRoutes(api)
	}
	if deps.PositionHandler != nil {
		deps.PositionHandler.RegisterRoutes(api)
	}
	if deps.AnalysisHandler != nil {
		deps.AnalysisHandler.RegisterRoutes(api)
	}
	if deps.VersionHandler != nil {
		deps.VersionHandler.RegisterRoutes(api)
	}
	if deps.FeedbackHandler != nil {
		deps.FeedbackHandler.RegisterRoutes(api)
	}

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
