package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/strengthscope-backend/internal/http/handlers"
	httpMW "github.com/yungbote/strengthscope-backend/internal/http/middleware"
	"github.com/yungbote/strengthscope-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	AuthHandler    *httpH.AuthHandler
	AuthMiddleware *httpMW.AuthMiddleware
	UserHandler    *httpH.UserHandler

	SessionHandler *httpH.SessionHandler
	ResultsHandler *httpH.ResultsHandler
	RewardsHandler *httpH.RewardsHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.Default()
	r.Use(otelgin.Middleware("strengthscope-backend"))
	r.Use(httpMW.AttachTraceContext())
	if cfg.Log != nil {
		r.Use(httpMW.RequestLogger(cfg.Log))
	}
	r.Use(httpMW.CORS())

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.Check)
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/register", cfg.AuthHandler.Register)
			api.POST("/login", cfg.AuthHandler.Login)
		}
	}

	protected := api.Group("/")
	{
		// Middleware
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Auth (protected)
		if cfg.AuthHandler != nil {
			protected.POST("/refresh", cfg.AuthHandler.Refresh)
			protected.POST("/logout", cfg.AuthHandler.Logout)
		}

		// User (Me)
		if cfg.UserHandler != nil {
			protected.GET("/me", cfg.UserHandler.GetMe)
		}

		// Assessment sessions
		if cfg.SessionHandler != nil {
			protected.POST("/assessment/sessions", cfg.SessionHandler.CreateSession)
			protected.GET("/assessment/sessions/stale", cfg.SessionHandler.CheckStaleSessions)
			protected.GET("/assessment/sessions/:id", cfg.SessionHandler.GetSession)
			protected.POST("/assessment/sessions/:id/retake", cfg.SessionHandler.RetakeSession)
			protected.POST("/assessment/sessions/:id/answers", cfg.SessionHandler.SubmitAnswer)
			protected.POST("/assessment/sessions/:id/answers/autosave", cfg.SessionHandler.AutoSaveAnswer)
			protected.GET("/assessment/sessions/:id/next-question", cfg.SessionHandler.GetNextQuestion)
			protected.POST("/assessment/sessions/:id/complete-phase", cfg.SessionHandler.CompletePhase)
			protected.POST("/assessment/sessions/:id/abandon", cfg.SessionHandler.AbandonSession)
		}

		// Results
		if cfg.ResultsHandler != nil {
			protected.POST("/assessment/sessions/:id/results", cfg.ResultsHandler.CalculateResults)
			protected.GET("/assessment/sessions/:id/results", cfg.ResultsHandler.GetResults)
			protected.POST("/assessment/sessions/:id/results/profile", cfg.ResultsHandler.SaveResultsToProfile)
		}

		// Rewards
		if cfg.RewardsHandler != nil {
			protected.POST("/assessment/sessions/:id/milestones/:milestone", cfg.RewardsHandler.AwardMilestone)
			protected.GET("/assessment/sessions/:id/milestones", cfg.RewardsHandler.GetMilestoneStatus)
			protected.GET("/progress", cfg.RewardsHandler.GetProgress)
		}
	}

	return r
}
