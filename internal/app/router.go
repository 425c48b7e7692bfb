package app

import (
	"github.com/gin-gonic/gin"

	httpserver "github.com/yungbote/strengthscope-backend/internal/http"
	"github.com/yungbote/strengthscope-backend/internal/pkg/logger"
)

func wireRouter(log *logger.Logger, handlerset Handlers, middleware Middleware) *gin.Engine {
	return httpserver.NewRouter(httpserver.RouterConfig{
		Log:            log,
		AuthHandler:    handlerset.Auth,
		AuthMiddleware: middleware.Auth,
		UserHandler:    handlerset.User,
		SessionHandler: handlerset.Session,
		ResultsHandler: handlerset.Results,
		RewardsHandler: handlerset.Rewards,
		HealthHandler:  handlerset.Health,
	})
}
