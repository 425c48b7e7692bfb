package app

import (
	httpH "github.com/yungbote/strengthscope-backend/internal/http/handlers"
	"github.com/yungbote/strengthscope-backend/internal/pkg/logger"
)

type Handlers struct {
	Health  *httpH.HealthHandler
	Auth    *httpH.AuthHandler
	User    *httpH.UserHandler
	Session *httpH.SessionHandler
	Results *httpH.ResultsHandler
	Rewards *httpH.RewardsHandler
}

func wireHandlers(log *logger.Logger, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:  httpH.NewHealthHandler(),
		Auth:    httpH.NewAuthHandler(serviceset.Auth),
		User:    httpH.NewUserHandler(serviceset.User),
		Session: httpH.NewSessionHandler(serviceset.Session),
		Results: httpH.NewResultsHandler(serviceset.Results),
		Rewards: httpH.NewRewardsHandler(serviceset.Rewards, serviceset.Progression),
	}
}
