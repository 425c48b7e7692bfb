package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/strengthscope-backend/internal/data/repos"
	"github.com/yungbote/strengthscope-backend/internal/pkg/logger"
)

type Repos struct {
	User      repos.UserRepo
	UserToken repos.UserTokenRepo

	Question        repos.QuestionRepo
	Session         repos.SessionRepo
	Answer          repos.AnswerRepo
	Result          repos.ResultRepo
	RewardFlag      repos.RewardFlagRepo
	StrengthProfile repos.StrengthProfileRepo

	UserProgress repos.UserProgressRepo
	XPLog        repos.XPLogRepo
	UserBadge    repos.UserBadgeRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:      repos.NewUserRepo(db, log),
		UserToken: repos.NewUserTokenRepo(db, log),

		Question:        repos.NewQuestionRepo(db, log),
		Session:         repos.NewSessionRepo(db, log),
		Answer:          repos.NewAnswerRepo(db, log),
		Result:          repos.NewResultRepo(db, log),
		RewardFlag:      repos.NewRewardFlagRepo(db, log),
		StrengthProfile: repos.NewStrengthProfileRepo(db, log),

		UserProgress: repos.NewUserProgressRepo(db, log),
		XPLog:        repos.NewXPLogRepo(db, log),
		UserBadge:    repos.NewUserBadgeRepo(db, log),
	}
}
