package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/strengthscope-backend/internal/data/repos/assessment"
	"github.com/yungbote/strengthscope-backend/internal/data/repos/auth"
	"github.com/yungbote/strengthscope-backend/internal/data/repos/progression"
	"github.com/yungbote/strengthscope-backend/internal/data/repos/user"
	"github.com/yungbote/strengthscope-backend/internal/pkg/logger"
)

type UserRepo = user.UserRepo
type UserTokenRepo = auth.UserTokenRepo

type QuestionRepo = assessment.QuestionRepo
type SessionRepo = assessment.SessionRepo
type AnswerRepo = assessment.AnswerRepo
type ResultRepo = assessment.ResultRepo
type RewardFlagRepo = assessment.RewardFlagRepo
type StrengthProfileRepo = assessment.StrengthProfileRepo

type UserProgressRepo = progression.UserProgressRepo
type XPLogRepo = progression.XPLogRepo
type UserBadgeRepo = progression.UserBadgeRepo

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo { return user.NewUserRepo(db, baseLog) }
func NewUserTokenRepo(db *gorm.DB, baseLog *logger.Logger) UserTokenRepo {
	return auth.NewUserTokenRepo(db, baseLog)
}

func NewQuestionRepo(db *gorm.DB, baseLog *logger.Logger) QuestionRepo {
	return assessment.NewQuestionRepo(db, baseLog)
}
func NewSessionRepo(db *gorm.DB, baseLog *logger.Logger) SessionRepo {
	return assessment.NewSessionRepo(db, baseLog)
}
func NewAnswerRepo(db *gorm.DB, baseLog *logger.Logger) AnswerRepo {
	return assessment.NewAnswerRepo(db, baseLog)
}
func NewResultRepo(db *gorm.DB, baseLog *logger.Logger) ResultRepo {
	return assessment.NewResultRepo(db, baseLog)
}
func NewRewardFlagRepo(db *gorm.DB, baseLog *logger.Logger) RewardFlagRepo {
	return assessment.NewRewardFlagRepo(db, baseLog)
}
func NewStrengthProfileRepo(db *gorm.DB, baseLog *logger.Logger) StrengthProfileRepo {
	return assessment.NewStrengthProfileRepo(db, baseLog)
}

func NewUserProgressRepo(db *gorm.DB, baseLog *logger.Logger) UserProgressRepo {
	return progression.NewUserProgressRepo(db, baseLog)
}
func NewXPLogRepo(db *gorm.DB, baseLog *logger.Logger) XPLogRepo {
	return progression.NewXPLogRepo(db, baseLog)
}
func NewUserBadgeRepo(db *gorm.DB, baseLog *logger.Logger) UserBadgeRepo {
	return progression.NewUserBadgeRepo(db, baseLog)
}
