package app

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yungbote/strengthscope-backend/internal/content"
	"github.com/yungbote/strengthscope-backend/internal/pkg/logger"
	"github.com/yungbote/strengthscope-backend/internal/services"
)

type Services struct {
	Auth        services.AuthService
	User        services.UserService
	Session     services.SessionService
	Results     services.ResultsService
	Progression services.ProgressionService
	Rewards     services.RewardsService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos) (Services, error) {
	log.Info("Wiring services...")

	bundle, err := content.Load(cfg.ContentPath)
	if err != nil {
		return Services{}, fmt.Errorf("load content bundle: %w", err)
	}
	ref, err := bundle.Materialize()
	if err != nil {
		return Services{}, fmt.Errorf("materialize content bundle: %w", err)
	}

	seedCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := content.Seed(seedCtx, db, log, ref); err != nil {
		return Services{}, fmt.Errorf("seed content: %w", err)
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(seedCtx).Err(); err != nil {
			log.Warn("Redis unreachable, milestone fast-path disabled", "addr", cfg.RedisAddr, "error", err)
			rdb = nil
		}
	}

	engineCfg := bundle.EngineCfg()

	authService := services.NewAuthService(
		db, log,
		reposet.User, reposet.UserToken,
		cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL,
	)
	userService := services.NewUserService(db, log, reposet.User)
	sessionService := services.NewSessionService(
		db, log,
		reposet.Session, reposet.Answer, reposet.Question,
		engineCfg,
	)
	resultsService := services.NewResultsService(
		db, log,
		reposet.Session, reposet.Answer, reposet.Question,
		reposet.Result, reposet.StrengthProfile,
		engineCfg,
	)
	progressionService := services.NewProgressionService(
		db, log,
		reposet.UserProgress, reposet.XPLog, reposet.UserBadge,
		bundle.Levels, bundle.Badges,
	)
	rewardsService := services.NewRewardsService(
		db, log,
		reposet.Session, reposet.RewardFlag,
		progressionService, bundle.XP, rdb,
	)

	return Services{
		Auth:        authService,
		User:        userService,
		Session:     sessionService,
		Results:     resultsService,
		Progression: progressionService,
		Rewards:     rewardsService,
	}, nil
}
