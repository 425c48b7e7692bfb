package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/strengthscope-backend/internal/content"
	"github.com/yungbote/strengthscope-backend/internal/data/repos"
	types "github.com/yungbote/strengthscope-backend/internal/domain"
	"github.com/yungbote/strengthscope-backend/internal/pkg/logger"
)

type XPAward struct {
	TotalXP   int  `json:"total_xp"`
	Level     int  `json:"level"`
	LeveledUp bool `json:"leveled_up"`
}

type ProgressionService interface {
	// AwardXP credits the amount, appends the ledger entry and recomputes the
	// level from the configured thresholds.
	AwardXP(ctx context.Context, tx *gorm.DB, userID uuid.UUID, amount int, source string) (*XPAward, error)

	// UnlockBadgesForMilestone unlocks every badge rule bound to the tracking
	// key; repeat unlocks are silently skipped.
	UnlockBadgesForMilestone(ctx context.Context, tx *gorm.DB, userID uuid.UUID, trackingKey string) ([]*types.UserBadge, error)

	GetProgress(ctx context.Context, userID uuid.UUID) (*types.UserProgress, []*types.UserBadge, error)
}

type progressionService struct {
	db           *gorm.DB
	log          *logger.Logger
	progressRepo repos.UserProgressRepo
	xpLogRepo    repos.XPLogRepo
	badgeRepo    repos.UserBadgeRepo
	levels       []content.LevelRule
	badges       []content.BadgeRule
}

func NewProgressionService(
	db *gorm.DB,
	log *logger.Logger,
	progressRepo repos.UserProgressRepo,
	xpLogRepo repos.XPLogRepo,
	badgeRepo repos.UserBadgeRepo,
	levels []content.LevelRule,
	badges []content.BadgeRule,
) ProgressionService {
	serviceLog := log.With("service", "ProgressionService")

	sorted := make([]content.LevelRule, len(levels))
	copy(sorted, levels)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].MinXP < sorted[j].MinXP })

	return &progressionService{
		db:           db,
		log:          serviceLog,
		progressRepo: progressRepo,
		xpLogRepo:    xpLogRepo,
		badgeRepo:    badgeRepo,
		levels:       sorted,
		badges:       badges,
	}
}

func (ps *progressionService) AwardXP(ctx context.Context, tx *gorm.DB, userID uuid.UUID, amount int, source string) (*XPAward, error) {
	if userID == uuid.Nil || amount <= 0 {
		return nil, fmt.Errorf("nothing to award")
	}

	run := func(inner *gorm.DB) (*XPAward, error) {
		before, err := ps.progressRepo.GetByUser(ctx, inner, userID)
		if err != nil {
			return nil, fmt.Errorf("error fetching progress: %w", err)
		}
		levelBefore := 1
		if before != nil {
			levelBefore = before.Level
		}

		total, err := ps.progressRepo.AddXP(ctx, inner, userID, amount)
		if err != nil {
			return nil, fmt.Errorf("error adding xp: %w", err)
		}
		if _, err := ps.xpLogRepo.Create(ctx, inner, &types.XPLog{
			ID:     uuid.New(),
			UserID: userID,
			Amount: amount,
			Source: source,
		}); err != nil {
			return nil, fmt.Errorf("error writing xp log: %w", err)
		}

		level := ps.levelFor(total)
		if level != levelBefore {
			if err := ps.progressRepo.SetLevel(ctx, inner, userID, level); err != nil {
				return nil, fmt.Errorf("error setting level: %w", err)
			}
		}
		return &XPAward{
			TotalXP:   total,
			Level:     level,
			LeveledUp: level > levelBefore,
		}, nil
	}

	if tx != nil {
		return run(tx)
	}
	var award *XPAward
	err := ps.db.WithContext(ctx).Transaction(func(inner *gorm.DB) error {
		a, err := run(inner)
		if err != nil {
			return err
		}
		award = a
		return nil
	})
	return award, err
}

func (ps *progressionService) UnlockBadgesForMilestone(ctx context.Context, tx *gorm.DB, userID uuid.UUID, trackingKey string) ([]*types.UserBadge, error) {
	var unlocked []*types.UserBadge
	for _, rule := range ps.badges {
		if rule.Milestone != trackingKey {
			continue
		}
		badge := &types.UserBadge{
			ID:         uuid.New(),
			UserID:     userID,
			BadgeKey:   rule.Key,
			Name:       rule.Name,
			UnlockedAt: time.Now().UTC(),
		}
		won, err := ps.badgeRepo.Unlock(ctx, tx, badge)
		if err != nil {
			return nil, fmt.Errorf("error unlocking badge %s: %w", rule.Key, err)
		}
		if won {
			ps.log.Info("Badge unlocked", "user_id", userID, "badge", rule.Key)
			unlocked = append(unlocked, badge)
		}
	}
	return unlocked, nil
}

func (ps *progressionService) GetProgress(ctx context.Context, userID uuid.UUID) (*types.UserProgress, []*types.UserBadge, error) {
	progress, err := ps.progressRepo.GetByUser(ctx, nil, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("error fetching progress: %w", err)
	}
	badges, err := ps.badgeRepo.ListByUser(ctx, nil, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("error fetching badges: %w", err)
	}
	return progress, badges, nil
}

func (ps *progressionService) levelFor(totalXP int) int {
	level := 1
	for _, rule := range ps.levels {
		if totalXP >= rule.MinXP {
			level = rule.Level
		}
	}
	return level
}
