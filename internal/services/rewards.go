package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yungbote/strengthscope-backend/internal/content"
	"github.com/yungbote/strengthscope-backend/internal/data/repos"
	types "github.com/yungbote/strengthscope-backend/internal/domain"
	pkgerrors "github.com/yungbote/strengthscope-backend/internal/pkg/errors"
	"github.com/yungbote/strengthscope-backend/internal/pkg/logger"
)

type MilestoneAward struct {
	AlreadyAwarded bool               `json:"already_awarded"`
	TrackingKey    string             `json:"tracking_key"`
	XPAmount       int                `json:"xp_amount,omitempty"`
	XP             *XPAward           `json:"xp,omitempty"`
	Badges         []*types.UserBadge `json:"badges,omitempty"`
}

type RewardsService interface {
	// AwardMilestone credits the milestone exactly once per session. Repeat
	// and concurrent calls all converge on AlreadyAwarded=true.
	AwardMilestone(ctx context.Context, sessionID uuid.UUID, milestone types.Milestone) (*MilestoneAward, error)
	GetMilestoneStatus(ctx context.Context, sessionID uuid.UUID) (map[string]bool, error)
}

type rewardsService struct {
	db          *gorm.DB
	log         *logger.Logger
	sessionRepo repos.SessionRepo
	flagRepo    repos.RewardFlagRepo
	progression ProgressionService
	xp          content.XPTable
	// rdb is an optional fast-path duplicate guard; everything stays correct
	// when it is nil, the unique flag insert is the authority.
	rdb *redis.Client
}

func NewRewardsService(
	db *gorm.DB,
	log *logger.Logger,
	sessionRepo repos.SessionRepo,
	flagRepo repos.RewardFlagRepo,
	progression ProgressionService,
	xp content.XPTable,
	rdb *redis.Client,
) RewardsService {
	serviceLog := log.With("service", "RewardsService")
	return &rewardsService{
		db:          db,
		log:         serviceLog,
		sessionRepo: sessionRepo,
		flagRepo:    flagRepo,
		progression: progression,
		xp:          xp,
		rdb:         rdb,
	}
}

func (rw *rewardsService) AwardMilestone(ctx context.Context, sessionID uuid.UUID, milestone types.Milestone) (*MilestoneAward, error) {
	userID, err := requestUserID(ctx)
	if err != nil {
		return nil, err
	}
	session, err := rw.sessionRepo.GetByID(ctx, nil, sessionID)
	if err != nil {
		return nil, fmt.Errorf("error fetching session: %w", err)
	}
	if session == nil || session.UserID != userID {
		return nil, fmt.Errorf("Session not found: %w", pkgerrors.ErrNotFound)
	}

	milestone, err = normalizeMilestone(milestone)
	if err != nil {
		return nil, err
	}
	if err := rw.checkMilestoneReached(session, milestone); err != nil {
		return nil, err
	}

	isRetake, err := rw.isRetake(ctx, session)
	if err != nil {
		return nil, err
	}
	trackingKey := trackingKeyFor(milestone, isRetake)
	amount := rw.xpFor(milestone, isRetake)

	// Redis pre-check cheaply short-circuits the common duplicate; a miss or
	// an unreachable redis just falls through to the flag insert. The key is
	// written only after the transaction commits, so a failed credit never
	// leaves a guard behind that would block the retry.
	guard := fmt.Sprintf("reward:%s:%s", session.ID, trackingKey)
	if rw.rdb != nil {
		n, err := rw.rdb.Exists(ctx, guard).Result()
		if err != nil {
			rw.log.Warn("Redis reward guard unavailable", "error", err)
		} else if n > 0 {
			return &MilestoneAward{AlreadyAwarded: true, TrackingKey: trackingKey}, nil
		}
	}

	award := &MilestoneAward{TrackingKey: trackingKey}
	if err := rw.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		claimed, err := rw.flagRepo.Claim(ctx, tx, &types.RewardFlag{
			ID:        uuid.New(),
			SessionID: session.ID,
			UserID:    userID,
			Key:       trackingKey,
			XPAmount:  amount,
		})
		if err != nil {
			return fmt.Errorf("error claiming reward flag: %w", err)
		}
		if !claimed {
			award.AlreadyAwarded = true
			return nil
		}

		xp, err := rw.progression.AwardXP(ctx, tx, userID, amount, "milestone:"+trackingKey)
		if err != nil {
			return err
		}
		badges, err := rw.progression.UnlockBadgesForMilestone(ctx, tx, userID, trackingKey)
		if err != nil {
			return err
		}

		award.XPAmount = amount
		award.XP = xp
		award.Badges = badges
		return nil
	}); err != nil {
		return nil, err
	}

	// The flag row now exists either way; the guard is just a cache of it.
	if rw.rdb != nil {
		if err := rw.rdb.Set(ctx, guard, 1, 24*time.Hour).Err(); err != nil {
			rw.log.Warn("Redis reward guard not recorded", "error", err)
		}
	}

	if !award.AlreadyAwarded {
		rw.log.Info("Milestone credited",
			"session_id", session.ID,
			"tracking_key", trackingKey,
			"xp", amount,
		)
	}
	return award, nil
}

func (rw *rewardsService) GetMilestoneStatus(ctx context.Context, sessionID uuid.UUID) (map[string]bool, error) {
	userID, err := requestUserID(ctx)
	if err != nil {
		return nil, err
	}
	session, err := rw.sessionRepo.GetByID(ctx, nil, sessionID)
	if err != nil {
		return nil, fmt.Errorf("error fetching session: %w", err)
	}
	if session == nil || session.UserID != userID {
		return nil, fmt.Errorf("Session not found: %w", pkgerrors.ErrNotFound)
	}

	status := map[string]bool{
		types.TrackingPhase1:      false,
		types.TrackingPhase2:      false,
		types.TrackingCompletion:  false,
		types.TrackingRetakeBonus: false,
	}
	flags, err := rw.flagRepo.ListBySession(ctx, nil, session.ID)
	if err != nil {
		return nil, fmt.Errorf("error listing reward flags: %w", err)
	}
	for _, f := range flags {
		status[f.Key] = true
	}
	return status, nil
}

// isRetake reports whether the user finished another assessment before this
// session started. Finished means a completion timestamp exists, not status:
// retaking archives the previous COMPLETED session as ABANDONED but leaves
// its completed_at in place.
func (rw *rewardsService) isRetake(ctx context.Context, session *types.Session) (bool, error) {
	all, err := rw.sessionRepo.ListByUser(ctx, nil, session.UserID)
	if err != nil {
		return false, fmt.Errorf("error listing sessions: %w", err)
	}
	for _, s := range all {
		if s.ID == session.ID {
			continue
		}
		if s.CompletedAt != nil && s.StartedAt.Before(session.StartedAt) {
			return true, nil
		}
	}
	return false, nil
}

func (rw *rewardsService) checkMilestoneReached(session *types.Session, milestone types.Milestone) error {
	switch milestone {
	case types.MilestonePhase1:
		if session.Phase < 2 && session.Status != types.SessionCompleted {
			return fmt.Errorf("phase 1 not completed yet: %w", pkgerrors.ErrInvalidState)
		}
	case types.MilestonePhase2:
		if session.Phase < 3 && session.Status != types.SessionCompleted {
			return fmt.Errorf("phase 2 not completed yet: %w", pkgerrors.ErrInvalidState)
		}
	case types.MilestoneCompletion:
		if session.Status != types.SessionCompleted {
			return fmt.Errorf("assessment not completed yet: %w", pkgerrors.ErrInvalidState)
		}
	}
	return nil
}

func (rw *rewardsService) xpFor(milestone types.Milestone, isRetake bool) int {
	switch milestone {
	case types.MilestonePhase1:
		return rw.xp.Phase1
	case types.MilestonePhase2:
		return rw.xp.Phase2
	case types.MilestoneCompletion:
		if isRetake {
			return rw.xp.RetakeBonus
		}
		return rw.xp.Completion
	}
	return 0
}

// trackingKeyFor collapses a retake completion into its own key so first-time
// and repeat completions are credited independently.
func trackingKeyFor(milestone types.Milestone, isRetake bool) string {
	if milestone == types.MilestoneCompletion && isRetake {
		return types.TrackingRetakeBonus
	}
	return string(milestone)
}

func normalizeMilestone(m types.Milestone) (types.Milestone, error) {
	switch strings.ReplaceAll(strings.ToLower(string(m)), "_", "") {
	case "phase1":
		return types.MilestonePhase1, nil
	case "phase2":
		return types.MilestonePhase2, nil
	case "completion":
		return types.MilestoneCompletion, nil
	}
	return "", fmt.Errorf("unknown milestone %q: %w", m, pkgerrors.ErrInvalidArgument)
}
