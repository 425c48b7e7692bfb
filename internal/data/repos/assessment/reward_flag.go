package assessment

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/strengthscope-backend/internal/domain"
	"github.com/yungbote/strengthscope-backend/internal/pkg/logger"
)

type RewardFlagRepo interface {
	// Claim inserts the flag row and reports whether this call won the credit.
	// A duplicate (session_id, key) insert returns claimed=false, not an
	// error, so a surrounding transaction stays usable.
	Claim(ctx context.Context, tx *gorm.DB, row *types.RewardFlag) (claimed bool, err error)

	GetBySessionKey(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID, key string) (*types.RewardFlag, error)
	ListBySession(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) ([]*types.RewardFlag, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.RewardFlag, error)
}

type rewardFlagRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRewardFlagRepo(db *gorm.DB, baseLog *logger.Logger) RewardFlagRepo {
	return &rewardFlagRepo{db: db, log: baseLog.With("repo", "RewardFlagRepo")}
}

func (r *rewardFlagRepo) Claim(ctx context.Context, tx *gorm.DB, row *types.RewardFlag) (bool, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if row == nil {
		return false, nil
	}
	res := t.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}, {Name: "key"}},
			DoNothing: true,
		}).
		Create(row)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *rewardFlagRepo) GetBySessionKey(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID, key string) (*types.RewardFlag, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if sessionID == uuid.Nil || key == "" {
		return nil, nil
	}
	var out []*types.RewardFlag
	if err := t.WithContext(ctx).
		Where("session_id = ? AND key = ?", sessionID, key).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *rewardFlagRepo) ListBySession(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) ([]*types.RewardFlag, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.RewardFlag
	if sessionID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *rewardFlagRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.RewardFlag, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.RewardFlag
	if userID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
