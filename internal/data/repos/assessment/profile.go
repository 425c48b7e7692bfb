package assessment

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/strengthscope-backend/internal/domain"
	"github.com/yungbote/strengthscope-backend/internal/pkg/logger"
)

type StrengthProfileRepo interface {
	// ReplaceForUser deletes the user's existing profile rows and writes the
	// new set in the same transaction.
	ReplaceForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, rows []*types.StrengthProfile) error

	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.StrengthProfile, error)
}

type strengthProfileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStrengthProfileRepo(db *gorm.DB, baseLog *logger.Logger) StrengthProfileRepo {
	return &strengthProfileRepo{db: db, log: baseLog.With("repo", "StrengthProfileRepo")}
}

func (r *strengthProfileRepo) ReplaceForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, rows []*types.StrengthProfile) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if userID == uuid.Nil {
		return nil
	}

	run := func(inner *gorm.DB) error {
		if err := inner.WithContext(ctx).
			Where("user_id = ?", userID).
			Delete(&types.StrengthProfile{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return inner.WithContext(ctx).Create(&rows).Error
	}

	if tx != nil {
		return run(t)
	}
	return t.Transaction(run)
}

func (r *strengthProfileRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.StrengthProfile, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.StrengthProfile
	if userID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("rank ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
