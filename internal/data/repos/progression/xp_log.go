package progression

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/strengthscope-backend/internal/domain"
	"github.com/yungbote/strengthscope-backend/internal/pkg/logger"
)

type XPLogRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.XPLog) (*types.XPLog, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.XPLog, error)
}

type xpLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewXPLogRepo(db *gorm.DB, baseLog *logger.Logger) XPLogRepo {
	return &xpLogRepo{db: db, log: baseLog.With("repo", "XPLogRepo")}
}

func (r *xpLogRepo) Create(ctx context.Context, tx *gorm.DB, row *types.XPLog) (*types.XPLog, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if row == nil {
		return nil, nil
	}
	if err := t.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *xpLogRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.XPLog, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.XPLog
	if userID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
