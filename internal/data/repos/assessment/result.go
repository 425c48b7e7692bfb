package assessment

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/strengthscope-backend/internal/domain"
	"github.com/yungbote/strengthscope-backend/internal/pkg/logger"
)

type ResultRepo interface {
	// CreateIfAbsent inserts the result unless the session already has one, in
	// which case the existing row wins and is returned.
	CreateIfAbsent(ctx context.Context, tx *gorm.DB, row *types.Result) (*types.Result, error)

	GetBySession(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) (*types.Result, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Result, error)
}

type resultRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewResultRepo(db *gorm.DB, baseLog *logger.Logger) ResultRepo {
	return &resultRepo{db: db, log: baseLog.With("repo", "ResultRepo")}
}

func (r *resultRepo) CreateIfAbsent(ctx context.Context, tx *gorm.DB, row *types.Result) (*types.Result, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if row == nil {
		return nil, nil
	}
	if err := t.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}},
			DoNothing: true,
		}).
		Create(row).Error; err != nil {
		return nil, err
	}
	// The insert may have been a no-op; read back whichever row holds.
	return r.GetBySession(ctx, tx, row.SessionID)
}

func (r *resultRepo) GetBySession(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) (*types.Result, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if sessionID == uuid.Nil {
		return nil, nil
	}
	var out []*types.Result
	if err := t.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *resultRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Result, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.Result
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
