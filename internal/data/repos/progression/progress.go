package progression

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/strengthscope-backend/internal/domain"
	"github.com/yungbote/strengthscope-backend/internal/pkg/logger"
)

type UserProgressRepo interface {
	GetByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserProgress, error)

	// AddXP atomically increments the user's total, creating the row on first
	// credit. Returns the post-increment total.
	AddXP(ctx context.Context, tx *gorm.DB, userID uuid.UUID, amount int) (int, error)

	SetLevel(ctx context.Context, tx *gorm.DB, userID uuid.UUID, level int) error
}

type userProgressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserProgressRepo(db *gorm.DB, baseLog *logger.Logger) UserProgressRepo {
	return &userProgressRepo{db: db, log: baseLog.With("repo", "UserProgressRepo")}
}

func (r *userProgressRepo) GetByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserProgress, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if userID == uuid.Nil {
		return nil, nil
	}
	var out []*types.UserProgress
	if err := t.WithContext(ctx).
		Where("user_id = ?", userID).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *userProgressRepo) AddXP(ctx context.Context, tx *gorm.DB, userID uuid.UUID, amount int) (int, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if userID == uuid.Nil {
		return 0, nil
	}

	row := &types.UserProgress{
		ID:      uuid.New(),
		UserID:  userID,
		TotalXP: amount,
		Level:   1,
	}
	if err := t.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"total_xp":   gorm.Expr("user_progress.total_xp + ?", amount),
				"updated_at": gorm.Expr("now()"),
			}),
		}).
		Create(row).Error; err != nil {
		return 0, err
	}

	current, err := r.GetByUser(ctx, tx, userID)
	if err != nil {
		return 0, err
	}
	if current == nil {
		return amount, nil
	}
	return current.TotalXP, nil
}

func (r *userProgressRepo) SetLevel(ctx context.Context, tx *gorm.DB, userID uuid.UUID, level int) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if userID == uuid.Nil {
		return nil
	}
	return t.WithContext(ctx).
		Model(&types.UserProgress{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"level":      level,
			"updated_at": gorm.Expr("now()"),
		}).Error
}
