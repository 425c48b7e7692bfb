package assessment

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/strengthscope-backend/internal/domain"
	"github.com/yungbote/strengthscope-backend/internal/pkg/logger"
)

type QuestionRepo interface {
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Question, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Question, error)

	ListByPhase(ctx context.Context, tx *gorm.DB, phase int) ([]*types.Question, error)
	ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Question, error)

	ListDomains(ctx context.Context, tx *gorm.DB) ([]*types.StrengthDomain, error)
	ListStrengths(ctx context.Context, tx *gorm.DB) ([]*types.Strength, error)
	GetStrengthsByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Strength, error)
}

type questionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuestionRepo(db *gorm.DB, baseLog *logger.Logger) QuestionRepo {
	return &questionRepo{db: db, log: baseLog.With("repo", "QuestionRepo")}
}

func (r *questionRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Question, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.Question
	if len(ids) == 0 {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *questionRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Question, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	rows, err := r.GetByIDs(ctx, tx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *questionRepo) ListByPhase(ctx context.Context, tx *gorm.DB, phase int) ([]*types.Question, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.Question
	if err := t.WithContext(ctx).
		Where("phase = ?", phase).
		Order("question_order ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *questionRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Question, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.Question
	if err := t.WithContext(ctx).
		Order("phase ASC, question_order ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *questionRepo) ListDomains(ctx context.Context, tx *gorm.DB) ([]*types.StrengthDomain, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.StrengthDomain
	if err := t.WithContext(ctx).
		Order("key ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *questionRepo) ListStrengths(ctx context.Context, tx *gorm.DB) ([]*types.Strength, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.Strength
	if err := t.WithContext(ctx).
		Order("key ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *questionRepo) GetStrengthsByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Strength, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.Strength
	if len(ids) == 0 {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
