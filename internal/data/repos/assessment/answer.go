package assessment

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/strengthscope-backend/internal/domain"
	"github.com/yungbote/strengthscope-backend/internal/pkg/logger"
)

type AnswerRepo interface {
	// Upsert writes the answer, replacing any earlier answer to the same
	// question in the same session.
	Upsert(ctx context.Context, tx *gorm.DB, row *types.Answer) (*types.Answer, error)

	GetBySessionQuestion(ctx context.Context, tx *gorm.DB, sessionID, questionID uuid.UUID) (*types.Answer, error)
	ListBySession(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) ([]*types.Answer, error)
	CountBySessionQuestions(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID, questionIDs []uuid.UUID) (int64, error)
}

type answerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAnswerRepo(db *gorm.DB, baseLog *logger.Logger) AnswerRepo {
	return &answerRepo{db: db, log: baseLog.With("repo", "AnswerRepo")}
}

func (r *answerRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.Answer) (*types.Answer, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if row == nil {
		return nil, nil
	}
	if err := t.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "session_id"}, {Name: "question_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"value", "confidence", "answered_at", "updated_at",
			}),
		}).
		Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *answerRepo) GetBySessionQuestion(ctx context.Context, tx *gorm.DB, sessionID, questionID uuid.UUID) (*types.Answer, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if sessionID == uuid.Nil || questionID == uuid.Nil {
		return nil, nil
	}
	var out []*types.Answer
	if err := t.WithContext(ctx).
		Where("session_id = ? AND question_id = ?", sessionID, questionID).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *answerRepo) ListBySession(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) ([]*types.Answer, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.Answer
	if sessionID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("answered_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *answerRepo) CountBySessionQuestions(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID, questionIDs []uuid.UUID) (int64, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if sessionID == uuid.Nil || len(questionIDs) == 0 {
		return 0, nil
	}
	var n int64
	if err := t.WithContext(ctx).
		Model(&types.Answer{}).
		Where("session_id = ? AND question_id IN ?", sessionID, questionIDs).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
