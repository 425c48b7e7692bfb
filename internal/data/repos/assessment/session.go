package assessment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/strengthscope-backend/internal/domain"
	"github.com/yungbote/strengthscope-backend/internal/pkg/logger"
)

type SessionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.Session) (*types.Session, error)

	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Session, error)
	GetInProgressByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Session, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Session, error)
	CountCompletedByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
	ListStale(ctx context.Context, tx *gorm.DB, cutoff time.Time) ([]*types.Session, error)

	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error

	// AbandonInProgressForUser flips every IN_PROGRESS session of the user to
	// ABANDONED and returns how many rows changed.
	AbandonInProgressForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)

	// AdvancePhaseIfCurrent is a conditional update keyed on the phase the
	// caller believes the session is in. Zero rows affected means another
	// request advanced it first (or the session is no longer in progress).
	AdvancePhaseIfCurrent(ctx context.Context, tx *gorm.DB, id uuid.UUID, fromPhase int, updates map[string]interface{}) (int64, error)

	// MarkAbandonedIfInProgress flips a single session to ABANDONED only while
	// it is still IN_PROGRESS. Zero rows affected means the status had already
	// moved on.
	MarkAbandonedIfInProgress(ctx context.Context, tx *gorm.DB, id uuid.UUID) (int64, error)
}

type sessionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSessionRepo(db *gorm.DB, baseLog *logger.Logger) SessionRepo {
	return &sessionRepo{db: db, log: baseLog.With("repo", "SessionRepo")}
}

func (r *sessionRepo) Create(ctx context.Context, tx *gorm.DB, row *types.Session) (*types.Session, error) {
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

func (r *sessionRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Session, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var out []*types.Session
	if err := t.WithContext(ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *sessionRepo) GetInProgressByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Session, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if userID == uuid.Nil {
		return nil, nil
	}
	var out []*types.Session
	if err := t.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, types.SessionInProgress).
		Order("started_at DESC").
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *sessionRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Session, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.Session
	if userID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("started_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *sessionRepo) CountCompletedByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if userID == uuid.Nil {
		return 0, nil
	}
	var n int64
	if err := t.WithContext(ctx).
		Model(&types.Session{}).
		Where("user_id = ? AND status = ?", userID, types.SessionCompleted).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *sessionRepo) ListStale(ctx context.Context, tx *gorm.DB, cutoff time.Time) ([]*types.Session, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.Session
	if err := t.WithContext(ctx).
		Where("status = ? AND last_activity_at < ?", types.SessionInProgress, cutoff).
		Order("last_activity_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *sessionRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil
	}
	if updates == nil {
		updates = map[string]interface{}{}
	}
	if _, ok := updates["updated_at"]; !ok {
		updates["updated_at"] = time.Now().UTC()
	}
	return t.WithContext(ctx).
		Model(&types.Session{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *sessionRepo) AbandonInProgressForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if userID == uuid.Nil {
		return 0, nil
	}
	res := t.WithContext(ctx).
		Model(&types.Session{}).
		Where("user_id = ? AND status = ?", userID, types.SessionInProgress).
		Updates(map[string]interface{}{
			"status":     types.SessionAbandoned,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *sessionRepo) AdvancePhaseIfCurrent(ctx context.Context, tx *gorm.DB, id uuid.UUID, fromPhase int, updates map[string]interface{}) (int64, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return 0, nil
	}
	if updates == nil {
		updates = map[string]interface{}{}
	}
	if _, ok := updates["updated_at"]; !ok {
		updates["updated_at"] = time.Now().UTC()
	}
	res := t.WithContext(ctx).
		Model(&types.Session{}).
		Where("id = ? AND phase = ? AND status = ?", id, fromPhase, types.SessionInProgress).
		Updates(updates)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *sessionRepo) MarkAbandonedIfInProgress(ctx context.Context, tx *gorm.DB, id uuid.UUID) (int64, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return 0, nil
	}
	res := t.WithContext(ctx).
		Model(&types.Session{}).
		Where("id = ? AND status = ?", id, types.SessionInProgress).
		Updates(map[string]interface{}{
			"status":     types.SessionAbandoned,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
