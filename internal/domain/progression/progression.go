package progression

import (
	"time"

	"github.com/google/uuid"
)

// UserProgress accumulates a user's lifetime XP and derived level.
type UserProgress struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex;column:user_id" json:"user_id"`
	TotalXP int       `gorm:"not null;default:0;column:total_xp" json:"total_xp"`
	Level   int       `gorm:"not null;default:1;column:level" json:"level"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (UserProgress) TableName() string { return "user_progress" }

// XPLog is the append-only credit trail behind UserProgress.
type XPLog struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	Amount int       `gorm:"not null;column:amount" json:"amount"`
	Source string    `gorm:"not null;column:source" json:"source"`

	CreatedAt time.Time `gorm:"not null;default:now();index" json:"created_at"`
}

func (XPLog) TableName() string { return "xp_log" }

// UserBadge marks an unlocked badge; the unique (user_id, badge_key) index
// makes unlocks idempotent.
type UserBadge struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_badge_user_key,priority:1;column:user_id" json:"user_id"`
	BadgeKey string    `gorm:"not null;uniqueIndex:idx_user_badge_user_key,priority:2;column:badge_key" json:"badge_key"`
	Name     string    `gorm:"not null;column:name" json:"name"`

	UnlockedAt time.Time `gorm:"not null;column:unlocked_at" json:"unlocked_at"`
	CreatedAt  time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (UserBadge) TableName() string { return "user_badge" }
