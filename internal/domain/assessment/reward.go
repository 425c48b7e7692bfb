package assessment

import (
	"time"

	"github.com/google/uuid"
)

type Milestone string

const (
	MilestonePhase1     Milestone = "phase1"
	MilestonePhase2     Milestone = "phase2"
	MilestoneCompletion Milestone = "completion"
)

// TrackingKey values: the completion milestone on a retake collapses to
// retakeBonus so first-time and repeat completions are credited independently.
const (
	TrackingPhase1      = "phase1"
	TrackingPhase2      = "phase2"
	TrackingCompletion  = "completion"
	TrackingRetakeBonus = "retakeBonus"
)

// RewardFlag records one credited milestone for one session. The unique
// (session_id, key) index is the set-flag-if-unset primitive: whoever inserts
// the row first owns the credit.
type RewardFlag struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reward_flag_session_key,priority:1;column:session_id" json:"session_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	Key       string    `gorm:"not null;uniqueIndex:idx_reward_flag_session_key,priority:2;column:key" json:"key"`
	XPAmount  int       `gorm:"not null;column:xp_amount" json:"xp_amount"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (RewardFlag) TableName() string { return "reward_flag" }
