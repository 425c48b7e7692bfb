package assessment

import (
	"time"

	"github.com/google/uuid"
)

// StrengthProfile is a user's saved top strength. Written only by the explicit
// save-to-profile operation, which replaces all prior rows for the user.
type StrengthProfile struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_strength_profile_user_rank,priority:1;column:user_id" json:"user_id"`
	StrengthID uuid.UUID `gorm:"type:uuid;not null;index;column:strength_id" json:"strength_id"`
	Rank       int       `gorm:"not null;uniqueIndex:idx_strength_profile_user_rank,priority:2;column:rank" json:"rank"`

	Score           int       `gorm:"not null;column:score" json:"score"`
	ConfidenceScore int       `gorm:"not null;column:confidence_score" json:"confidence_score"`
	SessionID       uuid.UUID `gorm:"type:uuid;not null;column:session_id" json:"session_id"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (StrengthProfile) TableName() string { return "strength_profile" }
