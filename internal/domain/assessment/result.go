package assessment

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// RankedStrength is one entry of the final top-5.
type RankedStrength struct {
	Rank            int       `json:"rank"`
	StrengthID      uuid.UUID `json:"strength_id"`
	Score           int       `json:"score"`
	ConfidenceScore int       `json:"confidence_score"`
}

// CompiledResults is written once when a session completes and never
// recomputed afterwards.
type CompiledResults struct {
	V                 int              `json:"v"`
	RankedStrengths   []RankedStrength `json:"ranked_strengths"`
	OverallConfidence int              `json:"overall_confidence"`
	CompletedAt       time.Time        `json:"completed_at"`
}

const CompiledResultsSchemaVersion = 1

// Result stores a session's compiled results as its own record, separate from
// reward flags so crediting never rewrites this blob.
type Result struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex;column:session_id" json:"session_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`

	Results datatypes.JSON `gorm:"not null;column:results;type:jsonb" json:"results"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Result) TableName() string { return "assessment_result" }

func (r *Result) Decode() (CompiledResults, error) {
	var c CompiledResults
	if err := json.Unmarshal(r.Results, &c); err != nil {
		return CompiledResults{}, err
	}
	return c, nil
}
