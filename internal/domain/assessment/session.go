package assessment

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type SessionStatus string

const (
	SessionInProgress SessionStatus = "IN_PROGRESS"
	SessionCompleted  SessionStatus = "COMPLETED"
	SessionAbandoned  SessionStatus = "ABANDONED"
)

// ScoreMap is the schema-versioned score blob stored on a session. Scores are
// 0-100 by entity id; Counts record how many answered questions fed each score.
type ScoreMap struct {
	V      int            `json:"v"`
	Scores map[string]int `json:"scores"`
	Counts map[string]int `json:"counts"`
}

const ScoreMapSchemaVersion = 1

// QuestionPlan records the adaptively selected question ids for phases 2 and 3.
// Persisted so that phase completion validates against the set this user was
// actually shown.
type QuestionPlan struct {
	V      int      `json:"v"`
	Phase2 []string `json:"phase2,omitempty"`
	Phase3 []string `json:"phase3,omitempty"`
}

const QuestionPlanSchemaVersion = 1

// Session is one run of the assessment for one user. At most one session per
// user is IN_PROGRESS at a time; phase only ever increases.
type Session struct {
	ID     uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID     `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	Status SessionStatus `gorm:"not null;index;column:status" json:"status"`
	Phase  int           `gorm:"not null;column:phase" json:"phase"`

	CurrentStep int `gorm:"not null;default:0;column:current_step" json:"current_step"`
	TotalSteps  int `gorm:"not null;default:0;column:total_steps" json:"total_steps"`

	DomainScores   datatypes.JSON `gorm:"column:domain_scores;type:jsonb" json:"domain_scores,omitempty"`
	StrengthScores datatypes.JSON `gorm:"column:strength_scores;type:jsonb" json:"strength_scores,omitempty"`
	Plan           datatypes.JSON `gorm:"column:plan;type:jsonb" json:"plan,omitempty"`

	StartedAt      time.Time  `gorm:"not null;column:started_at" json:"started_at"`
	LastActivityAt time.Time  `gorm:"not null;index;column:last_activity_at" json:"last_activity_at"`
	CompletedAt    *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now();index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Session) TableName() string { return "assessment_session" }

func (s *Session) DecodeDomainScores() (ScoreMap, error)   { return decodeScoreMap(s.DomainScores) }
func (s *Session) DecodeStrengthScores() (ScoreMap, error) { return decodeScoreMap(s.StrengthScores) }

func (s *Session) DecodePlan() (QuestionPlan, error) {
	var p QuestionPlan
	if len(s.Plan) == 0 {
		return QuestionPlan{V: QuestionPlanSchemaVersion}, nil
	}
	if err := json.Unmarshal(s.Plan, &p); err != nil {
		return QuestionPlan{}, err
	}
	return p, nil
}

func decodeScoreMap(raw datatypes.JSON) (ScoreMap, error) {
	var m ScoreMap
	if len(raw) == 0 {
		return ScoreMap{V: ScoreMapSchemaVersion, Scores: map[string]int{}, Counts: map[string]int{}}, nil
	}
	if err := json.Unmarshal(raw, &m); err != nil {
		return ScoreMap{}, err
	}
	if m.Scores == nil {
		m.Scores = map[string]int{}
	}
	if m.Counts == nil {
		m.Counts = map[string]int{}
	}
	return m, nil
}

func EncodeJSON(v any) (datatypes.JSON, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
