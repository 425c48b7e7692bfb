package assessment

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type QuestionType string

const (
	QuestionScale   QuestionType = "SCALE"
	QuestionChoice  QuestionType = "CHOICE"
	QuestionRanking QuestionType = "RANKING"
)

// Question is immutable reference data. Phase-1 questions target a domain,
// phase-2/3 questions target a strength.
type Question struct {
	ID    uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	Phase int          `gorm:"not null;index;column:phase" json:"phase"`
	Order int          `gorm:"not null;column:question_order" json:"order"`
	Text  string       `gorm:"not null;column:text" json:"text"`
	Type  QuestionType `gorm:"not null;column:type" json:"type"`

	DomainID   uuid.UUID  `gorm:"type:uuid;not null;index;column:domain_id" json:"domain_id"`
	StrengthID *uuid.UUID `gorm:"type:uuid;index;column:strength_id" json:"strength_id,omitempty"`
	Weight     float64    `gorm:"not null;default:1;column:weight" json:"weight"`

	// Options is the authored option list for CHOICE/RANKING, first = strongest
	// affinity. OptionTargets maps option text to the strength id it speaks
	// for (RANKING only); the mapping is authored, never inferred from text.
	Options       datatypes.JSON `gorm:"column:options;type:jsonb" json:"options,omitempty"`
	OptionTargets datatypes.JSON `gorm:"column:option_targets;type:jsonb" json:"option_targets,omitempty"`

	ScaleMin int `gorm:"column:scale_min" json:"scale_min"`
	ScaleMax int `gorm:"column:scale_max" json:"scale_max"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Question) TableName() string { return "assessment_question" }

func (q *Question) OptionList() []string {
	if len(q.Options) == 0 {
		return nil
	}
	var opts []string
	if err := json.Unmarshal(q.Options, &opts); err != nil {
		return nil
	}
	return opts
}

func (q *Question) OptionTargetMap() map[string]string {
	if len(q.OptionTargets) == 0 {
		return nil
	}
	var targets map[string]string
	if err := json.Unmarshal(q.OptionTargets, &targets); err != nil {
		return nil
	}
	return targets
}
