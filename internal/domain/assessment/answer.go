package assessment

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AnswerValueKind string

const (
	AnswerNumber  AnswerValueKind = "number"
	AnswerText    AnswerValueKind = "text"
	AnswerRanking AnswerValueKind = "ranking"
)

// AnswerValue is the tagged union persisted for an answer. Exactly one of
// Number/Text/List is set, selected by Kind.
type AnswerValue struct {
	V      int             `json:"v"`
	Kind   AnswerValueKind `json:"kind"`
	Number *float64        `json:"number,omitempty"`
	Text   *string         `json:"text,omitempty"`
	List   []string        `json:"list,omitempty"`
}

const AnswerValueSchemaVersion = 1

func NumberValue(n float64) AnswerValue {
	return AnswerValue{V: AnswerValueSchemaVersion, Kind: AnswerNumber, Number: &n}
}

func TextValue(s string) AnswerValue {
	return AnswerValue{V: AnswerValueSchemaVersion, Kind: AnswerText, Text: &s}
}

func RankingValue(items []string) AnswerValue {
	return AnswerValue{V: AnswerValueSchemaVersion, Kind: AnswerRanking, List: items}
}

func (v AnswerValue) Validate() error {
	switch v.Kind {
	case AnswerNumber:
		if v.Number == nil {
			return fmt.Errorf("number value missing")
		}
	case AnswerText:
		if v.Text == nil {
			return fmt.Errorf("text value missing")
		}
	case AnswerRanking:
		if len(v.List) == 0 {
			return fmt.Errorf("ranking value missing")
		}
	default:
		return fmt.Errorf("unknown answer value kind %q", v.Kind)
	}
	return nil
}

// Answer holds one user's answer to one question within a session. At most
// one row exists per (session_id, question_id); later submissions upsert.
type Answer struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_answer_session_question,priority:1;column:session_id" json:"session_id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	QuestionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_answer_session_question,priority:2;column:question_id" json:"question_id"`

	Value datatypes.JSON `gorm:"not null;column:value;type:jsonb" json:"value"`

	// Confidence is the self-reported certainty in [1,5], optional.
	Confidence *int      `gorm:"column:confidence" json:"confidence,omitempty"`
	AnsweredAt time.Time `gorm:"not null;column:answered_at" json:"answered_at"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Answer) TableName() string { return "assessment_answer" }

func (a *Answer) DecodeValue() (AnswerValue, error) {
	var v AnswerValue
	if err := json.Unmarshal(a.Value, &v); err != nil {
		return AnswerValue{}, err
	}
	return v, nil
}

func (a *Answer) EncodeValue(v AnswerValue) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	a.Value = datatypes.JSON(raw)
	return nil
}
