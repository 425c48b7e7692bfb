package assessment

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	types "github.com/yungbote/strengthscope-backend/internal/domain"
)

func mustJSON(tb testing.TB, v any) datatypes.JSON {
	tb.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		tb.Fatalf("marshal: %v", err)
	}
	return datatypes.JSON(raw)
}

func scaleQuestion(tb testing.TB, phase int, domainID uuid.UUID, strengthID *uuid.UUID, order int, weight float64) *types.Question {
	tb.Helper()
	return &types.Question{
		ID:         uuid.New(),
		Phase:      phase,
		Order:      order,
		Text:       "scale q",
		Type:       types.QuestionScale,
		DomainID:   domainID,
		StrengthID: strengthID,
		Weight:     weight,
		ScaleMin:   1,
		ScaleMax:   5,
	}
}

func choiceQuestion(tb testing.TB, phase int, domainID uuid.UUID, strengthID *uuid.UUID, order int, options []string) *types.Question {
	tb.Helper()
	return &types.Question{
		ID:         uuid.New(),
		Phase:      phase,
		Order:      order,
		Text:       "choice q",
		Type:       types.QuestionChoice,
		DomainID:   domainID,
		StrengthID: strengthID,
		Weight:     1,
		Options:    mustJSON(tb, options),
	}
}

func rankingQuestion(tb testing.TB, domainID, strengthID uuid.UUID, order int, options []string, targets map[string]string) *types.Question {
	tb.Helper()
	return &types.Question{
		ID:            uuid.New(),
		Phase:         3,
		Order:         order,
		Text:          "ranking q",
		Type:          types.QuestionRanking,
		DomainID:      domainID,
		StrengthID:    &strengthID,
		Weight:        1,
		Options:       mustJSON(tb, options),
		OptionTargets: mustJSON(tb, targets),
	}
}

func answerFor(tb testing.TB, q *types.Question, v types.AnswerValue) *types.Answer {
	tb.Helper()
	a := &types.Answer{
		ID:         uuid.New(),
		SessionID:  uuid.New(),
		UserID:     uuid.New(),
		QuestionID: q.ID,
		AnsweredAt: time.Now().UTC(),
	}
	if err := a.EncodeValue(v); err != nil {
		tb.Fatalf("encode answer value: %v", err)
	}
	return a
}

func ptrUUID(id uuid.UUID) *uuid.UUID { return &id }

func ptrInt(n int) *int { return &n }
