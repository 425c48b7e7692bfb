package testutil

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/yungbote/strengthscope-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:        uuid.New(),
		Email:     email,
		Password:  "pw",
		FirstName: "A",
		LastName:  "B",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedDomain(tb testing.TB, ctx context.Context, tx *gorm.DB, key string) *types.StrengthDomain {
	tb.Helper()
	d := &types.StrengthDomain{
		ID:   uuid.New(),
		Key:  key,
		Name: key,
	}
	if err := tx.WithContext(ctx).Create(d).Error; err != nil {
		tb.Fatalf("seed domain: %v", err)
	}
	return d
}

func SeedStrength(tb testing.TB, ctx context.Context, tx *gorm.DB, domainID uuid.UUID, key string) *types.Strength {
	tb.Helper()
	s := &types.Strength{
		ID:       uuid.New(),
		Key:      key,
		Name:     key,
		DomainID: domainID,
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed strength: %v", err)
	}
	return s
}

func SeedScaleQuestion(tb testing.TB, ctx context.Context, tx *gorm.DB, phase, order int, domainID uuid.UUID, strengthID *uuid.UUID) *types.Question {
	tb.Helper()
	q := &types.Question{
		ID:         uuid.New(),
		Phase:      phase,
		Order:      order,
		Text:       "q",
		Type:       types.QuestionScale,
		DomainID:   domainID,
		StrengthID: strengthID,
		Weight:     1,
		ScaleMin:   1,
		ScaleMax:   5,
	}
	if err := tx.WithContext(ctx).Create(q).Error; err != nil {
		tb.Fatalf("seed question: %v", err)
	}
	return q
}

func SeedSession(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, status types.SessionStatus, phase int) *types.Session {
	tb.Helper()
	now := time.Now().UTC()
	s := &types.Session{
		ID:             uuid.New(),
		UserID:         userID,
		Status:         status,
		Phase:          phase,
		StartedAt:      now,
		LastActivityAt: now,
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed session: %v", err)
	}
	return s
}

func SeedAnswer(tb testing.TB, ctx context.Context, tx *gorm.DB, sessionID, userID, questionID uuid.UUID, number float64) *types.Answer {
	tb.Helper()
	raw, err := json.Marshal(types.NumberValue(number))
	if err != nil {
		tb.Fatalf("marshal answer value: %v", err)
	}
	a := &types.Answer{
		ID:         uuid.New(),
		SessionID:  sessionID,
		UserID:     userID,
		QuestionID: questionID,
		Value:      datatypes.JSON(raw),
		AnsweredAt: time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed answer: %v", err)
	}
	return a
}
