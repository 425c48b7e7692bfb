package assessment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/strengthscope-backend/internal/data/repos/testutil"
	types "github.com/yungbote/strengthscope-backend/internal/domain"
)

func TestAnswerRepoUpsert(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewAnswerRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "answers@example.com")
	d := testutil.SeedDomain(t, ctx, tx, "doing")
	q := testutil.SeedScaleQuestion(t, ctx, tx, 1, 1, d.ID, nil)
	s := testutil.SeedSession(t, ctx, tx, u.ID, types.SessionInProgress, 1)

	first := &types.Answer{
		ID:         uuid.New(),
		SessionID:  s.ID,
		UserID:     u.ID,
		QuestionID: q.ID,
		AnsweredAt: time.Now().UTC(),
	}
	if err := first.EncodeValue(types.NumberValue(2)); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := repo.Upsert(ctx, tx, first); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	// Re-answering the same question replaces the stored value.
	second := &types.Answer{
		ID:         uuid.New(),
		SessionID:  s.ID,
		UserID:     u.ID,
		QuestionID: q.ID,
		AnsweredAt: time.Now().UTC(),
	}
	if err := second.EncodeValue(types.NumberValue(5)); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := repo.Upsert(ctx, tx, second); err != nil {
		t.Fatalf("repeat Upsert: %v", err)
	}

	rows, err := repo.ListBySession(ctx, tx, s.ID)
	if err != nil {
		t.Fatalf("ListBySession: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 answer after upsert, got %d", len(rows))
	}
	v, err := rows[0].DecodeValue()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if v.Number == nil || *v.Number != 5 {
		t.Fatalf("expected replaced value 5, got %+v", v)
	}

	if got, err := repo.GetBySessionQuestion(ctx, tx, s.ID, q.ID); err != nil || got == nil {
		t.Fatalf("GetBySessionQuestion: got=%v err=%v", got, err)
	}
	if n, err := repo.CountBySessionQuestions(ctx, tx, s.ID, []uuid.UUID{q.ID, uuid.New()}); err != nil || n != 1 {
		t.Fatalf("CountBySessionQuestions: n=%d err=%v", n, err)
	}
}
