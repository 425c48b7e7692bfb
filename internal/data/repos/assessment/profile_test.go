package assessment

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/strengthscope-backend/internal/data/repos/testutil"
	types "github.com/yungbote/strengthscope-backend/internal/domain"
)

func TestStrengthProfileRepoReplace(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewStrengthProfileRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "profile@example.com")
	d := testutil.SeedDomain(t, ctx, tx, "thinking")
	s1 := testutil.SeedStrength(t, ctx, tx, d.ID, "analytical")
	s2 := testutil.SeedStrength(t, ctx, tx, d.ID, "learner")

	sessionA := uuid.New()
	rows := []*types.StrengthProfile{
		{ID: uuid.New(), UserID: u.ID, StrengthID: s1.ID, Rank: 1, Score: 90, ConfidenceScore: 80, SessionID: sessionA},
		{ID: uuid.New(), UserID: u.ID, StrengthID: s2.ID, Rank: 2, Score: 80, ConfidenceScore: 70, SessionID: sessionA},
	}
	if err := repo.ReplaceForUser(ctx, tx, u.ID, rows); err != nil {
		t.Fatalf("ReplaceForUser: %v", err)
	}

	// A later save wipes the old profile, it never merges.
	sessionB := uuid.New()
	if err := repo.ReplaceForUser(ctx, tx, u.ID, []*types.StrengthProfile{
		{ID: uuid.New(), UserID: u.ID, StrengthID: s2.ID, Rank: 1, Score: 95, ConfidenceScore: 85, SessionID: sessionB},
	}); err != nil {
		t.Fatalf("second ReplaceForUser: %v", err)
	}

	got, err := repo.ListByUser(ctx, tx, u.ID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected replaced profile of 1 row, got %d", len(got))
	}
	if got[0].StrengthID != s2.ID || got[0].Rank != 1 || got[0].SessionID != sessionB {
		t.Fatalf("unexpected profile row: %+v", got[0])
	}
}
