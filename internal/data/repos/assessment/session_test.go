package assessment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/strengthscope-backend/internal/data/repos/testutil"
	types "github.com/yungbote/strengthscope-backend/internal/domain"
)

func TestSessionRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewSessionRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "sessions@example.com")

	s1 := testutil.SeedSession(t, ctx, tx, u.ID, types.SessionInProgress, 1)

	if got, err := repo.GetByID(ctx, tx, s1.ID); err != nil || got == nil || got.ID != s1.ID {
		t.Fatalf("GetByID: got=%v err=%v", got, err)
	}
	if got, err := repo.GetInProgressByUser(ctx, tx, u.ID); err != nil || got == nil || got.ID != s1.ID {
		t.Fatalf("GetInProgressByUser: got=%v err=%v", got, err)
	}

	// Starting fresh abandons whatever was in flight.
	if n, err := repo.AbandonInProgressForUser(ctx, tx, u.ID); err != nil || n != 1 {
		t.Fatalf("AbandonInProgressForUser: n=%d err=%v", n, err)
	}
	if got, err := repo.GetInProgressByUser(ctx, tx, u.ID); err != nil || got != nil {
		t.Fatalf("after abandon GetInProgressByUser: got=%v err=%v", got, err)
	}

	s2 := testutil.SeedSession(t, ctx, tx, u.ID, types.SessionInProgress, 1)

	// Phase advance is conditional on the phase the caller saw.
	if n, err := repo.AdvancePhaseIfCurrent(ctx, tx, s2.ID, 1, map[string]interface{}{"phase": 2}); err != nil || n != 1 {
		t.Fatalf("AdvancePhaseIfCurrent: n=%d err=%v", n, err)
	}
	if n, err := repo.AdvancePhaseIfCurrent(ctx, tx, s2.ID, 1, map[string]interface{}{"phase": 2}); err != nil || n != 0 {
		t.Fatalf("repeat AdvancePhaseIfCurrent should match nothing: n=%d err=%v", n, err)
	}
	if got, err := repo.GetByID(ctx, tx, s2.ID); err != nil || got == nil || got.Phase != 2 {
		t.Fatalf("after advance GetByID: got=%v err=%v", got, err)
	}

	if n, err := repo.MarkAbandonedIfInProgress(ctx, tx, s2.ID); err != nil || n != 1 {
		t.Fatalf("MarkAbandonedIfInProgress: n=%d err=%v", n, err)
	}
	if n, err := repo.MarkAbandonedIfInProgress(ctx, tx, s2.ID); err != nil || n != 0 {
		t.Fatalf("repeat MarkAbandonedIfInProgress should match nothing: n=%d err=%v", n, err)
	}

	s3 := testutil.SeedSession(t, ctx, tx, u.ID, types.SessionCompleted, 3)
	_ = s3
	if n, err := repo.CountCompletedByUser(ctx, tx, u.ID); err != nil || n != 1 {
		t.Fatalf("CountCompletedByUser: n=%d err=%v", n, err)
	}

	if rows, err := repo.ListByUser(ctx, tx, u.ID); err != nil || len(rows) != 3 {
		t.Fatalf("ListByUser: err=%v len=%d", err, len(rows))
	}
}

func TestSessionRepoListStale(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewSessionRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "stale@example.com")

	old := testutil.SeedSession(t, ctx, tx, u.ID, types.SessionInProgress, 1)
	if err := repo.UpdateFields(ctx, tx, old.ID, map[string]interface{}{
		"last_activity_at": time.Now().UTC().Add(-8 * 24 * time.Hour),
	}); err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	fresh := testutil.SeedSession(t, ctx, tx, u.ID, types.SessionInProgress, 1)
	if err := repo.UpdateFields(ctx, tx, fresh.ID, map[string]interface{}{
		"last_activity_at": time.Now().UTC().Add(-6 * 24 * time.Hour),
	}); err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}

	cutoff := time.Now().UTC().Add(-7 * 24 * time.Hour)
	rows, err := repo.ListStale(ctx, tx, cutoff)
	if err != nil {
		t.Fatalf("ListStale: %v", err)
	}
	found := map[uuid.UUID]bool{}
	for _, s := range rows {
		found[s.ID] = true
	}
	if !found[old.ID] {
		t.Fatalf("expected 8-day-idle session in stale list")
	}
	if found[fresh.ID] {
		t.Fatalf("6-day-idle session should not be stale")
	}
}
