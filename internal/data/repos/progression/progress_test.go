package progression

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/strengthscope-backend/internal/data/repos/testutil"
	types "github.com/yungbote/strengthscope-backend/internal/domain"
)

func TestUserProgressRepoAddXP(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewUserProgressRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "xp@example.com")

	total, err := repo.AddXP(ctx, tx, u.ID, 50)
	if err != nil {
		t.Fatalf("AddXP: %v", err)
	}
	if total != 50 {
		t.Fatalf("expected total 50, got %d", total)
	}

	total, err = repo.AddXP(ctx, tx, u.ID, 75)
	if err != nil {
		t.Fatalf("second AddXP: %v", err)
	}
	if total != 125 {
		t.Fatalf("expected total 125, got %d", total)
	}

	if err := repo.SetLevel(ctx, tx, u.ID, 2); err != nil {
		t.Fatalf("SetLevel: %v", err)
	}
	got, err := repo.GetByUser(ctx, tx, u.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByUser: got=%v err=%v", got, err)
	}
	if got.TotalXP != 125 || got.Level != 2 {
		t.Fatalf("unexpected progress row: %+v", got)
	}
}

func TestUserBadgeRepoUnlock(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewUserBadgeRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "badges@example.com")

	badge := &types.UserBadge{
		ID:         uuid.New(),
		UserID:     u.ID,
		BadgeKey:   "first_steps",
		Name:       "First Steps",
		UnlockedAt: time.Now().UTC(),
	}
	if unlocked, err := repo.Unlock(ctx, tx, badge); err != nil || !unlocked {
		t.Fatalf("Unlock: unlocked=%v err=%v", unlocked, err)
	}

	dup := &types.UserBadge{
		ID:         uuid.New(),
		UserID:     u.ID,
		BadgeKey:   "first_steps",
		Name:       "First Steps",
		UnlockedAt: time.Now().UTC(),
	}
	if unlocked, err := repo.Unlock(ctx, tx, dup); err != nil || unlocked {
		t.Fatalf("repeat Unlock: unlocked=%v err=%v", unlocked, err)
	}

	if rows, err := repo.ListByUser(ctx, tx, u.ID); err != nil || len(rows) != 1 {
		t.Fatalf("ListByUser: err=%v len=%d", err, len(rows))
	}
}
