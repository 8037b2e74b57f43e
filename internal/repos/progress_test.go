package repos

import (
	"context"
	"testing"

	"github.com/verdantmarket/verdant-backend/internal/repos/testutil"
)

func TestProgressRepoUpsertAndCreateIfAbsent(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewProgressRepo(db, testutil.Logger(t))

	p := testutil.SeedProfile(t, ctx, tx, "seller")

	if err := repo.UpsertStatus(ctx, tx, p.UUID, 1, "in_progress"); err != nil {
		t.Fatalf("UpsertStatus insert: %v", err)
	}
	row, err := repo.GetByUserAndStage(ctx, tx, p.UUID, 1)
	if err != nil || row == nil {
		t.Fatalf("GetByUserAndStage: err=%v row=%v", err, row)
	}
	if row.Status != "in_progress" {
		t.Fatalf("status: want=in_progress got=%s", row.Status)
	}

	if err := repo.UpsertStatus(ctx, tx, p.UUID, 1, "completed"); err != nil {
		t.Fatalf("UpsertStatus overwrite: %v", err)
	}
	row, err = repo.GetByUserAndStage(ctx, tx, p.UUID, 1)
	if err != nil || row == nil || row.Status != "completed" {
		t.Fatalf("after overwrite: err=%v row=%+v", err, row)
	}

	// CreateIfAbsent must not touch an existing row.
	if err := repo.CreateIfAbsent(ctx, tx, p.UUID, 1, "not_started"); err != nil {
		t.Fatalf("CreateIfAbsent existing: %v", err)
	}
	row, err = repo.GetByUserAndStage(ctx, tx, p.UUID, 1)
	if err != nil || row == nil || row.Status != "completed" {
		t.Fatalf("CreateIfAbsent overwrote: err=%v row=%+v", err, row)
	}

	// And must insert a missing one.
	if err := repo.CreateIfAbsent(ctx, tx, p.UUID, 2, "not_started"); err != nil {
		t.Fatalf("CreateIfAbsent new: %v", err)
	}
	rows, err := repo.GetByUser(ctx, tx, p.UUID)
	if err != nil || len(rows) != 2 {
		t.Fatalf("GetByUser: err=%v len=%d", err, len(rows))
	}
}

func TestProgressRepoGetMissing(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewProgressRepo(db, testutil.Logger(t))
	p := testutil.SeedProfile(t, ctx, tx, "buyer")

	row, err := repo.GetByUserAndStage(ctx, tx, p.UUID, 9)
	if err != nil {
		t.Fatalf("GetByUserAndStage: %v", err)
	}
	if row != nil {
		t.Fatalf("missing row: want=nil got=%+v", row)
	}
}
