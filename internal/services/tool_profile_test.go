package services

import (
	"context"
	"errors"
	"testing"

	"gorm.io/datatypes"

	"github.com/verdantmarket/verdant-backend/internal/repos"
	"github.com/verdantmarket/verdant-backend/internal/repos/testutil"
	"github.com/verdantmarket/verdant-backend/internal/types"
)

func TestToolProfileUnlock(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()

	svc := NewToolProfileService(tx, log, repos.NewToolProfileRepo(tx, log))

	created, err := svc.Create(ctx, "Solar CRM", types.ToolProfileTypeSeller,
		datatypes.JSON([]byte(`{"url":"https://crm.example"}`)), "open-sesame")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Password == "open-sesame" {
		t.Fatal("password must be stored hashed")
	}

	if _, err := svc.Unlock(ctx, created.ID, "wrong"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("want ErrInvalidPassword, got %v", err)
	}
	unlocked, err := svc.Unlock(ctx, created.ID, "open-sesame")
	if err != nil {
		t.Fatalf("Unlock: %v", err)
	}
	if unlocked.Name != "Solar CRM" {
		t.Fatalf("unlocked name: want=%q got=%q", "Solar CRM", unlocked.Name)
	}
}

func TestToolProfileListFiltersType(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()

	svc := NewToolProfileService(tx, log, repos.NewToolProfileRepo(tx, log))

	if _, err := svc.Create(ctx, "Seller Tool", types.ToolProfileTypeSeller, nil, "pw1"); err != nil {
		t.Fatalf("create seller tool: %v", err)
	}
	if _, err := svc.Create(ctx, "Ally Tool", types.ToolProfileTypeAlly, nil, "pw2"); err != nil {
		t.Fatalf("create ally tool: %v", err)
	}

	sellers, err := svc.List(ctx, types.ToolProfileTypeSeller)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	for _, p := range sellers {
		if p.Type != types.ToolProfileTypeSeller {
			t.Fatalf("list leaked type %q", p.Type)
		}
	}

	if _, err := svc.List(ctx, "hacker"); err == nil {
		t.Fatal("expected error for unknown type")
	}
}
