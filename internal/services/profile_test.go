package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/verdantmarket/verdant-backend/internal/repos"
	"github.com/verdantmarket/verdant-backend/internal/repos/testutil"
	"github.com/verdantmarket/verdant-backend/internal/types"
)

func TestAggregateViewMergesIntakeAndAnswers(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()

	profile := testutil.SeedProfile(t, ctx, tx, types.RoleSeller)

	profileRepo := repos.NewProfileRepo(tx, log)
	intakeRepo := repos.NewIntakeRepo(tx, log)
	svc := NewProfileService(tx, log, profileRepo, intakeRepo)

	err := svc.SaveSellerIntake(ctx, profile.UUID, datatypes.JSON([]byte(
		`{"companyName":"Tidal Kinetics","tags":["wind"],"contact":{"phone":"+3110000000"}}`,
	)))
	if err != nil {
		t.Fatalf("SaveSellerIntake: %v", err)
	}
	err = profileRepo.UpdateData(ctx, nil, profile.UUID, datatypes.JSON([]byte(
		`{"companyName":"Tidal Kinetics BV","tags":["wind","offshore"],"contact":{"email":"ops@tidal.example"}}`,
	)))
	if err != nil {
		t.Fatalf("UpdateData: %v", err)
	}

	view, err := svc.AggregateView(ctx, profile.UUID)
	if err != nil {
		t.Fatalf("AggregateView: %v", err)
	}

	// Questionnaire answers win scalar conflicts over intake.
	if view["companyName"] != "Tidal Kinetics BV" {
		t.Fatalf("companyName: want=%q got=%v", "Tidal Kinetics BV", view["companyName"])
	}
	tags, _ := view["tags"].([]any)
	if len(tags) != 2 {
		t.Fatalf("tags should dedupe to 2 entries, got %v", view["tags"])
	}
	contact, _ := view["contact"].(map[string]any)
	if contact["phone"] != "+3110000000" || contact["email"] != "ops@tidal.example" {
		t.Fatalf("contact objects should shallow-merge, got %v", view["contact"])
	}
}

func TestAggregateViewUnknownProfile(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()

	svc := NewProfileService(tx, log, repos.NewProfileRepo(tx, log), repos.NewIntakeRepo(tx, log))
	if _, err := svc.AggregateView(ctx, uuid.New()); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("want ErrProfileNotFound, got %v", err)
	}
}

func TestCreateProfileRejectsUnknownRole(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()

	svc := NewProfileService(tx, log, repos.NewProfileRepo(tx, log), repos.NewIntakeRepo(tx, log))
	if _, err := svc.CreateProfile(ctx, uuid.New(), "landlord", ""); err == nil {
		t.Fatal("expected error for unknown role")
	}
	if _, err := svc.CreateProfile(ctx, uuid.New(), types.RoleAlly, "ally@example.com"); err != nil {
		t.Fatalf("CreateProfile ally: %v", err)
	}
}
