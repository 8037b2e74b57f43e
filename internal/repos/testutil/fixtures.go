package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/verdantmarket/verdant-backend/internal/types"
)

func SeedProfile(tb testing.TB, ctx context.Context, tx *gorm.DB, role string) *types.Profile {
	tb.Helper()
	p := &types.Profile{
		UUID:   uuid.New(),
		Role:   role,
		Status: types.ProfileStatusActive,
		Data:   datatypes.JSON([]byte("{}")),
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed profile: %v", err)
	}
	return p
}

func SeedStageCatalog(tb testing.TB, ctx context.Context, tx *gorm.DB) []*types.OnboardingStage {
	tb.Helper()
	stages := []*types.OnboardingStage{
		{StageID: 1, StageName: "kyc", Label: "Know Your Customer", Route: "/onboarding/kyc", Order: 1},
		{StageID: 2, StageName: "contract", Label: "Contract Signing", Route: "/onboarding/contract", Order: 2},
		{StageID: 3, StageName: "payment", Label: "Payment", Route: "/onboarding/payment", Order: 3},
		{StageID: 4, StageName: "documents", Label: "Document Upload", Route: "/onboarding/documents", Order: 4},
		{StageID: 5, StageName: "tool_preferences", Label: "Tool Preferences", Route: "/onboarding/tools", Order: 5},
	}
	for _, s := range stages {
		if err := tx.WithContext(ctx).Create(s).Error; err != nil {
			tb.Fatalf("seed stage %d: %v", s.StageID, err)
		}
	}
	return stages
}

func SeedProgress(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, stageID int, status string) *types.UserOnboardingProgress {
	tb.Helper()
	row := &types.UserOnboardingProgress{
		ID:            uuid.New(),
		UUID:          userID,
		StageID:       stageID,
		Status:        status,
		LastUpdatedAt: time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(row).Error; err != nil {
		tb.Fatalf("seed progress: %v", err)
	}
	return row
}

func SeedFlow(tb testing.TB, ctx context.Context, tx *gorm.DB, flowName string, data string) *types.QuestionFlow {
	tb.Helper()
	flow := &types.QuestionFlow{
		ID:       uuid.New(),
		FlowName: flowName,
		Data:     datatypes.JSON([]byte(data)),
	}
	if err := tx.WithContext(ctx).Create(flow).Error; err != nil {
		tb.Fatalf("seed flow: %v", err)
	}
	return flow
}

func SeedStageDocument(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, stageID int) *types.StageDocument {
	tb.Helper()
	id := uuid.New()
	doc := &types.StageDocument{
		ID:           id,
		UUID:         userID,
		StageID:      stageID,
		OriginalName: "deck.pdf",
		StorageKey:   userID.String() + "/1700000000-" + id.String() + ".pdf",
		MimeType:     "application/pdf",
		SizeBytes:    1024,
		Status:       "uploaded",
	}
	if err := tx.WithContext(ctx).Create(doc).Error; err != nil {
		tb.Fatalf("seed stage document: %v", err)
	}
	return doc
}
