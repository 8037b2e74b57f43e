package db

import (
	"context"

	"github.com/verdantmarket/verdant-backend/internal/onboarding"
	"github.com/verdantmarket/verdant-backend/internal/repos"
	"github.com/verdantmarket/verdant-backend/internal/types"
)

// SeedStageCatalog upserts the static onboarding stage catalog from
// the workflow config. Runs on every boot; the upsert keeps edits to
// labels and routes in the seed file authoritative.
func SeedStageCatalog(ctx context.Context, stageRepo repos.StageRepo, cfg onboarding.WorkflowConfig) error {
	stages := make([]*types.OnboardingStage, 0, len(cfg.Stages))
	for _, def := range cfg.Stages {
		stages = append(stages, &types.OnboardingStage{
			StageID:   def.StageID,
			StageName: def.StageName,
			Label:     def.Label,
			Route:     def.Route,
			Order:     def.Order,
		})
	}
	return stageRepo.UpsertCatalog(ctx, nil, stages)
}
