package app

import (
	"gorm.io/gorm"

	"github.com/verdantmarket/verdant-backend/internal/logger"
	"github.com/verdantmarket/verdant-backend/internal/repos"
)

type Repos struct {
	Flow              repos.FlowRepo
	Profile           repos.ProfileRepo
	Progress          repos.ProgressRepo
	Stage             repos.StageRepo
	ContractSignature repos.ContractSignatureRepo
	ToolProfile       repos.ToolProfileRepo
	Intake            repos.IntakeRepo
	StageDocument     repos.StageDocumentRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Flow:              repos.NewFlowRepo(db, log),
		Profile:           repos.NewProfileRepo(db, log),
		Progress:          repos.NewProgressRepo(db, log),
		Stage:             repos.NewStageRepo(db, log),
		ContractSignature: repos.NewContractSignatureRepo(db, log),
		ToolProfile:       repos.NewToolProfileRepo(db, log),
		Intake:            repos.NewIntakeRepo(db, log),
		StageDocument:     repos.NewStageDocumentRepo(db, log),
	}
}
