package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/verdantmarket/verdant-backend/internal/logger"
	"github.com/verdantmarket/verdant-backend/internal/types"
)

type StageRepo interface {
	ListAll(ctx context.Context, tx *gorm.DB) ([]*types.OnboardingStage, error)
	GetByID(ctx context.Context, tx *gorm.DB, stageID int) (*types.OnboardingStage, error)
	UpsertCatalog(ctx context.Context, tx *gorm.DB, stages []*types.OnboardingStage) error
}

type stageRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStageRepo(db *gorm.DB, baseLog *logger.Logger) StageRepo {
	return &stageRepo{db: db, log: baseLog.With("repo", "StageRepo")}
}

func (sr *stageRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.OnboardingStage, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var rows []*types.OnboardingStage
	if err := transaction.WithContext(ctx).
		Order("sort_order").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (sr *stageRepo) GetByID(ctx context.Context, tx *gorm.DB, stageID int) (*types.OnboardingStage, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var row types.OnboardingStage
	if err := transaction.WithContext(ctx).
		Where("stage_id = ?", stageID).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// UpsertCatalog seeds or refreshes the static stage catalog at boot.
func (sr *stageRepo) UpsertCatalog(ctx context.Context, tx *gorm.DB, stages []*types.OnboardingStage) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	if len(stages) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "stage_id"}},
			UpdateAll: true,
		}).
		Create(&stages).Error
}
