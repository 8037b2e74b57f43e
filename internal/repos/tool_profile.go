package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/verdantmarket/verdant-backend/internal/logger"
	"github.com/verdantmarket/verdant-backend/internal/types"
)

type ToolProfileRepo interface {
	Create(ctx context.Context, tx *gorm.DB, profile *types.ToolProfile) (*types.ToolProfile, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.ToolProfile, error)
	ListByType(ctx context.Context, tx *gorm.DB, profileType string) ([]*types.ToolProfile, error)
}

type toolProfileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewToolProfileRepo(db *gorm.DB, baseLog *logger.Logger) ToolProfileRepo {
	return &toolProfileRepo{db: db, log: baseLog.With("repo", "ToolProfileRepo")}
}

func (tr *toolProfileRepo) Create(ctx context.Context, tx *gorm.DB, profile *types.ToolProfile) (*types.ToolProfile, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	if profile == nil {
		return nil, errors.New("nil tool profile")
	}
	if err := transaction.WithContext(ctx).Create(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

func (tr *toolProfileRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.ToolProfile, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var profile types.ToolProfile
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (tr *toolProfileRepo) ListByType(ctx context.Context, tx *gorm.DB, profileType string) ([]*types.ToolProfile, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var rows []*types.ToolProfile
	if err := transaction.WithContext(ctx).
		Where("type = ?", profileType).
		Order("name").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
