package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/verdantmarket/verdant-backend/internal/logger"
	"github.com/verdantmarket/verdant-backend/internal/types"
)

type StageDocumentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, docs []*types.StageDocument) ([]*types.StageDocument, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.StageDocument, error)
	ListByUserAndStage(ctx context.Context, tx *gorm.DB, userID uuid.UUID, stageID int) ([]*types.StageDocument, error)
	SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
}

type stageDocumentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStageDocumentRepo(db *gorm.DB, baseLog *logger.Logger) StageDocumentRepo {
	return &stageDocumentRepo{db: db, log: baseLog.With("repo", "StageDocumentRepo")}
}

func (dr *stageDocumentRepo) Create(ctx context.Context, tx *gorm.DB, docs []*types.StageDocument) ([]*types.StageDocument, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	if len(docs) == 0 {
		return []*types.StageDocument{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

func (dr *stageDocumentRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.StageDocument, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	var rows []*types.StageDocument
	if len(ids) == 0 {
		return rows, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (dr *stageDocumentRepo) ListByUserAndStage(ctx context.Context, tx *gorm.DB, userID uuid.UUID, stageID int) ([]*types.StageDocument, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	var rows []*types.StageDocument
	if err := transaction.WithContext(ctx).
		Where("uuid = ? AND stage_id = ?", userID, stageID).
		Order("created_at").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (dr *stageDocumentRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	if len(ids) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&types.StageDocument{}).Error
}
