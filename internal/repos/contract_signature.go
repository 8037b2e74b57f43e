package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/verdantmarket/verdant-backend/internal/logger"
	"github.com/verdantmarket/verdant-backend/internal/types"
)

type ContractSignatureRepo interface {
	Create(ctx context.Context, tx *gorm.DB, sig *types.ContractSignature) (*types.ContractSignature, error)
	GetByUserAndStage(ctx context.Context, tx *gorm.DB, userID uuid.UUID, stageID int) (*types.ContractSignature, error)
}

type contractSignatureRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContractSignatureRepo(db *gorm.DB, baseLog *logger.Logger) ContractSignatureRepo {
	return &contractSignatureRepo{db: db, log: baseLog.With("repo", "ContractSignatureRepo")}
}

func (cr *contractSignatureRepo) Create(ctx context.Context, tx *gorm.DB, sig *types.ContractSignature) (*types.ContractSignature, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	if sig == nil {
		return nil, errors.New("nil contract signature")
	}
	if err := transaction.WithContext(ctx).Create(sig).Error; err != nil {
		return nil, err
	}
	return sig, nil
}

func (cr *contractSignatureRepo) GetByUserAndStage(ctx context.Context, tx *gorm.DB, userID uuid.UUID, stageID int) (*types.ContractSignature, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var sig types.ContractSignature
	if err := transaction.WithContext(ctx).
		Where("uuid = ? AND stage_id = ?", userID, stageID).
		First(&sig).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sig, nil
}
