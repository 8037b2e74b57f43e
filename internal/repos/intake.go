package repos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/verdantmarket/verdant-backend/internal/logger"
	"github.com/verdantmarket/verdant-backend/internal/types"
)

type IntakeRepo interface {
	UpsertSellerIntake(ctx context.Context, tx *gorm.DB, userID uuid.UUID, data datatypes.JSON) error
	GetSellerIntake(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.SellerIntakeForm, error)
	UpsertRealEstateIntake(ctx context.Context, tx *gorm.DB, userID uuid.UUID, data datatypes.JSON) error
	GetRealEstateIntake(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.RealEstateIntake, error)
}

type intakeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewIntakeRepo(db *gorm.DB, baseLog *logger.Logger) IntakeRepo {
	return &intakeRepo{db: db, log: baseLog.With("repo", "IntakeRepo")}
}

func (ir *intakeRepo) UpsertSellerIntake(ctx context.Context, tx *gorm.DB, userID uuid.UUID, data datatypes.JSON) error {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}

	now := time.Now().UTC()
	row := &types.SellerIntakeForm{
		UUID:      userID,
		Data:      data,
		UpdatedAt: now,
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "uuid"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"data":       data,
				"updated_at": now,
			}),
		}).
		Create(row).Error
}

func (ir *intakeRepo) GetSellerIntake(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.SellerIntakeForm, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}

	var row types.SellerIntakeForm
	if err := transaction.WithContext(ctx).
		Where("uuid = ?", userID).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (ir *intakeRepo) UpsertRealEstateIntake(ctx context.Context, tx *gorm.DB, userID uuid.UUID, data datatypes.JSON) error {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}

	now := time.Now().UTC()
	row := &types.RealEstateIntake{
		UUID:      userID,
		Data:      data,
		UpdatedAt: now,
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "uuid"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"data":       data,
				"updated_at": now,
			}),
		}).
		Create(row).Error
}

func (ir *intakeRepo) GetRealEstateIntake(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.RealEstateIntake, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}

	var row types.RealEstateIntake
	if err := transaction.WithContext(ctx).
		Where("uuid = ?", userID).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}
