package repos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/verdantmarket/verdant-backend/internal/logger"
	"github.com/verdantmarket/verdant-backend/internal/types"
)

type ProfileRepo interface {
	Create(ctx context.Context, tx *gorm.DB, profile *types.Profile) (*types.Profile, error)
	GetByUUID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Profile, error)
	UpdateData(ctx context.Context, tx *gorm.DB, id uuid.UUID, data datatypes.JSON) error
	SetStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string) error
	SetTrialEnabled(ctx context.Context, tx *gorm.DB, id uuid.UUID, enabled bool) error
}

type profileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProfileRepo(db *gorm.DB, baseLog *logger.Logger) ProfileRepo {
	return &profileRepo{db: db, log: baseLog.With("repo", "ProfileRepo")}
}

func (pr *profileRepo) Create(ctx context.Context, tx *gorm.DB, profile *types.Profile) (*types.Profile, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	if profile == nil {
		return nil, errors.New("nil profile")
	}
	if err := transaction.WithContext(ctx).Create(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

func (pr *profileRepo) GetByUUID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Profile, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var profile types.Profile
	if err := transaction.WithContext(ctx).
		Where("uuid = ?", id).
		First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (pr *profileRepo) UpdateData(ctx context.Context, tx *gorm.DB, id uuid.UUID, data datatypes.JSON) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	return transaction.WithContext(ctx).
		Model(&types.Profile{}).
		Where("uuid = ?", id).
		Updates(map[string]interface{}{
			"data":       data,
			"updated_at": time.Now().UTC(),
		}).Error
}

func (pr *profileRepo) SetStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	return transaction.WithContext(ctx).
		Model(&types.Profile{}).
		Where("uuid = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now().UTC(),
		}).Error
}

func (pr *profileRepo) SetTrialEnabled(ctx context.Context, tx *gorm.DB, id uuid.UUID, enabled bool) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	return transaction.WithContext(ctx).
		Model(&types.Profile{}).
		Where("uuid = ?", id).
		Updates(map[string]interface{}{
			"is_trial_enabled": enabled,
			"updated_at":       time.Now().UTC(),
		}).Error
}
