package repos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/verdantmarket/verdant-backend/internal/logger"
	"github.com/verdantmarket/verdant-backend/internal/types"
)

type ProgressRepo interface {
	GetByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.UserOnboardingProgress, error)
	GetByUserAndStage(ctx context.Context, tx *gorm.DB, userID uuid.UUID, stageID int) (*types.UserOnboardingProgress, error)
	UpsertStatus(ctx context.Context, tx *gorm.DB, userID uuid.UUID, stageID int, status string) error
	CreateIfAbsent(ctx context.Context, tx *gorm.DB, userID uuid.UUID, stageID int, status string) error
}

type progressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProgressRepo(db *gorm.DB, baseLog *logger.Logger) ProgressRepo {
	return &progressRepo{db: db, log: baseLog.With("repo", "ProgressRepo")}
}

func (pr *progressRepo) GetByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.UserOnboardingProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var rows []*types.UserOnboardingProgress
	if err := transaction.WithContext(ctx).
		Where("uuid = ?", userID).
		Order("stage_id").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (pr *progressRepo) GetByUserAndStage(ctx context.Context, tx *gorm.DB, userID uuid.UUID, stageID int) (*types.UserOnboardingProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var row types.UserOnboardingProgress
	if err := transaction.WithContext(ctx).
		Where("uuid = ? AND stage_id = ?", userID, stageID).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// UpsertStatus creates the (user, stage) row or overwrites its status.
func (pr *progressRepo) UpsertStatus(ctx context.Context, tx *gorm.DB, userID uuid.UUID, stageID int, status string) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	now := time.Now().UTC()
	row := &types.UserOnboardingProgress{
		ID:            uuid.New(),
		UUID:          userID,
		StageID:       stageID,
		Status:        status,
		LastUpdatedAt: now,
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "uuid"}, {Name: "stage_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"status":          status,
				"last_updated_at": now,
			}),
		}).
		Create(row).Error
}

// CreateIfAbsent inserts the row only when no (user, stage) row exists
// yet; an existing row keeps its status untouched.
func (pr *progressRepo) CreateIfAbsent(ctx context.Context, tx *gorm.DB, userID uuid.UUID, stageID int, status string) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	row := &types.UserOnboardingProgress{
		ID:            uuid.New(),
		UUID:          userID,
		StageID:       stageID,
		Status:        status,
		LastUpdatedAt: time.Now().UTC(),
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "uuid"}, {Name: "stage_id"}},
			DoNothing: true,
		}).
		Create(row).Error
}
