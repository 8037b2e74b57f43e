package repos

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/verdantmarket/verdant-backend/internal/logger"
	"github.com/verdantmarket/verdant-backend/internal/types"
)

type FlowRepo interface {
	GetByFlowName(ctx context.Context, tx *gorm.DB, flowName string) (*types.QuestionFlow, error)
	ListFlowNames(ctx context.Context, tx *gorm.DB) ([]string, error)
	UpsertData(ctx context.Context, tx *gorm.DB, flowName string, data datatypes.JSON) error
}

type flowRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFlowRepo(db *gorm.DB, baseLog *logger.Logger) FlowRepo {
	return &flowRepo{db: db, log: baseLog.With("repo", "FlowRepo")}
}

func (fr *flowRepo) GetByFlowName(ctx context.Context, tx *gorm.DB, flowName string) (*types.QuestionFlow, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	var flow types.QuestionFlow
	if err := transaction.WithContext(ctx).
		Where("flow_name = ?", flowName).
		First(&flow).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &flow, nil
}

func (fr *flowRepo) ListFlowNames(ctx context.Context, tx *gorm.DB) ([]string, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	var names []string
	if err := transaction.WithContext(ctx).
		Model(&types.QuestionFlow{}).
		Order("flow_name").
		Pluck("flow_name", &names).Error; err != nil {
		return nil, err
	}
	return names, nil
}

// UpsertData writes the flow's whole section document in one
// statement. The entire sections array is a single JSON value, so the
// write is atomic by construction.
func (fr *flowRepo) UpsertData(ctx context.Context, tx *gorm.DB, flowName string, data datatypes.JSON) error {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	row := &types.QuestionFlow{
		FlowName:  flowName,
		Data:      data,
		UpdatedAt: time.Now().UTC(),
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "flow_name"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"data":       data,
				"updated_at": row.UpdatedAt,
			}),
		}).
		Create(row).Error
}
