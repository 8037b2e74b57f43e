package types

import (
	"time"

	"github.com/google/uuid"
)

// OnboardingStage is the static stage catalog, independent of any
// respondent. Order is only a display hint; progression is governed by
// the role-keyed workflow orders.
type OnboardingStage struct {
	StageID   int    `gorm:"column:stage_id;primaryKey" json:"stage_id"`
	StageName string `gorm:"column:stage_name;not null" json:"stage_name"`
	Label     string `gorm:"column:label" json:"label"`
	Route     string `gorm:"column:route" json:"route"`
	Order     int    `gorm:"column:sort_order;not null;default:0" json:"order"`
}

func (OnboardingStage) TableName() string { return "onboarding_stages" }

// UserOnboardingProgress is one row per (respondent, stage), created
// lazily when the respondent first reaches the stage.
type UserOnboardingProgress struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UUID          uuid.UUID `gorm:"column:uuid;type:uuid;not null;uniqueIndex:idx_progress_user_stage" json:"uuid"`
	StageID       int       `gorm:"column:stage_id;not null;uniqueIndex:idx_progress_user_stage" json:"stage_id"`
	Status        string    `gorm:"column:status;not null;default:'not_started'" json:"status"`
	LastUpdatedAt time.Time `gorm:"column:last_updated_at;not null;default:now()" json:"last_updated_at"`
}

func (UserOnboardingProgress) TableName() string { return "user_onboarding_progress" }

// ContractSignature records a respondent accepting the contract gate of
// a contract-signing stage.
type ContractSignature struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UUID       uuid.UUID `gorm:"column:uuid;type:uuid;not null;index" json:"uuid"`
	StageID    int       `gorm:"column:stage_id;not null" json:"stage_id"`
	SignedName string    `gorm:"column:signed_name" json:"signed_name"`
	SignedAt   time.Time `gorm:"column:signed_at;not null;default:now()" json:"signed_at"`
}

func (ContractSignature) TableName() string { return "contract_signatures" }
