package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
	RoleAlly   = "ally"
)

// Profile lifecycle status. Active until the respondent finishes the
// last stage of their workflow order.
const (
	ProfileStatusActive    = "active"
	ProfileStatusOnboarded = "onboarded"
)

// Profile is the respondent's aggregate record. Data is the free-form
// answer store keyed by question alias; Role picks the flow and the
// workflow order that governs stage sequencing. DebugAccess lifts all
// stage accessibility and status checks for that respondent.
type Profile struct {
	UUID           uuid.UUID      `gorm:"column:uuid;type:uuid;primaryKey" json:"uuid"`
	Role           string         `gorm:"column:role;not null;index" json:"role"`
	Status         string         `gorm:"column:status;not null;default:'active'" json:"status"`
	Email          string         `gorm:"column:email" json:"email"`
	Data           datatypes.JSON `gorm:"column:data;type:jsonb" json:"data"`
	IsTrialEnabled bool           `gorm:"column:is_trial_enabled;not null;default:false" json:"is_trial_enabled"`
	DebugAccess    bool           `gorm:"column:debug_access;not null;default:false" json:"debug_access"`
	CreatedAt      time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (Profile) TableName() string { return "seller_compound_data" }
