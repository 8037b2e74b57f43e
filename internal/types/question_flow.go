package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// QuestionFlow holds the full section tree for one onboarding flow
// (e.g. kyc_seller, kyc_buyer) as a single JSON document. Schema saves
// rewrite Data wholesale; there is no row-level section storage.
type QuestionFlow struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	FlowName  string         `gorm:"column:flow_name;not null;uniqueIndex" json:"flow_name"`
	Data      datatypes.JSON `gorm:"column:data;type:jsonb" json:"data"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (QuestionFlow) TableName() string { return "onboarding_questions" }
