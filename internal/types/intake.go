package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SellerIntakeForm is the initial intake blob written before the seller
// questionnaire; one row per respondent.
type SellerIntakeForm struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UUID      uuid.UUID      `gorm:"column:uuid;type:uuid;not null;uniqueIndex" json:"uuid"`
	Data      datatypes.JSON `gorm:"column:data;type:jsonb" json:"data"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (SellerIntakeForm) TableName() string { return "seller_intake_form" }

// RealEstateIntake mirrors SellerIntakeForm for the real-estate buyer
// intake.
type RealEstateIntake struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UUID      uuid.UUID      `gorm:"column:uuid;type:uuid;not null;uniqueIndex" json:"uuid"`
	Data      datatypes.JSON `gorm:"column:data;type:jsonb" json:"data"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (RealEstateIntake) TableName() string { return "real_estate_intake" }
