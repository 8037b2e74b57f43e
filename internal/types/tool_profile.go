package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	ToolProfileTypeSeller = "seller"
	ToolProfileTypeAlly   = "ally"
)

// ToolProfile is a password-gated directory entry for a seller or ally
// tool listing. Password holds a bcrypt hash, never the plaintext.
type ToolProfile struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name      string         `gorm:"column:name;not null" json:"name"`
	Type      string         `gorm:"column:type;not null;index" json:"type"`
	Data      datatypes.JSON `gorm:"column:data;type:jsonb" json:"data"`
	Password  string         `gorm:"column:password" json:"-"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (ToolProfile) TableName() string { return "tool_profiles" }
