package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StageDocument is one uploaded file attached to a document-upload
// stage. StorageKey is <uuid>/<unixts>-<sanitized name> in the bucket.
type StageDocument struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UUID         uuid.UUID      `gorm:"column:uuid;type:uuid;not null;index" json:"uuid"`
	StageID      int            `gorm:"column:stage_id;not null;index" json:"stage_id"`
	OriginalName string         `gorm:"column:original_name;not null" json:"original_name"`
	StorageKey   string         `gorm:"column:storage_key;not null" json:"storage_key"`
	MimeType     string         `gorm:"column:mime_type" json:"mime_type"`
	SizeBytes    int64          `gorm:"column:size_bytes;not null;default:0" json:"size_bytes"`
	FileURL      string         `gorm:"column:file_url" json:"file_url"`
	Status       string         `gorm:"column:status;not null;default:'uploaded'" json:"status"`
	CreatedAt    time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (StageDocument) TableName() string { return "stage_documents" }
