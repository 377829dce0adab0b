package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Checklist is the persistence model for checklists. Items are stored as
// JSON text.
type Checklist struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ClientID  uuid.UUID `gorm:"type:uuid;index"`
	Name      string
	Items     string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name
func (Checklist) TableName() string {
	return "checklists"
}
