package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
)

// Task is the persistence model for billable tasks
type Task struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ClientID    uuid.UUID `gorm:"type:uuid;index"`
	Title       string
	Description null.String
	Hours       float64
	Rate        float64
	Amount      float64
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name
func (Task) TableName() string {
	return "tasks"
}
