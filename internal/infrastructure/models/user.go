package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the persistence model for dashboard operators
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"uniqueIndex"`
	Name         string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}
