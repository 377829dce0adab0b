package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
)

// Client is the persistence model for clients
type Client struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyName string
	ContactName string
	Email       string
	EmailLower  string `gorm:"uniqueIndex"`
	Phone       null.String
	Address     null.String
	Notes       null.String
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name
func (Client) TableName() string {
	return "clients"
}
