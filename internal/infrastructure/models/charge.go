package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
)

// Charge is the persistence model for charges. Line items are stored as
// JSON text.
type Charge struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ClientID   uuid.UUID `gorm:"type:uuid;index"`
	Items      string
	Subtotal   float64
	CouponCode null.String
	Discount   float64
	Total      float64
	Status     string
	IssuedAt   null.Time
	PaidAt     null.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name
func (Charge) TableName() string {
	return "charges"
}
