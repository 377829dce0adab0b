package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Coupon is the persistence model for coupons
type Coupon struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code       string    `gorm:"uniqueIndex"`
	Kind       string
	Value      float64
	ValidFrom  time.Time
	ValidUntil time.Time
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name
func (Coupon) TableName() string {
	return "coupons"
}
