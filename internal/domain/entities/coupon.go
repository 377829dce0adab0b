package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// CouponKind represents how a coupon discounts a charge
type CouponKind string

const (
	CouponPercent CouponKind = "percent"
	CouponFixed   CouponKind = "fixed"
)

// Coupon represents a discount code applied to charges
type Coupon struct {
	ID         uuid.UUID  `json:"id"`
	Code       string     `json:"code"`
	Kind       CouponKind `json:"kind"`
	Value      float64    `json:"value"`
	ValidFrom  time.Time  `json:"validFrom"`
	ValidUntil time.Time  `json:"validUntil"`
	Active     bool       `json:"active"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	DeletedAt  null.Time  `json:"-"`
}

// UsableAt reports whether the coupon can be applied at the given time
func (c *Coupon) UsableAt(t time.Time) bool {
	return c.Active && !t.Before(c.ValidFrom) && t.Before(c.ValidUntil)
}

// DiscountFor computes the discount against a subtotal. The result never
// exceeds the subtotal.
func (c *Coupon) DiscountFor(subtotal float64) float64 {
	var d float64
	switch c.Kind {
	case CouponPercent:
		d = subtotal * c.Value / 100
	case CouponFixed:
		d = c.Value
	}
	if d > subtotal {
		d = subtotal
	}
	if d < 0 {
		d = 0
	}
	return d
}

// CouponInput represents input for creating a coupon
type CouponInput struct {
	Code       string     `json:"code" binding:"required,min=3,max=24"`
	Kind       CouponKind `json:"kind" binding:"required"`
	Value      float64    `json:"value" binding:"required,gt=0"`
	ValidFrom  time.Time  `json:"validFrom" binding:"required"`
	ValidUntil time.Time  `json:"validUntil" binding:"required"`
}
