package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// ChargeStatus represents invoice lifecycle
type ChargeStatus string

const (
	ChargeStatusDraft  ChargeStatus = "draft"
	ChargeStatusIssued ChargeStatus = "issued"
	ChargeStatusPaid   ChargeStatus = "paid"
	ChargeStatusVoid   ChargeStatus = "void"
)

// ChargeItem is a single invoice line
type ChargeItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

// LineTotal returns quantity times unit price
func (i ChargeItem) LineTotal() float64 {
	return i.Quantity * i.UnitPrice
}

// Charge represents an invoice-like record with a derived total
type Charge struct {
	ID         uuid.UUID    `json:"id"`
	ClientID   uuid.UUID    `json:"clientId"`
	Items      []ChargeItem `json:"items"`
	Subtotal   float64      `json:"subtotal"`
	CouponCode null.String  `json:"couponCode,omitempty"`
	Discount   float64      `json:"discount"`
	Total      float64      `json:"total"`
	Status     ChargeStatus `json:"status"`
	IssuedAt   null.Time    `json:"issuedAt,omitempty"`
	PaidAt     null.Time    `json:"paidAt,omitempty"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
	DeletedAt  null.Time    `json:"-"`
}

// ChargeInput represents input for creating a charge
type ChargeInput struct {
	ClientID   uuid.UUID    `json:"clientId" binding:"required"`
	Items      []ChargeItem `json:"items" binding:"required,min=1,dive"`
	CouponCode string       `json:"couponCode,omitempty"`
}

// ValidChargeTransition reports whether a status change is allowed
func ValidChargeTransition(from, to ChargeStatus) bool {
	switch from {
	case ChargeStatusDraft:
		return to == ChargeStatusIssued || to == ChargeStatusVoid
	case ChargeStatusIssued:
		return to == ChargeStatusPaid || to == ChargeStatusVoid
	default:
		return false
	}
}
