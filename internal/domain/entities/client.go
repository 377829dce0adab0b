package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// ClientStatus represents client lifecycle status
type ClientStatus string

const (
	ClientStatusActive   ClientStatus = "active"
	ClientStatusArchived ClientStatus = "archived"
)

// Client represents a client company the firm bills
type Client struct {
	ID          uuid.UUID    `json:"id"`
	CompanyName string       `json:"companyName"`
	ContactName string       `json:"contactName"`
	Email       string       `json:"email"`
	EmailLower  string       `json:"-"`
	Phone       null.String  `json:"phone,omitempty"`
	Address     null.String  `json:"address,omitempty"`
	Notes       null.String  `json:"notes,omitempty"`
	Status      ClientStatus `json:"status"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
	DeletedAt   null.Time    `json:"-"`
}

// ClientInput represents input for creating or updating a client
type ClientInput struct {
	CompanyName string `json:"companyName" binding:"required,min=2,max=200"`
	ContactName string `json:"contactName" binding:"required,min=2,max=100"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
	Notes       string `json:"notes,omitempty"`
}
