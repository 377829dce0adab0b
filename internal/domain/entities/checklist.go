package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// ChecklistItem is a single entry in a checklist
type ChecklistItem struct {
	ID   uuid.UUID `json:"id"`
	Text string    `json:"text"`
	Done bool      `json:"done"`
}

// Checklist represents a named list of items tracked per client engagement
type Checklist struct {
	ID        uuid.UUID       `json:"id"`
	ClientID  uuid.UUID       `json:"clientId"`
	Name      string          `json:"name"`
	Items     []ChecklistItem `json:"items"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	DeletedAt null.Time       `json:"-"`
}

// CompletedCount returns how many items are done
func (c *Checklist) CompletedCount() int {
	n := 0
	for _, it := range c.Items {
		if it.Done {
			n++
		}
	}
	return n
}

// ChecklistInput represents input for creating a checklist
type ChecklistInput struct {
	ClientID uuid.UUID `json:"clientId" binding:"required"`
	Name     string    `json:"name" binding:"required,min=2,max=200"`
	Items    []string  `json:"items"`
}

// ChecklistResponse is a checklist plus its derived progress
type ChecklistResponse struct {
	*Checklist
	CompletedCount int `json:"completedCount"`
	TotalCount     int `json:"totalCount"`
}

// NewChecklistResponse wraps a checklist with derived counts
func NewChecklistResponse(c *Checklist) *ChecklistResponse {
	return &ChecklistResponse{
		Checklist:      c,
		CompletedCount: c.CompletedCount(),
		TotalCount:     len(c.Items),
	}
}
