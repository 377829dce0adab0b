package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// TaskStatus represents billable task progress
type TaskStatus string

const (
	TaskStatusOpen       TaskStatus = "open"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
	TaskStatusBilled     TaskStatus = "billed"
)

// Task represents a billable unit of work for a client
type Task struct {
	ID          uuid.UUID   `json:"id"`
	ClientID    uuid.UUID   `json:"clientId"`
	Title       string      `json:"title"`
	Description null.String `json:"description,omitempty"`
	Hours       float64     `json:"hours"`
	Rate        float64     `json:"rate"`
	Amount      float64     `json:"amount"`
	Status      TaskStatus  `json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
	DeletedAt   null.Time   `json:"-"`
}

// TaskInput represents input for creating a task
type TaskInput struct {
	ClientID    uuid.UUID `json:"clientId" binding:"required"`
	Title       string    `json:"title" binding:"required,min=2,max=200"`
	Description string    `json:"description,omitempty"`
	Hours       float64   `json:"hours" binding:"required,gt=0"`
	Rate        float64   `json:"rate" binding:"gte=0"`
}

// ValidTaskTransition reports whether a status change is allowed. Billed
// tasks are final.
func ValidTaskTransition(from, to TaskStatus) bool {
	switch from {
	case TaskStatusOpen:
		return to == TaskStatusInProgress || to == TaskStatusDone
	case TaskStatusInProgress:
		return to == TaskStatusOpen || to == TaskStatusDone
	case TaskStatusDone:
		return to == TaskStatusInProgress || to == TaskStatusBilled
	default:
		return false
	}
}
