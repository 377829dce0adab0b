package repositories

import (
	"context"

	"firmdesk.backend/internal/domain/entities"
	"github.com/google/uuid"
)

// TaskRepository defines billable task data operations
type TaskRepository interface {
	Create(ctx context.Context, task *entities.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Task, error)
	Update(ctx context.Context, task *entities.Task) error
	ListByClient(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*entities.Task, int64, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}
