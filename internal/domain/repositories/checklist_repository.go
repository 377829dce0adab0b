package repositories

import (
	"context"

	"firmdesk.backend/internal/domain/entities"
	"github.com/google/uuid"
)

// ChecklistRepository defines checklist data operations
type ChecklistRepository interface {
	Create(ctx context.Context, checklist *entities.Checklist) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Checklist, error)
	Update(ctx context.Context, checklist *entities.Checklist) error
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]*entities.Checklist, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}
