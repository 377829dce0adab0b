package repositories

import (
	"context"

	"firmdesk.backend/internal/domain/entities"
	"github.com/google/uuid"
)

// ChargeRepository defines charge/invoice data operations
type ChargeRepository interface {
	Create(ctx context.Context, charge *entities.Charge) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Charge, error)
	Update(ctx context.Context, charge *entities.Charge) error
	ListByClient(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*entities.Charge, int64, error)
}
