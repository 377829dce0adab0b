package repositories

import (
	"context"

	"firmdesk.backend/internal/domain/entities"
	"github.com/google/uuid"
)

// ClientRepository defines client data operations
type ClientRepository interface {
	Create(ctx context.Context, client *entities.Client) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Client, error)
	GetByEmail(ctx context.Context, email string) (*entities.Client, error)
	Update(ctx context.Context, client *entities.Client) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.ClientStatus) error
	List(ctx context.Context, search string, limit, offset int) ([]*entities.Client, int64, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}
