package repositories

import (
	"context"

	"firmdesk.backend/internal/domain/entities"
	"github.com/google/uuid"
)

// CouponRepository defines coupon data operations
type CouponRepository interface {
	Create(ctx context.Context, coupon *entities.Coupon) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Coupon, error)
	GetByCode(ctx context.Context, code string) (*entities.Coupon, error)
	Update(ctx context.Context, coupon *entities.Coupon) error
	List(ctx context.Context, activeOnly bool) ([]*entities.Coupon, error)
	DeactivateExpired(ctx context.Context, limit int) (int64, error)
}
