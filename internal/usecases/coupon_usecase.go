package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"firmdesk.backend/internal/domain/entities"
	domainerrors "firmdesk.backend/internal/domain/errors"
	"firmdesk.backend/internal/domain/repositories"
)

// CouponUsecase handles coupon business logic
type CouponUsecase struct {
	repo repositories.CouponRepository
}

// NewCouponUsecase creates a new coupon usecase
func NewCouponUsecase(repo repositories.CouponRepository) *CouponUsecase {
	return &CouponUsecase{repo: repo}
}

// Create creates a coupon
func (uc *CouponUsecase) Create(ctx context.Context, input *entities.CouponInput) (*entities.Coupon, error) {
	switch input.Kind {
	case entities.CouponPercent:
		if input.Value > 100 {
			return nil, domainerrors.BadRequest(domainerrors.CodeInvalidArgument,
				"percent coupons cannot exceed 100")
		}
	case entities.CouponFixed:
	default:
		return nil, domainerrors.BadRequest(domainerrors.CodeInvalidArgument,
			"kind must be one of: percent, fixed")
	}
	if !input.ValidUntil.After(input.ValidFrom) {
		return nil, domainerrors.BadRequest(domainerrors.CodeInvalidArgument,
			"validUntil must be after validFrom")
	}

	coupon := &entities.Coupon{
		Code:       input.Code,
		Kind:       input.Kind,
		Value:      input.Value,
		ValidFrom:  input.ValidFrom,
		ValidUntil: input.ValidUntil,
		Active:     true,
	}
	if err := uc.repo.Create(ctx, coupon); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, domainerrors.Conflict(domainerrors.CodeDuplicateResource, "a coupon with this code already exists")
		}
		return nil, classifyStoreError(err)
	}
	return coupon, nil
}

// Get returns a coupon by ID
func (uc *CouponUsecase) Get(ctx context.Context, id uuid.UUID) (*entities.Coupon, error) {
	coupon, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound(domainerrors.CodeNotFound, "coupon not found")
		}
		return nil, classifyStoreError(err)
	}
	return coupon, nil
}

// Deactivate turns a coupon off
func (uc *CouponUsecase) Deactivate(ctx context.Context, id uuid.UUID) (*entities.Coupon, error) {
	coupon, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	coupon.Active = false
	if err := uc.repo.Update(ctx, coupon); err != nil {
		return nil, classifyStoreError(err)
	}
	return coupon, nil
}

// List lists coupons
func (uc *CouponUsecase) List(ctx context.Context, activeOnly bool) ([]*entities.Coupon, error) {
	out, err := uc.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, classifyStoreError(err)
	}
	return out, nil
}
