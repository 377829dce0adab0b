package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"firmdesk.backend/internal/domain/entities"
	domainerrors "firmdesk.backend/internal/domain/errors"
	"firmdesk.backend/internal/domain/repositories"
)

// ChargeUsecase handles charge/invoice business logic
type ChargeUsecase struct {
	repo       repositories.ChargeRepository
	clientRepo repositories.ClientRepository
	couponRepo repositories.CouponRepository
}

// NewChargeUsecase creates a new charge usecase
func NewChargeUsecase(
	repo repositories.ChargeRepository,
	clientRepo repositories.ClientRepository,
	couponRepo repositories.CouponRepository,
) *ChargeUsecase {
	return &ChargeUsecase{repo: repo, clientRepo: clientRepo, couponRepo: couponRepo}
}

// Create creates a draft charge. Subtotal, discount and total are derived
// from the line items and the optional coupon; client-supplied totals are
// never trusted.
func (uc *ChargeUsecase) Create(ctx context.Context, input *entities.ChargeInput) (*entities.Charge, error) {
	if _, err := uc.clientRepo.GetByID(ctx, input.ClientID); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound(domainerrors.CodeNotFound, "client not found")
		}
		return nil, classifyStoreError(err)
	}

	var subtotal float64
	for _, item := range input.Items {
		if item.Quantity <= 0 || item.UnitPrice < 0 {
			return nil, domainerrors.BadRequest(domainerrors.CodeInvalidArgument,
				"line items need a positive quantity and a non-negative unit price")
		}
		subtotal += item.LineTotal()
	}
	subtotal = roundMoney(subtotal)

	charge := &entities.Charge{
		ClientID: input.ClientID,
		Items:    input.Items,
		Subtotal: subtotal,
		Total:    subtotal,
		Status:   entities.ChargeStatusDraft,
	}

	if input.CouponCode != "" {
		coupon, err := uc.couponRepo.GetByCode(ctx, input.CouponCode)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return nil, domainerrors.BadRequest(domainerrors.CodeInvalidArgument, "coupon code not recognized")
			}
			return nil, classifyStoreError(err)
		}
		if !coupon.UsableAt(time.Now()) {
			return nil, domainerrors.BadRequest(domainerrors.CodeInvalidArgument, "coupon is not currently usable")
		}
		charge.CouponCode = null.StringFrom(coupon.Code)
		charge.Discount = roundMoney(coupon.DiscountFor(subtotal))
		charge.Total = roundMoney(subtotal - charge.Discount)
	}

	if err := uc.repo.Create(ctx, charge); err != nil {
		return nil, classifyStoreError(err)
	}
	return charge, nil
}

// Get returns a charge by ID
func (uc *ChargeUsecase) Get(ctx context.Context, id uuid.UUID) (*entities.Charge, error) {
	charge, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound(domainerrors.CodeNotFound, "charge not found")
		}
		return nil, classifyStoreError(err)
	}
	return charge, nil
}

// Transition moves a charge through its lifecycle, stamping issue and
// payment timestamps at the right transitions.
func (uc *ChargeUsecase) Transition(ctx context.Context, id uuid.UUID, to entities.ChargeStatus) (*entities.Charge, error) {
	charge, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !entities.ValidChargeTransition(charge.Status, to) {
		return nil, domainerrors.Conflict(domainerrors.CodeInvalidArgument,
			"cannot move charge from "+string(charge.Status)+" to "+string(to))
	}

	now := time.Now()
	charge.Status = to
	switch to {
	case entities.ChargeStatusIssued:
		charge.IssuedAt = null.TimeFrom(now)
	case entities.ChargeStatusPaid:
		charge.PaidAt = null.TimeFrom(now)
	}

	if err := uc.repo.Update(ctx, charge); err != nil {
		return nil, classifyStoreError(err)
	}
	return charge, nil
}

// ListByClient lists a client's charges
func (uc *ChargeUsecase) ListByClient(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*entities.Charge, int64, error) {
	out, total, err := uc.repo.ListByClient(ctx, clientID, limit, offset)
	if err != nil {
		return nil, 0, classifyStoreError(err)
	}
	return out, total, nil
}
