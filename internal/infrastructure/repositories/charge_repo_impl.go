package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"firmdesk.backend/internal/domain/entities"
	domainerrors "firmdesk.backend/internal/domain/errors"
	"firmdesk.backend/internal/infrastructure/models"
)

// ChargeRepositoryImpl implements charge data operations
type ChargeRepositoryImpl struct {
	db *gorm.DB
}

// NewChargeRepository creates a new charge repository
func NewChargeRepository(db *gorm.DB) *ChargeRepositoryImpl {
	return &ChargeRepositoryImpl{db: db}
}

// Create creates a new charge
func (r *ChargeRepositoryImpl) Create(ctx context.Context, charge *entities.Charge) error {
	if charge.ID == uuid.Nil {
		charge.ID = uuid.New()
	}
	now := time.Now()
	charge.CreatedAt = now
	charge.UpdatedAt = now

	items, err := json.Marshal(charge.Items)
	if err != nil {
		return err
	}

	m := &models.Charge{
		ID:         charge.ID,
		ClientID:   charge.ClientID,
		Items:      string(items),
		Subtotal:   charge.Subtotal,
		CouponCode: charge.CouponCode,
		Discount:   charge.Discount,
		Total:      charge.Total,
		Status:     string(charge.Status),
		IssuedAt:   charge.IssuedAt,
		PaidAt:     charge.PaidAt,
		CreatedAt:  charge.CreatedAt,
		UpdatedAt:  charge.UpdatedAt,
	}
	return r.db.WithContext(ctx).Create(m).Error
}

// GetByID gets a charge by ID
func (r *ChargeRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.Charge, error) {
	var m models.Charge
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toChargeEntity(&m)
}

// Update updates a charge
func (r *ChargeRepositoryImpl) Update(ctx context.Context, charge *entities.Charge) error {
	items, err := json.Marshal(charge.Items)
	if err != nil {
		return err
	}

	updates := map[string]interface{}{
		"items":       string(items),
		"subtotal":    charge.Subtotal,
		"coupon_code": charge.CouponCode,
		"discount":    charge.Discount,
		"total":       charge.Total,
		"status":      string(charge.Status),
		"issued_at":   charge.IssuedAt,
		"paid_at":     charge.PaidAt,
		"updated_at":  time.Now(),
	}

	result := r.db.WithContext(ctx).Model(&models.Charge{}).Where("id = ?", charge.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ListByClient lists charges for a client
func (r *ChargeRepositoryImpl) ListByClient(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*entities.Charge, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Charge{}).Where("client_id = ?", clientID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var rows []models.Charge
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make([]*entities.Charge, 0, len(rows))
	for i := range rows {
		e, err := toChargeEntity(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		out = append(out, e)
	}
	return out, total, nil
}

func toChargeEntity(m *models.Charge) (*entities.Charge, error) {
	e := &entities.Charge{
		ID:         m.ID,
		ClientID:   m.ClientID,
		Subtotal:   m.Subtotal,
		CouponCode: m.CouponCode,
		Discount:   m.Discount,
		Total:      m.Total,
		Status:     entities.ChargeStatus(m.Status),
		IssuedAt:   m.IssuedAt,
		PaidAt:     m.PaidAt,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
	if m.Items != "" {
		if err := json.Unmarshal([]byte(m.Items), &e.Items); err != nil {
			return nil, err
		}
	}
	return e, nil
}
