package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"firmdesk.backend/internal/domain/entities"
	domainerrors "firmdesk.backend/internal/domain/errors"
	"firmdesk.backend/internal/infrastructure/models"
)

// CouponRepositoryImpl implements coupon data operations
type CouponRepositoryImpl struct {
	db *gorm.DB
}

// NewCouponRepository creates a new coupon repository
func NewCouponRepository(db *gorm.DB) *CouponRepositoryImpl {
	return &CouponRepositoryImpl{db: db}
}

// Create creates a new coupon. Codes are stored uppercase.
func (r *CouponRepositoryImpl) Create(ctx context.Context, coupon *entities.Coupon) error {
	if coupon.ID == uuid.Nil {
		coupon.ID = uuid.New()
	}
	now := time.Now()
	coupon.CreatedAt = now
	coupon.UpdatedAt = now
	coupon.Code = strings.ToUpper(coupon.Code)

	m := couponModel(coupon)
	err := r.db.WithContext(ctx).Create(m).Error
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "unique") {
		return domainerrors.ErrAlreadyExists
	}
	return err
}

// GetByID gets a coupon by ID
func (r *CouponRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.Coupon, error) {
	var m models.Coupon
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toCouponEntity(&m), nil
}

// GetByCode gets a coupon by code (case-insensitive)
func (r *CouponRepositoryImpl) GetByCode(ctx context.Context, code string) (*entities.Coupon, error) {
	var m models.Coupon
	err := r.db.WithContext(ctx).Where("code = ?", strings.ToUpper(code)).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toCouponEntity(&m), nil
}

// Update updates a coupon
func (r *CouponRepositoryImpl) Update(ctx context.Context, coupon *entities.Coupon) error {
	updates := map[string]interface{}{
		"kind":        string(coupon.Kind),
		"value":       coupon.Value,
		"valid_from":  coupon.ValidFrom,
		"valid_until": coupon.ValidUntil,
		"active":      coupon.Active,
		"updated_at":  time.Now(),
	}

	result := r.db.WithContext(ctx).Model(&models.Coupon{}).Where("id = ?", coupon.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List lists coupons, optionally only active ones
func (r *CouponRepositoryImpl) List(ctx context.Context, activeOnly bool) ([]*entities.Coupon, error) {
	query := r.db.WithContext(ctx).Model(&models.Coupon{})
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var rows []models.Coupon
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]*entities.Coupon, 0, len(rows))
	for i := range rows {
		out = append(out, toCouponEntity(&rows[i]))
	}
	return out, nil
}

// DeactivateExpired flips active coupons whose window has passed. The limit
// bounds how many rows a single sweep touches.
func (r *CouponRepositoryImpl) DeactivateExpired(ctx context.Context, limit int) (int64, error) {
	sub := r.db.WithContext(ctx).
		Model(&models.Coupon{}).
		Select("id").
		Where("active = ? AND valid_until <= ?", true, time.Now()).
		Limit(limit)

	result := r.db.WithContext(ctx).
		Model(&models.Coupon{}).
		Where("id IN (?)", sub).
		Updates(map[string]interface{}{"active": false, "updated_at": time.Now()})
	return result.RowsAffected, result.Error
}

func couponModel(e *entities.Coupon) *models.Coupon {
	return &models.Coupon{
		ID:         e.ID,
		Code:       e.Code,
		Kind:       string(e.Kind),
		Value:      e.Value,
		ValidFrom:  e.ValidFrom,
		ValidUntil: e.ValidUntil,
		Active:     e.Active,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

func toCouponEntity(m *models.Coupon) *entities.Coupon {
	return &entities.Coupon{
		ID:         m.ID,
		Code:       m.Code,
		Kind:       entities.CouponKind(m.Kind),
		Value:      m.Value,
		ValidFrom:  m.ValidFrom,
		ValidUntil: m.ValidUntil,
		Active:     m.Active,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
