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

// ClientRepositoryImpl implements client data operations
type ClientRepositoryImpl struct {
	db *gorm.DB
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *gorm.DB) *ClientRepositoryImpl {
	return &ClientRepositoryImpl{db: db}
}

// Create creates a new client
func (r *ClientRepositoryImpl) Create(ctx context.Context, client *entities.Client) error {
	if client.ID == uuid.Nil {
		client.ID = uuid.New()
	}
	now := time.Now()
	client.CreatedAt = now
	client.UpdatedAt = now
	client.EmailLower = strings.ToLower(client.Email)

	m := clientModel(client)
	return r.db.WithContext(ctx).Create(m).Error
}

// GetByID gets a client by ID
func (r *ClientRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.Client, error) {
	var m models.Client
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toClientEntity(&m), nil
}

// GetByEmail gets a client by email (case-insensitive)
func (r *ClientRepositoryImpl) GetByEmail(ctx context.Context, email string) (*entities.Client, error) {
	var m models.Client
	err := r.db.WithContext(ctx).Where("email_lower = ?", strings.ToLower(email)).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toClientEntity(&m), nil
}

// Update updates a client
func (r *ClientRepositoryImpl) Update(ctx context.Context, client *entities.Client) error {
	updates := map[string]interface{}{
		"company_name": client.CompanyName,
		"contact_name": client.ContactName,
		"email":        client.Email,
		"email_lower":  strings.ToLower(client.Email),
		"phone":        client.Phone,
		"address":      client.Address,
		"notes":        client.Notes,
		"updated_at":   time.Now(),
	}

	result := r.db.WithContext(ctx).Model(&models.Client{}).Where("id = ?", client.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// UpdateStatus updates client status
func (r *ClientRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.ClientStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": string(status), "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List lists clients with optional search
func (r *ClientRepositoryImpl) List(ctx context.Context, search string, limit, offset int) ([]*entities.Client, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Client{})

	if search != "" {
		term := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(company_name) LIKE ? OR LOWER(contact_name) LIKE ? OR email_lower LIKE ?", term, term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var rows []models.Client
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make([]*entities.Client, 0, len(rows))
	for i := range rows {
		out = append(out, toClientEntity(&rows[i]))
	}
	return out, total, nil
}

// SoftDelete soft deletes a client
func (r *ClientRepositoryImpl) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Client{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func clientModel(e *entities.Client) *models.Client {
	return &models.Client{
		ID:          e.ID,
		CompanyName: e.CompanyName,
		ContactName: e.ContactName,
		Email:       e.Email,
		EmailLower:  e.EmailLower,
		Phone:       e.Phone,
		Address:     e.Address,
		Notes:       e.Notes,
		Status:      string(e.Status),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func toClientEntity(m *models.Client) *entities.Client {
	return &entities.Client{
		ID:          m.ID,
		CompanyName: m.CompanyName,
		ContactName: m.ContactName,
		Email:       m.Email,
		EmailLower:  m.EmailLower,
		Phone:       m.Phone,
		Address:     m.Address,
		Notes:       m.Notes,
		Status:      entities.ClientStatus(m.Status),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
