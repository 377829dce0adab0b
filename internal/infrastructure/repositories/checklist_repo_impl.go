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

// ChecklistRepositoryImpl implements checklist data operations
type ChecklistRepositoryImpl struct {
	db *gorm.DB
}

// NewChecklistRepository creates a new checklist repository
func NewChecklistRepository(db *gorm.DB) *ChecklistRepositoryImpl {
	return &ChecklistRepositoryImpl{db: db}
}

// Create creates a new checklist
func (r *ChecklistRepositoryImpl) Create(ctx context.Context, checklist *entities.Checklist) error {
	if checklist.ID == uuid.Nil {
		checklist.ID = uuid.New()
	}
	now := time.Now()
	checklist.CreatedAt = now
	checklist.UpdatedAt = now

	items, err := json.Marshal(checklist.Items)
	if err != nil {
		return err
	}

	m := &models.Checklist{
		ID:        checklist.ID,
		ClientID:  checklist.ClientID,
		Name:      checklist.Name,
		Items:     string(items),
		CreatedAt: checklist.CreatedAt,
		UpdatedAt: checklist.UpdatedAt,
	}
	return r.db.WithContext(ctx).Create(m).Error
}

// GetByID gets a checklist by ID
func (r *ChecklistRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.Checklist, error) {
	var m models.Checklist
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toChecklistEntity(&m)
}

// Update updates a checklist's name and items
func (r *ChecklistRepositoryImpl) Update(ctx context.Context, checklist *entities.Checklist) error {
	items, err := json.Marshal(checklist.Items)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&models.Checklist{}).
		Where("id = ?", checklist.ID).
		Updates(map[string]interface{}{
			"name":       checklist.Name,
			"items":      string(items),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ListByClient lists checklists for a client
func (r *ChecklistRepositoryImpl) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*entities.Checklist, error) {
	var rows []models.Checklist
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]*entities.Checklist, 0, len(rows))
	for i := range rows {
		e, err := toChecklistEntity(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// SoftDelete soft deletes a checklist
func (r *ChecklistRepositoryImpl) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Checklist{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func toChecklistEntity(m *models.Checklist) (*entities.Checklist, error) {
	e := &entities.Checklist{
		ID:        m.ID,
		ClientID:  m.ClientID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.Items != "" {
		if err := json.Unmarshal([]byte(m.Items), &e.Items); err != nil {
			return nil, err
		}
	}
	return e, nil
}
