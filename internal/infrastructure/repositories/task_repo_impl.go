package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"firmdesk.backend/internal/domain/entities"
	domainerrors "firmdesk.backend/internal/domain/errors"
	"firmdesk.backend/internal/infrastructure/models"
)

// TaskRepositoryImpl implements billable task data operations
type TaskRepositoryImpl struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *gorm.DB) *TaskRepositoryImpl {
	return &TaskRepositoryImpl{db: db}
}

// Create creates a new task
func (r *TaskRepositoryImpl) Create(ctx context.Context, task *entities.Task) error {
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now

	m := &models.Task{
		ID:          task.ID,
		ClientID:    task.ClientID,
		Title:       task.Title,
		Description: task.Description,
		Hours:       task.Hours,
		Rate:        task.Rate,
		Amount:      task.Amount,
		Status:      string(task.Status),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
	return r.db.WithContext(ctx).Create(m).Error
}

// GetByID gets a task by ID
func (r *TaskRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.Task, error) {
	var m models.Task
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toTaskEntity(&m), nil
}

// Update updates a task
func (r *TaskRepositoryImpl) Update(ctx context.Context, task *entities.Task) error {
	updates := map[string]interface{}{
		"title":       task.Title,
		"description": task.Description,
		"hours":       task.Hours,
		"rate":        task.Rate,
		"amount":      task.Amount,
		"status":      string(task.Status),
		"updated_at":  time.Now(),
	}

	result := r.db.WithContext(ctx).Model(&models.Task{}).Where("id = ?", task.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ListByClient lists tasks for a client
func (r *TaskRepositoryImpl) ListByClient(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*entities.Task, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Task{}).Where("client_id = ?", clientID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var rows []models.Task
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make([]*entities.Task, 0, len(rows))
	for i := range rows {
		out = append(out, toTaskEntity(&rows[i]))
	}
	return out, total, nil
}

// SoftDelete soft deletes a task
func (r *TaskRepositoryImpl) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Task{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func toTaskEntity(m *models.Task) *entities.Task {
	return &entities.Task{
		ID:          m.ID,
		ClientID:    m.ClientID,
		Title:       m.Title,
		Description: m.Description,
		Hours:       m.Hours,
		Rate:        m.Rate,
		Amount:      m.Amount,
		Status:      entities.TaskStatus(m.Status),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
