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

// UserRepositoryImpl implements operator account data operations
type UserRepositoryImpl struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepositoryImpl {
	return &UserRepositoryImpl{db: db}
}

// Create creates a new user
func (r *UserRepositoryImpl) Create(ctx context.Context, user *entities.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	user.Email = strings.ToLower(user.Email)

	m := &models.User{
		ID:           user.ID,
		Email:        user.Email,
		Name:         user.Name,
		PasswordHash: user.PasswordHash,
		Role:         string(user.Role),
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
	err := r.db.WithContext(ctx).Create(m).Error
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "unique") {
		return domainerrors.ErrAlreadyExists
	}
	return err
}

// GetByID gets a user by ID
func (r *UserRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var m models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toUserEntity(&m), nil
}

// GetByEmail gets a user by email
func (r *UserRepositoryImpl) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	var m models.User
	err := r.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toUserEntity(&m), nil
}

// List lists users with optional search on name and email
func (r *UserRepositoryImpl) List(ctx context.Context, search string) ([]*entities.User, error) {
	query := r.db.WithContext(ctx).Model(&models.User{})
	if search != "" {
		term := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR email LIKE ?", term, term)
	}

	var rows []models.User
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]*entities.User, 0, len(rows))
	for i := range rows {
		out = append(out, toUserEntity(&rows[i]))
	}
	return out, nil
}

func toUserEntity(m *models.User) *entities.User {
	return &entities.User{
		ID:           m.ID,
		Email:        m.Email,
		Name:         m.Name,
		PasswordHash: m.PasswordHash,
		Role:         entities.UserRole(m.Role),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
