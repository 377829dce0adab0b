package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"firmdesk.backend/internal/domain/entities"
	domainerrors "firmdesk.backend/internal/domain/errors"
	"firmdesk.backend/internal/domain/repositories"
)

// ClientUsecase handles client business logic
type ClientUsecase struct {
	repo repositories.ClientRepository
}

// NewClientUsecase creates a new client usecase
func NewClientUsecase(repo repositories.ClientRepository) *ClientUsecase {
	return &ClientUsecase{repo: repo}
}

// Create creates a new client, enforcing email uniqueness
func (uc *ClientUsecase) Create(ctx context.Context, input *entities.ClientInput) (*entities.Client, error) {
	if _, err := uc.repo.GetByEmail(ctx, input.Email); err == nil {
		return nil, domainerrors.Conflict(domainerrors.CodeDuplicateResource, "a client with this email already exists")
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, classifyStoreError(err)
	}

	client := &entities.Client{
		CompanyName: input.CompanyName,
		ContactName: input.ContactName,
		Email:       input.Email,
		Phone:       optString(input.Phone),
		Address:     optString(input.Address),
		Notes:       optString(input.Notes),
		Status:      entities.ClientStatusActive,
	}
	if err := uc.repo.Create(ctx, client); err != nil {
		return nil, classifyStoreError(err)
	}
	return client, nil
}

// Get returns a client by ID
func (uc *ClientUsecase) Get(ctx context.Context, id uuid.UUID) (*entities.Client, error) {
	client, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound(domainerrors.CodeNotFound, "client not found")
		}
		return nil, classifyStoreError(err)
	}
	return client, nil
}

// Update updates a client's details
func (uc *ClientUsecase) Update(ctx context.Context, id uuid.UUID, input *entities.ClientInput) (*entities.Client, error) {
	current, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != current.Email {
		other, err := uc.repo.GetByEmail(ctx, input.Email)
		if err == nil && other.ID != id {
			return nil, domainerrors.Conflict(domainerrors.CodeDuplicateResource, "a client with this email already exists")
		}
		if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
			return nil, classifyStoreError(err)
		}
	}

	current.CompanyName = input.CompanyName
	current.ContactName = input.ContactName
	current.Email = input.Email
	current.Phone = optString(input.Phone)
	current.Address = optString(input.Address)
	current.Notes = optString(input.Notes)

	if err := uc.repo.Update(ctx, current); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound(domainerrors.CodeNotFound, "client not found")
		}
		return nil, classifyStoreError(err)
	}
	return uc.Get(ctx, id)
}

// Archive moves a client to archived status
func (uc *ClientUsecase) Archive(ctx context.Context, id uuid.UUID) error {
	if err := uc.repo.UpdateStatus(ctx, id, entities.ClientStatusArchived); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound(domainerrors.CodeNotFound, "client not found")
		}
		return classifyStoreError(err)
	}
	return nil
}

// List lists clients with optional search
func (uc *ClientUsecase) List(ctx context.Context, search string, limit, offset int) ([]*entities.Client, int64, error) {
	out, total, err := uc.repo.List(ctx, search, limit, offset)
	if err != nil {
		return nil, 0, classifyStoreError(err)
	}
	return out, total, nil
}

// Delete soft deletes a client
func (uc *ClientUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	if err := uc.repo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound(domainerrors.CodeNotFound, "client not found")
		}
		return classifyStoreError(err)
	}
	return nil
}
