package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"firmdesk.backend/internal/domain/entities"
	domainerrors "firmdesk.backend/internal/domain/errors"
	"firmdesk.backend/internal/domain/repositories"
)

// ChecklistUsecase handles checklist business logic
type ChecklistUsecase struct {
	repo       repositories.ChecklistRepository
	clientRepo repositories.ClientRepository
}

// NewChecklistUsecase creates a new checklist usecase
func NewChecklistUsecase(repo repositories.ChecklistRepository, clientRepo repositories.ClientRepository) *ChecklistUsecase {
	return &ChecklistUsecase{repo: repo, clientRepo: clientRepo}
}

// Create creates a checklist for a client
func (uc *ChecklistUsecase) Create(ctx context.Context, input *entities.ChecklistInput) (*entities.ChecklistResponse, error) {
	if _, err := uc.clientRepo.GetByID(ctx, input.ClientID); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound(domainerrors.CodeNotFound, "client not found")
		}
		return nil, classifyStoreError(err)
	}

	items := make([]entities.ChecklistItem, 0, len(input.Items))
	for _, text := range input.Items {
		if text == "" {
			continue
		}
		items = append(items, entities.ChecklistItem{ID: uuid.New(), Text: text})
	}

	checklist := &entities.Checklist{
		ClientID: input.ClientID,
		Name:     input.Name,
		Items:    items,
	}
	if err := uc.repo.Create(ctx, checklist); err != nil {
		return nil, classifyStoreError(err)
	}
	return entities.NewChecklistResponse(checklist), nil
}

// Get returns a checklist with derived progress
func (uc *ChecklistUsecase) Get(ctx context.Context, id uuid.UUID) (*entities.ChecklistResponse, error) {
	checklist, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound(domainerrors.CodeNotFound, "checklist not found")
		}
		return nil, classifyStoreError(err)
	}
	return entities.NewChecklistResponse(checklist), nil
}

// Rename changes a checklist's name
func (uc *ChecklistUsecase) Rename(ctx context.Context, id uuid.UUID, name string) (*entities.ChecklistResponse, error) {
	checklist, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound(domainerrors.CodeNotFound, "checklist not found")
		}
		return nil, classifyStoreError(err)
	}

	checklist.Name = name
	if err := uc.repo.Update(ctx, checklist); err != nil {
		return nil, classifyStoreError(err)
	}
	return entities.NewChecklistResponse(checklist), nil
}

// AddItem appends a new item to a checklist
func (uc *ChecklistUsecase) AddItem(ctx context.Context, id uuid.UUID, text string) (*entities.ChecklistResponse, error) {
	checklist, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound(domainerrors.CodeNotFound, "checklist not found")
		}
		return nil, classifyStoreError(err)
	}

	checklist.Items = append(checklist.Items, entities.ChecklistItem{ID: uuid.New(), Text: text})
	if err := uc.repo.Update(ctx, checklist); err != nil {
		return nil, classifyStoreError(err)
	}
	return entities.NewChecklistResponse(checklist), nil
}

// ToggleItem flips an item's done flag
func (uc *ChecklistUsecase) ToggleItem(ctx context.Context, id, itemID uuid.UUID) (*entities.ChecklistResponse, error) {
	checklist, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound(domainerrors.CodeNotFound, "checklist not found")
		}
		return nil, classifyStoreError(err)
	}

	found := false
	for i := range checklist.Items {
		if checklist.Items[i].ID == itemID {
			checklist.Items[i].Done = !checklist.Items[i].Done
			found = true
			break
		}
	}
	if !found {
		return nil, domainerrors.NotFound(domainerrors.CodeNotFound, "checklist item not found")
	}

	if err := uc.repo.Update(ctx, checklist); err != nil {
		return nil, classifyStoreError(err)
	}
	return entities.NewChecklistResponse(checklist), nil
}

// ListByClient lists a client's checklists with derived progress
func (uc *ChecklistUsecase) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*entities.ChecklistResponse, error) {
	checklists, err := uc.repo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, classifyStoreError(err)
	}

	out := make([]*entities.ChecklistResponse, 0, len(checklists))
	for _, c := range checklists {
		out = append(out, entities.NewChecklistResponse(c))
	}
	return out, nil
}

// Delete soft deletes a checklist
func (uc *ChecklistUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	if err := uc.repo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound(domainerrors.CodeNotFound, "checklist not found")
		}
		return classifyStoreError(err)
	}
	return nil
}
