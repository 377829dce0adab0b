package usecases

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"

	"firmdesk.backend/internal/domain/entities"
	domainerrors "firmdesk.backend/internal/domain/errors"
	"firmdesk.backend/internal/domain/repositories"
)

// TaskUsecase handles billable task business logic
type TaskUsecase struct {
	repo       repositories.TaskRepository
	clientRepo repositories.ClientRepository
}

// NewTaskUsecase creates a new task usecase
func NewTaskUsecase(repo repositories.TaskRepository, clientRepo repositories.ClientRepository) *TaskUsecase {
	return &TaskUsecase{repo: repo, clientRepo: clientRepo}
}

// Create creates a task for a client. Amount is derived from hours and
// rate, rounded to two decimals.
func (uc *TaskUsecase) Create(ctx context.Context, input *entities.TaskInput) (*entities.Task, error) {
	if _, err := uc.clientRepo.GetByID(ctx, input.ClientID); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound(domainerrors.CodeNotFound, "client not found")
		}
		return nil, classifyStoreError(err)
	}

	task := &entities.Task{
		ClientID:    input.ClientID,
		Title:       input.Title,
		Description: optString(input.Description),
		Hours:       input.Hours,
		Rate:        input.Rate,
		Amount:      roundMoney(input.Hours * input.Rate),
		Status:      entities.TaskStatusOpen,
	}
	if err := uc.repo.Create(ctx, task); err != nil {
		return nil, classifyStoreError(err)
	}
	return task, nil
}

// Get returns a task by ID
func (uc *TaskUsecase) Get(ctx context.Context, id uuid.UUID) (*entities.Task, error) {
	task, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound(domainerrors.CodeNotFound, "task not found")
		}
		return nil, classifyStoreError(err)
	}
	return task, nil
}

// Update rewrites a task's mutable fields and re-derives the amount.
// Billed tasks cannot be edited.
func (uc *TaskUsecase) Update(ctx context.Context, id uuid.UUID, input *entities.TaskInput) (*entities.Task, error) {
	task, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.Status == entities.TaskStatusBilled {
		return nil, domainerrors.Conflict(domainerrors.CodeInvalidArgument, "billed tasks cannot be edited")
	}

	task.Title = input.Title
	task.Description = optString(input.Description)
	task.Hours = input.Hours
	task.Rate = input.Rate
	task.Amount = roundMoney(input.Hours * input.Rate)

	if err := uc.repo.Update(ctx, task); err != nil {
		return nil, classifyStoreError(err)
	}
	return task, nil
}

// Transition moves a task through its status lifecycle
func (uc *TaskUsecase) Transition(ctx context.Context, id uuid.UUID, to entities.TaskStatus) (*entities.Task, error) {
	task, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !entities.ValidTaskTransition(task.Status, to) {
		return nil, domainerrors.Conflict(domainerrors.CodeInvalidArgument,
			"cannot move task from "+string(task.Status)+" to "+string(to))
	}

	task.Status = to
	if err := uc.repo.Update(ctx, task); err != nil {
		return nil, classifyStoreError(err)
	}
	return task, nil
}

// ListByClient lists a client's tasks
func (uc *TaskUsecase) ListByClient(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*entities.Task, int64, error) {
	out, total, err := uc.repo.ListByClient(ctx, clientID, limit, offset)
	if err != nil {
		return nil, 0, classifyStoreError(err)
	}
	return out, total, nil
}

// Delete soft deletes a task
func (uc *TaskUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	if err := uc.repo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound(domainerrors.CodeNotFound, "task not found")
		}
		return classifyStoreError(err)
	}
	return nil
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
