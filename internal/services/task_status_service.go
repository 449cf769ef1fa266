package services

import (
	"context"
	"fmt"

	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"github.com/yukikurage/task-tracker-api/internal/patch"
	"github.com/yukikurage/task-tracker-api/internal/repository"
	"github.com/yukikurage/task-tracker-api/internal/validation"
)

// TaskStatusService manages task statuses.
type TaskStatusService struct {
	store repository.Store
}

// NewTaskStatusService creates a new TaskStatusService.
func NewTaskStatusService(store repository.Store) *TaskStatusService {
	return &TaskStatusService{store: store}
}

type CreateTaskStatusInput struct {
	Name string
	Slug string
}

type UpdateTaskStatusInput struct {
	Name patch.Field[string]
	Slug patch.Field[string]
}

func (s *TaskStatusService) GetTaskStatus(ctx context.Context, id uint64) (*models.TaskStatus, error) {
	status, err := s.store.TaskStatuses().FindByID(ctx, id)
	if err != nil {
		return nil, findError(err, "TaskStatus", id)
	}
	return status, nil
}

func (s *TaskStatusService) ListTaskStatuses(ctx context.Context) ([]models.TaskStatus, error) {
	statuses, err := s.store.TaskStatuses().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list task statuses: %w", err)
	}
	return statuses, nil
}

// CreateTaskStatus creates a status whose name and slug are both unused,
// ignoring case.
func (s *TaskStatusService) CreateTaskStatus(ctx context.Context, input CreateTaskStatusInput) (*models.TaskStatus, error) {
	var errs validation.Errors
	errs.NotBlank("name", input.Name)
	errs.NotBlank("slug", input.Slug)
	if err := errs.Err(); err != nil {
		return nil, err
	}

	status := &models.TaskStatus{Name: input.Name, Slug: input.Slug}
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		if err := ensureStatusAvailable(ctx, tx, status, 0); err != nil {
			return err
		}
		if err := tx.TaskStatuses().Create(ctx, status); err != nil {
			return storageError(err, "create task status", apierrors.RelationNone)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return status, nil
}

func (s *TaskStatusService) UpdateTaskStatus(ctx context.Context, id uint64, input UpdateTaskStatusInput) (*models.TaskStatus, error) {
	var errs validation.Errors
	if errs.NotNull("name", input.Name.IsNull()) {
		if name, ok := input.Name.Get(); ok {
			errs.NotBlank("name", name)
		}
	}
	if errs.NotNull("slug", input.Slug.IsNull()) {
		if slug, ok := input.Slug.Get(); ok {
			errs.NotBlank("slug", slug)
		}
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	var status *models.TaskStatus
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		var err error
		status, err = tx.TaskStatuses().FindByID(ctx, id)
		if err != nil {
			return findError(err, "TaskStatus", id)
		}

		patch.Apply(input.Name, &status.Name)
		patch.Apply(input.Slug, &status.Slug)

		if input.Name.HasValue() || input.Slug.HasValue() {
			if err := ensureStatusAvailable(ctx, tx, status, status.ID); err != nil {
				return err
			}
		}

		if err := tx.TaskStatuses().Update(ctx, status); err != nil {
			return storageError(err, "update task status", apierrors.RelationNone)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return status, nil
}

// DeleteTaskStatus removes a status. The database rejects the delete while
// a task uses the status.
func (s *TaskStatusService) DeleteTaskStatus(ctx context.Context, id uint64) error {
	return s.store.Transaction(ctx, func(tx repository.Store) error {
		if _, err := tx.TaskStatuses().FindByID(ctx, id); err != nil {
			return findError(err, "TaskStatus", id)
		}
		if err := tx.TaskStatuses().Delete(ctx, id); err != nil {
			return storageError(err, "delete task status", apierrors.RelationTaskStatus)
		}
		return nil
	})
}

func ensureStatusAvailable(ctx context.Context, tx repository.Store, status *models.TaskStatus, excludeID uint64) error {
	taken, err := tx.TaskStatuses().ExistsByNameOrSlug(ctx, status.Name, status.Slug, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check task status: %w", err)
	}
	if taken {
		return apierrors.AlreadyExistsf("TaskStatus.name or TaskStatus.slug (%s or %s) already in use!", status.Name, status.Slug)
	}
	return nil
}
