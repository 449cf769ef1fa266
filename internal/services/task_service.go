package services

import (
	"context"
	"errors"
	"fmt"

	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"github.com/yukikurage/task-tracker-api/internal/patch"
	"github.com/yukikurage/task-tracker-api/internal/repository"
	"github.com/yukikurage/task-tracker-api/internal/validation"
	"gorm.io/gorm"
)

// TaskService handles task business logic
type TaskService struct {
	store repository.Store
}

// NewTaskService creates a new TaskService
func NewTaskService(store repository.Store) *TaskService {
	return &TaskService{store: store}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Index      *int
	Title      string
	Content    string
	Status     string
	AssigneeID *uint64
	LabelIDs   []uint64
}

// UpdateTaskInput represents a sparse task update
type UpdateTaskInput struct {
	Index      patch.Field[int]
	Title      patch.Field[string]
	Content    patch.Field[string]
	Status     patch.Field[string]
	AssigneeID patch.Field[uint64]
	LabelIDs   patch.Field[[]uint64]
}

// ListTasks returns the tasks matching filter
func (s *TaskService) ListTasks(ctx context.Context, filter repository.TaskFilter) ([]models.Task, error) {
	tasks, err := s.store.Tasks().List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// GetTask returns a task with its status and labels
func (s *TaskService) GetTask(ctx context.Context, id uint64) (*models.Task, error) {
	task, err := s.store.Tasks().FindByID(ctx, id)
	if err != nil {
		return nil, findError(err, "Task", id)
	}
	return task, nil
}

// CreateTask creates a task, resolving its status, assignee and labels
func (s *TaskService) CreateTask(ctx context.Context, input CreateTaskInput) (*models.Task, error) {
	var errs validation.Errors
	errs.NotBlank("title", input.Title)
	errs.NotBlank("status", input.Status)
	if err := errs.Err(); err != nil {
		return nil, err
	}

	var created *models.Task
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		status, err := resolveStatus(ctx, tx, input.Status)
		if err != nil {
			return err
		}

		task := &models.Task{
			Index:        input.Index,
			Name:         input.Title,
			Description:  input.Content,
			TaskStatusID: status.ID,
		}

		if input.AssigneeID != nil {
			if err := resolveAssignee(ctx, tx, *input.AssigneeID); err != nil {
				return err
			}
			task.AssigneeID = input.AssigneeID
		}

		task.Labels, err = resolveLabels(ctx, tx, input.LabelIDs)
		if err != nil {
			return err
		}

		if err := tx.Tasks().Create(ctx, task); err != nil {
			return storageError(err, "create task", apierrors.RelationNone)
		}

		created, err = tx.Tasks().FindByID(ctx, task.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// UpdateTask applies the fields present in input
func (s *TaskService) UpdateTask(ctx context.Context, id uint64, input UpdateTaskInput) (*models.Task, error) {
	var errs validation.Errors
	if errs.NotNull("title", input.Title.IsNull()) {
		if title, ok := input.Title.Get(); ok {
			errs.NotBlank("title", title)
		}
	}
	if errs.NotNull("status", input.Status.IsNull()) {
		if slug, ok := input.Status.Get(); ok {
			errs.NotBlank("status", slug)
		}
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	var updated *models.Task
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		task, err := tx.Tasks().FindByID(ctx, id)
		if err != nil {
			return findError(err, "Task", id)
		}

		switch {
		case input.Index.IsNull():
			task.Index = nil
		case input.Index.HasValue():
			index, _ := input.Index.Get()
			task.Index = &index
		}
		patch.Apply(input.Title, &task.Name)
		applyClearable(input.Content, &task.Description)

		if slug, ok := input.Status.Get(); ok {
			status, err := resolveStatus(ctx, tx, slug)
			if err != nil {
				return err
			}
			task.TaskStatusID = status.ID
			task.TaskStatus = *status
		}

		switch {
		case input.AssigneeID.IsNull():
			task.AssigneeID = nil
		case input.AssigneeID.HasValue():
			assigneeID, _ := input.AssigneeID.Get()
			if err := resolveAssignee(ctx, tx, assigneeID); err != nil {
				return err
			}
			task.AssigneeID = &assigneeID
		}

		if input.LabelIDs.IsSet() {
			ids, _ := input.LabelIDs.Get()
			task.Labels, err = resolveLabels(ctx, tx, ids)
			if err != nil {
				return err
			}
		}

		if err := tx.Tasks().Update(ctx, task); err != nil {
			return storageError(err, "update task", apierrors.RelationNone)
		}

		updated, err = tx.Tasks().FindByID(ctx, task.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteTask deletes a task
func (s *TaskService) DeleteTask(ctx context.Context, id uint64) error {
	return s.store.Transaction(ctx, func(tx repository.Store) error {
		if _, err := tx.Tasks().FindByID(ctx, id); err != nil {
			return findError(err, "Task", id)
		}
		if err := tx.Tasks().Delete(ctx, id); err != nil {
			return storageError(err, "delete task", apierrors.RelationNone)
		}
		return nil
	})
}

func resolveStatus(ctx context.Context, tx repository.Store, slug string) (*models.TaskStatus, error) {
	status, err := tx.TaskStatuses().FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.NotFoundf("TaskStatus with slug %s not found!", slug)
		}
		return nil, fmt.Errorf("failed to find task status: %w", err)
	}
	return status, nil
}

func resolveAssignee(ctx context.Context, tx repository.Store, userID uint64) error {
	if _, err := tx.Users().FindByID(ctx, userID); err != nil {
		return findError(err, "User", userID)
	}
	return nil
}

// resolveLabels loads every requested label, failing on the first unknown id
func resolveLabels(ctx context.Context, tx repository.Store, ids []uint64) ([]models.Label, error) {
	ids = uniqueUint64(ids)
	labels, err := tx.Labels().FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to find labels: %w", err)
	}
	if len(labels) == len(ids) {
		return labels, nil
	}

	found := make(map[uint64]struct{}, len(labels))
	for _, label := range labels {
		found[label.ID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			return nil, apierrors.NotFoundf("Label with id %d not found!", id)
		}
	}
	return labels, nil
}

func uniqueUint64(values []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(values))
	result := make([]uint64, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}
