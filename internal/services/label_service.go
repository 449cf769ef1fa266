package services

import (
	"context"
	"fmt"

	"github.com/yukikurage/task-tracker-api/internal/constants"
	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"github.com/yukikurage/task-tracker-api/internal/patch"
	"github.com/yukikurage/task-tracker-api/internal/repository"
	"github.com/yukikurage/task-tracker-api/internal/validation"
)

// LabelService manages labels.
type LabelService struct {
	store repository.Store
}

// NewLabelService creates a new LabelService.
func NewLabelService(store repository.Store) *LabelService {
	return &LabelService{store: store}
}

type CreateLabelInput struct {
	Name string
}

type UpdateLabelInput struct {
	Name patch.Field[string]
}

func (s *LabelService) GetLabel(ctx context.Context, id uint64) (*models.Label, error) {
	label, err := s.store.Labels().FindByID(ctx, id)
	if err != nil {
		return nil, findError(err, "Label", id)
	}
	return label, nil
}

func (s *LabelService) ListLabels(ctx context.Context) ([]models.Label, error) {
	labels, err := s.store.Labels().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}
	return labels, nil
}

func (s *LabelService) CreateLabel(ctx context.Context, input CreateLabelInput) (*models.Label, error) {
	var errs validation.Errors
	validateLabelName(&errs, input.Name)
	if err := errs.Err(); err != nil {
		return nil, err
	}

	label := &models.Label{Name: input.Name}
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		if err := ensureLabelAvailable(ctx, tx, label.Name, 0); err != nil {
			return err
		}
		if err := tx.Labels().Create(ctx, label); err != nil {
			return storageError(err, "create label", apierrors.RelationNone)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return label, nil
}

func (s *LabelService) UpdateLabel(ctx context.Context, id uint64, input UpdateLabelInput) (*models.Label, error) {
	var errs validation.Errors
	if errs.NotNull("name", input.Name.IsNull()) {
		if name, ok := input.Name.Get(); ok {
			validateLabelName(&errs, name)
		}
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	var label *models.Label
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		var err error
		label, err = tx.Labels().FindByID(ctx, id)
		if err != nil {
			return findError(err, "Label", id)
		}

		if name, ok := input.Name.Get(); ok && name != label.Name {
			if err := ensureLabelAvailable(ctx, tx, name, label.ID); err != nil {
				return err
			}
		}
		patch.Apply(input.Name, &label.Name)

		if err := tx.Labels().Update(ctx, label); err != nil {
			return storageError(err, "update label", apierrors.RelationNone)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return label, nil
}

// DeleteLabel removes a label. The database rejects the delete while a task
// carries the label.
func (s *LabelService) DeleteLabel(ctx context.Context, id uint64) error {
	return s.store.Transaction(ctx, func(tx repository.Store) error {
		if _, err := tx.Labels().FindByID(ctx, id); err != nil {
			return findError(err, "Label", id)
		}
		if err := tx.Labels().Delete(ctx, id); err != nil {
			return storageError(err, "delete label", apierrors.RelationLabel)
		}
		return nil
	})
}

func validateLabelName(errs *validation.Errors, name string) {
	if errs.NotBlank("name", name) {
		errs.Size("name", name, constants.MinLabelNameLength, constants.MaxLabelNameLength)
	}
}

func ensureLabelAvailable(ctx context.Context, tx repository.Store, name string, excludeID uint64) error {
	taken, err := tx.Labels().ExistsByName(ctx, name, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check label: %w", err)
	}
	if taken {
		return apierrors.AlreadyExistsf("Label with name %s already in use!", name)
	}
	return nil
}
