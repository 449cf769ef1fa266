package services

import (
	"errors"
	"fmt"

	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
	"gorm.io/gorm"
)

// findError maps a repository lookup failure to NotFound for the given
// resource, leaving other failures wrapped for the caller.
func findError(err error, resource string, id uint64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apierrors.NotFoundf("%s with id %d not found!", resource, id)
	}
	return fmt.Errorf("failed to find %s %d: %w", resource, id, err)
}

// storageError translates constraint violations and wraps everything else.
func storageError(err error, action string, hint apierrors.Relation) error {
	translated := apierrors.TranslateStorage(err, hint)
	var apiErr *apierrors.APIError
	if errors.As(translated, &apiErr) {
		return translated
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}
