package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/yukikurage/task-tracker-api/internal/auth"
	"github.com/yukikurage/task-tracker-api/internal/constants"
	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"github.com/yukikurage/task-tracker-api/internal/patch"
	"github.com/yukikurage/task-tracker-api/internal/repository"
	"github.com/yukikurage/task-tracker-api/internal/validation"
)

// UserService manages user accounts.
type UserService struct {
	store  repository.Store
	hasher *auth.PasswordHasher
}

// NewUserService creates a new UserService.
func NewUserService(store repository.Store, hasher *auth.PasswordHasher) *UserService {
	return &UserService{
		store:  store,
		hasher: hasher,
	}
}

// CreateUserInput holds the fields of a new account.
type CreateUserInput struct {
	Email     string
	FirstName string
	LastName  string
	Password  string
}

// UpdateUserInput holds a sparse account update.
type UpdateUserInput struct {
	Email     patch.Field[string]
	FirstName patch.Field[string]
	LastName  patch.Field[string]
	Password  patch.Field[string]
}

// GetUser returns a user by ID.
func (s *UserService) GetUser(ctx context.Context, id uint64) (*models.User, error) {
	user, err := s.store.Users().FindByID(ctx, id)
	if err != nil {
		return nil, findError(err, "User", id)
	}
	return user, nil
}

// ListUsers returns every user.
func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.store.Users().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// CreateUser registers an account with the USER role.
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*models.User, error) {
	var errs validation.Errors
	errs.Email("email", input.Email)
	errs.Size("password", input.Password, constants.MinPasswordLength, 0)
	if err := errs.Err(); err != nil {
		return nil, err
	}

	digest, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:          input.Email,
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		PasswordDigest: digest,
	}

	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		if err := ensureEmailAvailable(ctx, tx, input.Email, 0); err != nil {
			return err
		}

		role, err := tx.Roles().FindOrCreate(ctx, models.RoleUser)
		if err != nil {
			return fmt.Errorf("failed to resolve role: %w", err)
		}
		user.Roles = []models.Role{*role}

		if err := tx.Users().Create(ctx, user); err != nil {
			return storageError(err, "create user", apierrors.RelationNone)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// UpdateUser applies the fields present in input. actor is the caller
// already cleared to change user id.
func (s *UserService) UpdateUser(ctx context.Context, actor *models.User, id uint64, input UpdateUserInput) (*models.User, error) {
	if actor == nil {
		return nil, apierrors.Unauthenticated("")
	}

	var errs validation.Errors
	if errs.NotNull("email", input.Email.IsNull()) {
		if email, ok := input.Email.Get(); ok {
			errs.Email("email", email)
		}
	}
	if errs.NotNull("password", input.Password.IsNull()) {
		if password, ok := input.Password.Get(); ok {
			errs.Size("password", password, constants.MinPasswordLength, 0)
		}
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	var user *models.User
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		var err error
		user, err = tx.Users().FindByID(ctx, id)
		if err != nil {
			return findError(err, "User", id)
		}

		if email, ok := input.Email.Get(); ok && email != user.Email {
			if err := ensureEmailAvailable(ctx, tx, email, user.ID); err != nil {
				return err
			}
		}
		patch.Apply(input.Email, &user.Email)
		applyClearable(input.FirstName, &user.FirstName)
		applyClearable(input.LastName, &user.LastName)

		if password, ok := input.Password.Get(); ok {
			digest, err := s.hasher.Hash(password)
			if err != nil {
				return err
			}
			user.PasswordDigest = digest
		}

		if err := tx.Users().Update(ctx, user); err != nil {
			return storageError(err, "update user", apierrors.RelationNone)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "user updated", slog.Uint64("user_id", id), slog.Uint64("actor_id", actor.ID))
	return user, nil
}

// DeleteUser removes an account on behalf of actor. Users still assigned to
// a task are kept.
func (s *UserService) DeleteUser(ctx context.Context, actor *models.User, id uint64) error {
	if actor == nil {
		return apierrors.Unauthenticated("")
	}

	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		user, err := tx.Users().FindByID(ctx, id)
		if err != nil {
			return findError(err, "User", id)
		}

		assigned, err := tx.Users().CountAssignedTasks(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to count assigned tasks: %w", err)
		}
		if assigned > 0 {
			return apierrors.Restriction(apierrors.UserDeleteMessage)
		}

		if err := tx.Users().Delete(ctx, user); err != nil {
			return storageError(err, "delete user", apierrors.RelationAssignee)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "user deleted", slog.Uint64("user_id", id), slog.Uint64("actor_id", actor.ID))
	return nil
}

func ensureEmailAvailable(ctx context.Context, tx repository.Store, email string, excludeID uint64) error {
	taken, err := tx.Users().ExistsByEmail(ctx, email, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return apierrors.AlreadyExistsf("Email %s already in use!", email)
	}
	return nil
}

// applyClearable copies a supplied value and resets dst on an explicit null.
func applyClearable[T any](f patch.Field[T], dst *T) {
	if f.IsNull() {
		var zero T
		*dst = zero
		return
	}
	patch.Apply(f, dst)
}
