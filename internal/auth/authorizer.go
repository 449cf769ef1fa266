package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/task-tracker-api/internal/models"
	"gorm.io/gorm"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("access denied")
)

// UserLookup is the part of the credential store the authorizer needs.
type UserLookup interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// Authorizer evaluates per-resource rules that need the caller's stored row.
type Authorizer struct {
	users UserLookup
}

// NewAuthorizer creates an Authorizer.
func NewAuthorizer(users UserLookup) *Authorizer {
	return &Authorizer{users: users}
}

// CurrentUser resolves the principal's subject to its stored user. A subject
// with no matching row is treated as unauthenticated.
func (a *Authorizer) CurrentUser(ctx context.Context, principal Principal) (*models.User, error) {
	user, err := a.users.FindByEmail(ctx, principal.Subject)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("failed to resolve current user: %w", err)
	}
	return user, nil
}

// AuthorizeUserMutation permits changes to the user targetID when the
// principal is an admin or is that user.
func (a *Authorizer) AuthorizeUserMutation(ctx context.Context, principal Principal, targetID uint64) (*models.User, error) {
	current, err := a.CurrentUser(ctx, principal)
	if err != nil {
		return nil, err
	}
	if principal.IsAdmin() || current.ID == targetID {
		return current, nil
	}
	return nil, ErrForbidden
}
