package repository

import (
	"context"

	"github.com/yukikurage/task-tracker-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user together with its role links
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID with roles preloaded
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByEmail finds a user by exact email with roles preloaded
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// List returns all users ordered by ID
	List(ctx context.Context) ([]models.User, error)

	// Update persists scalar user fields
	Update(ctx context.Context, user *models.User) error

	// Delete removes the user's role links and then the user
	Delete(ctx context.Context, user *models.User) error

	// ExistsByEmail reports whether another user already owns email
	ExistsByEmail(ctx context.Context, email string, excludeID uint64) (bool, error)

	// CountAssignedTasks counts tasks whose assignee is userID
	CountAssignedTasks(ctx context.Context, userID uint64) (int64, error)
}

// RoleRepository defines the interface for role data access
type RoleRepository interface {
	// FindByAuthority finds a role by its authority name
	FindByAuthority(ctx context.Context, authority string) (*models.Role, error)

	// FindOrCreate returns the role with authority, creating it when missing
	FindOrCreate(ctx context.Context, authority string) (*models.Role, error)
}

// TaskStatusRepository defines the interface for task status data access
type TaskStatusRepository interface {
	Create(ctx context.Context, status *models.TaskStatus) error
	FindByID(ctx context.Context, id uint64) (*models.TaskStatus, error)
	FindBySlug(ctx context.Context, slug string) (*models.TaskStatus, error)
	List(ctx context.Context) ([]models.TaskStatus, error)
	Update(ctx context.Context, status *models.TaskStatus) error
	Delete(ctx context.Context, id uint64) error

	// ExistsByNameOrSlug reports whether a status other than excludeID uses
	// name or slug, compared case-insensitively
	ExistsByNameOrSlug(ctx context.Context, name, slug string, excludeID uint64) (bool, error)
}

// LabelRepository defines the interface for label data access
type LabelRepository interface {
	Create(ctx context.Context, label *models.Label) error
	FindByID(ctx context.Context, id uint64) (*models.Label, error)

	// FindByIDs returns the labels that exist among ids
	FindByIDs(ctx context.Context, ids []uint64) ([]models.Label, error)

	List(ctx context.Context) ([]models.Label, error)
	Update(ctx context.Context, label *models.Label) error
	Delete(ctx context.Context, id uint64) error

	// ExistsByName reports whether a label other than excludeID uses name
	ExistsByName(ctx context.Context, name string, excludeID uint64) (bool, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a task and links its labels
	Create(ctx context.Context, task *models.Task) error

	// FindByID finds a task with its status and labels preloaded
	FindByID(ctx context.Context, id uint64) (*models.Task, error)

	// List retrieves the tasks matching filter ordered by ID
	List(ctx context.Context, filter TaskFilter) ([]models.Task, error)

	// Update persists task fields and replaces its label links
	Update(ctx context.Context, task *models.Task) error

	// Delete removes a task and its label links
	Delete(ctx context.Context, id uint64) error
}

// Store groups the repositories that share one database handle. Repositories
// obtained from the tx passed to Transaction run inside that transaction.
type Store interface {
	Users() UserRepository
	Roles() RoleRepository
	TaskStatuses() TaskStatusRepository
	Labels() LabelRepository
	Tasks() TaskRepository

	// Transaction runs fn in a database transaction. A non-nil error from fn
	// rolls it back.
	Transaction(ctx context.Context, fn func(tx Store) error) error
}
