package repository

import (
	"context"

	"gorm.io/gorm"
)

// GormStore is a GORM implementation of Store
type GormStore struct {
	db *gorm.DB
}

// NewStore creates a new Store
func NewStore(db *gorm.DB) Store {
	return &GormStore{db: db}
}

func (s *GormStore) Users() UserRepository { return NewUserRepository(s.db) }

func (s *GormStore) Roles() RoleRepository { return NewRoleRepository(s.db) }

func (s *GormStore) TaskStatuses() TaskStatusRepository { return NewTaskStatusRepository(s.db) }

func (s *GormStore) Labels() LabelRepository { return NewLabelRepository(s.db) }

func (s *GormStore) Tasks() TaskRepository { return NewTaskRepository(s.db) }

// Transaction runs fn inside a GORM transaction
func (s *GormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}
