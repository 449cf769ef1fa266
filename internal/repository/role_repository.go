package repository

import (
	"context"
	"errors"

	"github.com/yukikurage/task-tracker-api/internal/models"
	"gorm.io/gorm"
)

// GormRoleRepository is a GORM implementation of RoleRepository
type GormRoleRepository struct {
	db *gorm.DB
}

// NewRoleRepository creates a new RoleRepository
func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &GormRoleRepository{db: db}
}

// FindByAuthority finds a role by authority
func (r *GormRoleRepository) FindByAuthority(ctx context.Context, authority string) (*models.Role, error) {
	var role models.Role
	if err := r.db.WithContext(ctx).Where("authority = ?", authority).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

// FindOrCreate finds a role by authority or creates it
func (r *GormRoleRepository) FindOrCreate(ctx context.Context, authority string) (*models.Role, error) {
	role, err := r.FindByAuthority(ctx, authority)
	if err == nil {
		return role, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	role = &models.Role{Authority: authority}
	if err := r.db.WithContext(ctx).Create(role).Error; err != nil {
		return nil, err
	}
	return role, nil
}
