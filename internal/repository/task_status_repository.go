package repository

import (
	"context"

	"github.com/yukikurage/task-tracker-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskStatusRepository is a GORM implementation of TaskStatusRepository
type GormTaskStatusRepository struct {
	db *gorm.DB
}

// NewTaskStatusRepository creates a new TaskStatusRepository
func NewTaskStatusRepository(db *gorm.DB) TaskStatusRepository {
	return &GormTaskStatusRepository{db: db}
}

func (r *GormTaskStatusRepository) Create(ctx context.Context, status *models.TaskStatus) error {
	return r.db.WithContext(ctx).Create(status).Error
}

func (r *GormTaskStatusRepository) FindByID(ctx context.Context, id uint64) (*models.TaskStatus, error) {
	var status models.TaskStatus
	if err := r.db.WithContext(ctx).First(&status, id).Error; err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *GormTaskStatusRepository) FindBySlug(ctx context.Context, slug string) (*models.TaskStatus, error) {
	var status models.TaskStatus
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&status).Error; err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *GormTaskStatusRepository) List(ctx context.Context) ([]models.TaskStatus, error) {
	var statuses []models.TaskStatus
	if err := r.db.WithContext(ctx).Order("task_statuses.id ASC").Find(&statuses).Error; err != nil {
		return nil, err
	}
	return statuses, nil
}

func (r *GormTaskStatusRepository) Update(ctx context.Context, status *models.TaskStatus) error {
	return r.db.WithContext(ctx).Save(status).Error
}

// Delete deletes a status. A status still referenced by a task fails with
// the driver's foreign key error.
func (r *GormTaskStatusRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&models.TaskStatus{}, id).Error
}

func (r *GormTaskStatusRepository) ExistsByNameOrSlug(ctx context.Context, name, slug string, excludeID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.TaskStatus{}).
		Where("(LOWER(name) = LOWER(?) OR LOWER(slug) = LOWER(?)) AND id <> ?", name, slug, excludeID).
		Count(&count).Error
	return count > 0, err
}
