package repository

import (
	"context"

	"github.com/yukikurage/task-tracker-api/internal/models"
	"gorm.io/gorm"
)

// GormLabelRepository is a GORM implementation of LabelRepository
type GormLabelRepository struct {
	db *gorm.DB
}

// NewLabelRepository creates a new LabelRepository
func NewLabelRepository(db *gorm.DB) LabelRepository {
	return &GormLabelRepository{db: db}
}

func (r *GormLabelRepository) Create(ctx context.Context, label *models.Label) error {
	return r.db.WithContext(ctx).Create(label).Error
}

func (r *GormLabelRepository) FindByID(ctx context.Context, id uint64) (*models.Label, error) {
	var label models.Label
	if err := r.db.WithContext(ctx).First(&label, id).Error; err != nil {
		return nil, err
	}
	return &label, nil
}

// FindByIDs returns the existing labels among ids
func (r *GormLabelRepository) FindByIDs(ctx context.Context, ids []uint64) ([]models.Label, error) {
	labels := []models.Label{}
	if len(ids) == 0 {
		return labels, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("labels.id ASC").Find(&labels).Error; err != nil {
		return nil, err
	}
	return labels, nil
}

func (r *GormLabelRepository) List(ctx context.Context) ([]models.Label, error) {
	var labels []models.Label
	if err := r.db.WithContext(ctx).Order("labels.id ASC").Find(&labels).Error; err != nil {
		return nil, err
	}
	return labels, nil
}

func (r *GormLabelRepository) Update(ctx context.Context, label *models.Label) error {
	return r.db.WithContext(ctx).Save(label).Error
}

// Delete deletes a label. A label still linked to a task fails with the
// driver's foreign key error.
func (r *GormLabelRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&models.Label{}, id).Error
}

func (r *GormLabelRepository) ExistsByName(ctx context.Context, name string, excludeID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Label{}).
		Where("name = ? AND id <> ?", name, excludeID).
		Count(&count).Error
	return count > 0, err
}
