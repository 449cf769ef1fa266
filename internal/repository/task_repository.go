package repository

import (
	"context"

	"github.com/yukikurage/task-tracker-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task and links task.Labels
func (r *GormTaskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(task).Error; err != nil {
			return err
		}
		return replaceLabels(tx, task.ID, task.LabelIDs())
	})
}

// FindByID finds a task by ID
func (r *GormTaskRepository) FindByID(ctx context.Context, id uint64) (*models.Task, error) {
	var task models.Task
	if err := withRelations(r.db.WithContext(ctx)).First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves tasks matching the filter
func (r *GormTaskRepository) List(ctx context.Context, filter TaskFilter) ([]models.Task, error) {
	query := withRelations(r.db.WithContext(ctx))
	if !filter.IsEmpty() {
		query = query.Scopes(BuildTaskFilter(filter))
	}

	tasks := []models.Task{}
	if err := query.Order("tasks.id ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update updates task columns and replaces its label links with task.Labels
func (r *GormTaskRepository) Update(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(task).Error; err != nil {
			return err
		}
		return replaceLabels(tx, task.ID, task.LabelIDs())
	})
}

// Delete deletes a task and its label links
func (r *GormTaskRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.TaskLabel{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Task{}, id).Error
	})
}

func withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("TaskStatus").
		Preload("Labels", func(db *gorm.DB) *gorm.DB {
			return db.Order("labels.id ASC")
		})
}

func replaceLabels(tx *gorm.DB, taskID uint64, labelIDs []uint64) error {
	if err := tx.Where("task_id = ?", taskID).Delete(&models.TaskLabel{}).Error; err != nil {
		return err
	}
	if len(labelIDs) == 0 {
		return nil
	}

	links := make([]models.TaskLabel, len(labelIDs))
	for i, labelID := range labelIDs {
		links[i] = models.TaskLabel{TaskID: taskID, LabelID: labelID}
	}
	return tx.Omit(clause.Associations).Create(&links).Error
}
