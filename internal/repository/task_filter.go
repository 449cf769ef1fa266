package repository

import (
	"strings"

	"github.com/yukikurage/task-tracker-api/internal/models"
	"gorm.io/gorm"
)

// TaskFilter holds the optional criteria for listing tasks. A nil field
// places no constraint on the result.
type TaskFilter struct {
	TitleCont  *string
	AssigneeID *uint64
	StatusSlug *string
	LabelID    *uint64
}

// IsEmpty reports whether no criterion is set
func (f TaskFilter) IsEmpty() bool {
	return f.TitleCont == nil && f.AssigneeID == nil && f.StatusSlug == nil && f.LabelID == nil
}

const likeEscape = '!'

// BuildTaskFilter combines the criteria of f into one scope. Every criterion
// is a conjunct; absent criteria add nothing.
func BuildTaskFilter(f TaskFilter) func(*gorm.DB) *gorm.DB {
	criteria := []func(*gorm.DB) *gorm.DB{
		titleContains(f.TitleCont),
		assignedTo(f.AssigneeID),
		inStatus(f.StatusSlug),
		withLabel(f.LabelID),
	}
	return func(db *gorm.DB) *gorm.DB {
		for _, criterion := range criteria {
			db = criterion(db)
		}
		return db
	}
}

func identity(db *gorm.DB) *gorm.DB {
	return db
}

func titleContains(substr *string) func(*gorm.DB) *gorm.DB {
	if substr == nil {
		return identity
	}
	pattern := "%" + escapeLike(*substr) + "%"
	return func(db *gorm.DB) *gorm.DB {
		// both sides are folded by the same database function
		return db.Where("LOWER(tasks.name) LIKE LOWER(?) ESCAPE '!'", pattern)
	}
}

func assignedTo(userID *uint64) func(*gorm.DB) *gorm.DB {
	if userID == nil {
		return identity
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tasks.assignee_id = ?", *userID)
	}
}

func inStatus(slug *string) func(*gorm.DB) *gorm.DB {
	if slug == nil {
		return identity
	}
	return func(db *gorm.DB) *gorm.DB {
		statusSubQuery := db.Session(&gorm.Session{NewDB: true}).
			Model(&models.TaskStatus{}).
			Select("id").
			Where("slug = ?", *slug)
		return db.Where("tasks.task_status_id IN (?)", statusSubQuery)
	}
}

func withLabel(labelID *uint64) func(*gorm.DB) *gorm.DB {
	if labelID == nil {
		return identity
	}
	return func(db *gorm.DB) *gorm.DB {
		labelSubQuery := db.Session(&gorm.Session{NewDB: true}).
			Model(&models.TaskLabel{}).
			Select("1").
			Where("task_labels.task_id = tasks.id").
			Where("task_labels.label_id = ?", *labelID)
		return db.Where("EXISTS (?)", labelSubQuery)
	}
}

// escapeLike makes s match literally inside a LIKE pattern.
func escapeLike(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '%', '_', likeEscape:
			b.WriteRune(likeEscape)
		}
		b.WriteRune(r)
	}
	return b.String()
}
