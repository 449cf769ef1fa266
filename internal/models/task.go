package models

import "time"

type Task struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Index        *int      `gorm:"column:task_index" json:"index"`
	Description  string    `gorm:"type:text" json:"description"`
	TaskStatusID uint64    `gorm:"not null" json:"task_status_id"`
	AssigneeID   *uint64   `json:"assignee_id"`
	CreatedAt    time.Time `json:"created_at"`

	// Relations. Deletes of referenced rows are restricted while a task
	// points at them.
	TaskStatus TaskStatus `gorm:"foreignKey:TaskStatusID;constraint:OnDelete:RESTRICT" json:"task_status"`
	Assignee   *User      `gorm:"foreignKey:AssigneeID;constraint:OnDelete:RESTRICT" json:"assignee,omitempty"`
	Labels     []Label    `gorm:"many2many:task_labels" json:"labels,omitempty"`
}

// LabelIDs returns the ids of the preloaded labels.
func (t Task) LabelIDs() []uint64 {
	ids := make([]uint64, 0, len(t.Labels))
	for _, label := range t.Labels {
		ids = append(ids, label.ID)
	}
	return ids
}
