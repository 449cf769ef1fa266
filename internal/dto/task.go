package dto

import (
	"time"

	"github.com/yukikurage/task-tracker-api/internal/models"
)

// TaskDTO represents a task in API responses. Field names follow the public
// payload: the task name is "title", its description "content" and its
// status is referenced by slug.
type TaskDTO struct {
	ID           uint64    `json:"id"`
	Index        *int      `json:"index"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	Status       string    `json:"status"`
	AssigneeID   *uint64   `json:"assignee_id"`
	TaskLabelIDs []uint64  `json:"taskLabelIds"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToTaskDTO converts a Task model with preloaded status and labels to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:           task.ID,
		Index:        task.Index,
		Title:        task.Name,
		Content:      task.Description,
		Status:       task.TaskStatus.Slug,
		AssigneeID:   task.AssigneeID,
		TaskLabelIDs: task.LabelIDs(),
		CreatedAt:    task.CreatedAt,
	}
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}
