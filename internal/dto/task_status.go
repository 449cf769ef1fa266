package dto

import (
	"time"

	"github.com/yukikurage/task-tracker-api/internal/models"
)

// TaskStatusDTO represents a task status in API responses
type TaskStatusDTO struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
}

func ToTaskStatusDTO(status models.TaskStatus) TaskStatusDTO {
	return TaskStatusDTO{
		ID:        status.ID,
		Name:      status.Name,
		Slug:      status.Slug,
		CreatedAt: status.CreatedAt,
	}
}

func ToTaskStatusDTOs(statuses []models.TaskStatus) []TaskStatusDTO {
	dtos := make([]TaskStatusDTO, len(statuses))
	for i, status := range statuses {
		dtos[i] = ToTaskStatusDTO(status)
	}
	return dtos
}
