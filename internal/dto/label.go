package dto

import (
	"time"

	"github.com/yukikurage/task-tracker-api/internal/models"
)

// LabelDTO represents a label in API responses
type LabelDTO struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

func ToLabelDTO(label models.Label) LabelDTO {
	return LabelDTO{
		ID:        label.ID,
		Name:      label.Name,
		CreatedAt: label.CreatedAt,
	}
}

func ToLabelDTOs(labels []models.Label) []LabelDTO {
	dtos := make([]LabelDTO, len(labels))
	for i, label := range labels {
		dtos[i] = ToLabelDTO(label)
	}
	return dtos
}
