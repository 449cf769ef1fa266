package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/task-tracker-api/internal/models"
)

func TestToTaskDTO_UsesPublicVocabulary(t *testing.T) {
	index := 3
	assignee := uint64(2)
	task := models.Task{
		ID:          10,
		Name:        "Write docs",
		Description: "All of them",
		Index:       &index,
		AssigneeID:  &assignee,
		CreatedAt:   time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		TaskStatus:  models.TaskStatus{ID: 1, Slug: "draft"},
		Labels:      []models.Label{{ID: 4}, {ID: 6}},
	}

	body, err := json.Marshal(ToTaskDTO(task))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": 10,
		"index": 3,
		"title": "Write docs",
		"content": "All of them",
		"status": "draft",
		"assignee_id": 2,
		"taskLabelIds": [4, 6],
		"createdAt": "2024-05-01T00:00:00Z"
	}`, string(body))
}

func TestToTaskDTO_EmptyRelations(t *testing.T) {
	body, err := json.Marshal(ToTaskDTO(models.Task{ID: 1, Name: "x"}))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Nil(t, decoded["assignee_id"])
	assert.Equal(t, []any{}, decoded["taskLabelIds"])
}

func TestToUserDTO_OmitsPassword(t *testing.T) {
	body, err := json.Marshal(ToUserDTO(models.User{ID: 1, Email: "jack@google.com", PasswordDigest: "digest"}))
	require.NoError(t, err)
	assert.NotContains(t, string(body), "digest")
	assert.NotContains(t, string(body), "password")
	assert.Contains(t, string(body), `"firstName"`)
}
