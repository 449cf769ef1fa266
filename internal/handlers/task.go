package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
	"github.com/yukikurage/task-tracker-api/internal/patch"
	"github.com/yukikurage/task-tracker-api/internal/repository"
	"github.com/yukikurage/task-tracker-api/internal/services"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// ListTasks returns the tasks matching the query parameters
// titleCont, assigneeId, status and labelId. Every parameter is optional.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	filter, err := taskFilterFromQuery(c)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	tasks, err := h.taskService.ListTasks(c.Request.Context(), filter)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	setTotalCount(c, len(tasks))
	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// GetTask returns a specific task by ID
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), id)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	type CreateTaskRequest struct {
		Index        *int     `json:"index"`
		AssigneeID   *uint64  `json:"assignee_id"`
		Title        string   `json:"title"`
		Content      string   `json:"content"`
		Status       string   `json:"status"`
		TaskLabelIDs []uint64 `json:"taskLabelIds"`
	}

	var req CreateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), services.CreateTaskInput{
		Index:      req.Index,
		Title:      req.Title,
		Content:    req.Content,
		Status:     req.Status,
		AssigneeID: req.AssigneeID,
		LabelIDs:   req.TaskLabelIDs,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask updates the fields present in the body
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	type UpdateTaskRequest struct {
		Index        patch.Field[int]      `json:"index"`
		AssigneeID   patch.Field[uint64]   `json:"assignee_id"`
		Title        patch.Field[string]   `json:"title"`
		Content      patch.Field[string]   `json:"content"`
		Status       patch.Field[string]   `json:"status"`
		TaskLabelIDs patch.Field[[]uint64] `json:"taskLabelIds"`
	}

	var req UpdateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), id, services.UpdateTaskInput{
		Index:      req.Index,
		Title:      req.Title,
		Content:    req.Content,
		Status:     req.Status,
		AssigneeID: req.AssigneeID,
		LabelIDs:   req.TaskLabelIDs,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask deletes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), id); err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func taskFilterFromQuery(c *gin.Context) (repository.TaskFilter, error) {
	var filter repository.TaskFilter

	if title := c.Query("titleCont"); title != "" {
		filter.TitleCont = &title
	}
	if slug := c.Query("status"); slug != "" {
		filter.StatusSlug = &slug
	}

	var err error
	if filter.AssigneeID, err = optionalID(c, "assigneeId"); err != nil {
		return filter, err
	}
	if filter.LabelID, err = optionalID(c, "labelId"); err != nil {
		return filter, err
	}

	return filter, nil
}

func optionalID(c *gin.Context, key string) (*uint64, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, apierrors.Validation([]apierrors.Violation{{Field: key, Message: "must be a number"}})
	}
	return &id, nil
}
