package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
	"github.com/yukikurage/task-tracker-api/internal/patch"
	"github.com/yukikurage/task-tracker-api/internal/services"
)

type TaskStatusHandler struct {
	statusService *services.TaskStatusService
}

func NewTaskStatusHandler(statusService *services.TaskStatusService) *TaskStatusHandler {
	return &TaskStatusHandler{statusService: statusService}
}

func (h *TaskStatusHandler) ListTaskStatuses(c *gin.Context) {
	statuses, err := h.statusService.ListTaskStatuses(c.Request.Context())
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	setTotalCount(c, len(statuses))
	c.JSON(http.StatusOK, dto.ToTaskStatusDTOs(statuses))
}

func (h *TaskStatusHandler) GetTaskStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	status, err := h.statusService.GetTaskStatus(c.Request.Context(), id)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskStatusDTO(*status))
}

func (h *TaskStatusHandler) CreateTaskStatus(c *gin.Context) {
	type CreateTaskStatusRequest struct {
		Name string `json:"name"`
		Slug string `json:"slug"`
	}

	var req CreateTaskStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	status, err := h.statusService.CreateTaskStatus(c.Request.Context(), services.CreateTaskStatusInput{
		Name: req.Name,
		Slug: req.Slug,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskStatusDTO(*status))
}

func (h *TaskStatusHandler) UpdateTaskStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	type UpdateTaskStatusRequest struct {
		Name patch.Field[string] `json:"name"`
		Slug patch.Field[string] `json:"slug"`
	}

	var req UpdateTaskStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	status, err := h.statusService.UpdateTaskStatus(c.Request.Context(), id, services.UpdateTaskStatusInput{
		Name: req.Name,
		Slug: req.Slug,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskStatusDTO(*status))
}

func (h *TaskStatusHandler) DeleteTaskStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.statusService.DeleteTaskStatus(c.Request.Context(), id); err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
