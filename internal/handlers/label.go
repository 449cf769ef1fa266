package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
	"github.com/yukikurage/task-tracker-api/internal/patch"
	"github.com/yukikurage/task-tracker-api/internal/services"
)

type LabelHandler struct {
	labelService *services.LabelService
}

func NewLabelHandler(labelService *services.LabelService) *LabelHandler {
	return &LabelHandler{labelService: labelService}
}

func (h *LabelHandler) ListLabels(c *gin.Context) {
	labels, err := h.labelService.ListLabels(c.Request.Context())
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	setTotalCount(c, len(labels))
	c.JSON(http.StatusOK, dto.ToLabelDTOs(labels))
}

func (h *LabelHandler) GetLabel(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	label, err := h.labelService.GetLabel(c.Request.Context(), id)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToLabelDTO(*label))
}

func (h *LabelHandler) CreateLabel(c *gin.Context) {
	type CreateLabelRequest struct {
		Name string `json:"name"`
	}

	var req CreateLabelRequest
	if !bindJSON(c, &req) {
		return
	}

	label, err := h.labelService.CreateLabel(c.Request.Context(), services.CreateLabelInput{Name: req.Name})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToLabelDTO(*label))
}

func (h *LabelHandler) UpdateLabel(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	type UpdateLabelRequest struct {
		Name patch.Field[string] `json:"name"`
	}

	var req UpdateLabelRequest
	if !bindJSON(c, &req) {
		return
	}

	label, err := h.labelService.UpdateLabel(c.Request.Context(), id, services.UpdateLabelInput{Name: req.Name})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToLabelDTO(*label))
}

// DeleteLabel removes a label and answers 200 with an empty body
func (h *LabelHandler) DeleteLabel(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.labelService.DeleteLabel(c.Request.Context(), id); err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.Status(http.StatusOK)
}
