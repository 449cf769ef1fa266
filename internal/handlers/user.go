package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
	"github.com/yukikurage/task-tracker-api/internal/middleware"
	"github.com/yukikurage/task-tracker-api/internal/patch"
	"github.com/yukikurage/task-tracker-api/internal/services"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// ListUsers returns all users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	setTotalCount(c, len(users))
	c.JSON(http.StatusOK, dto.ToUserDTOs(users))
}

// GetUser returns a user by ID
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// CreateUser registers a user
func (h *UserHandler) CreateUser(c *gin.Context) {
	type CreateUserRequest struct {
		Email     string `json:"email"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Password  string `json:"password"`
	}

	var req CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), services.CreateUserInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// UpdateUser changes the fields present in the body.
// RequireUserOwnerOrAdmin resolves the acting user.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	type UpdateUserRequest struct {
		Email     patch.Field[string] `json:"email"`
		FirstName patch.Field[string] `json:"firstName"`
		LastName  patch.Field[string] `json:"lastName"`
		Password  patch.Field[string] `json:"password"`
	}

	var req UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	actor, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Respond(c, apierrors.Unauthenticated(""))
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), actor, id, services.UpdateUserInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// DeleteUser removes a user.
// RequireUserOwnerOrAdmin resolves the acting user.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	actor, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Respond(c, apierrors.Unauthenticated(""))
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), actor, id); err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
