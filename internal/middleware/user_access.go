package middleware

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-tracker-api/internal/auth"
	"github.com/yukikurage/task-tracker-api/internal/constants"
	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
	"github.com/yukikurage/task-tracker-api/internal/models"
)

// RequireUserOwnerOrAdmin lets a request through when the caller is an admin
// or the user named by the :id path parameter. Must run after RequireAuth.
func RequireUserOwnerOrAdmin(authorizer *auth.Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, exists := GetPrincipal(c)
		if !exists {
			apierrors.Respond(c, apierrors.Unauthenticated(""))
			return
		}

		targetID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apierrors.Respond(c, apierrors.BadRequest("Invalid user ID"))
			return
		}

		current, err := authorizer.AuthorizeUserMutation(c.Request.Context(), principal, targetID)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrUnauthenticated):
				apierrors.Respond(c, apierrors.Unauthenticated(""))
			case errors.Is(err, auth.ErrForbidden):
				apierrors.Respond(c, apierrors.Forbidden(""))
			default:
				apierrors.Respond(c, err)
			}
			return
		}

		c.Set(constants.ContextKeyCurrentUser, current)
		c.Next()
	}
}

// GetCurrentUser retrieves the user resolved by RequireUserOwnerOrAdmin
func GetCurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(constants.ContextKeyCurrentUser)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}
