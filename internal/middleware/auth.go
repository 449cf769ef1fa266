package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-tracker-api/internal/auth"
	"github.com/yukikurage/task-tracker-api/internal/constants"
	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
)

const bearerPrefix = "Bearer "

// RequireAuth checks the bearer token and stores the principal in context
func RequireAuth(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
			apierrors.Respond(c, apierrors.Unauthenticated(""))
			return
		}

		principal, err := tokens.Verify(strings.TrimSpace(header[len(bearerPrefix):]))
		if err != nil {
			message := "Invalid token"
			if errors.Is(err, auth.ErrTokenExpired) {
				message = "Token expired"
			}
			apierrors.Respond(c, apierrors.Wrap(apierrors.KindUnauthenticated, message, err))
			return
		}

		c.Set(constants.ContextKeyPrincipal, *principal)
		c.Next()
	}
}

// GetPrincipal retrieves the authenticated principal from context
func GetPrincipal(c *gin.Context) (auth.Principal, bool) {
	value, exists := c.Get(constants.ContextKeyPrincipal)
	if !exists {
		return auth.Principal{}, false
	}
	principal, ok := value.(auth.Principal)
	return principal, ok
}
