package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/task-tracker-api/internal/auth"
	"github.com/yukikurage/task-tracker-api/internal/constants"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"gorm.io/gorm"
)

const testSecret = "middleware-secret"

type stubUsers map[string]*models.User

func (s stubUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if user, ok := s[email]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func newRouter(tokens *auth.TokenService, authorizer *auth.Authorizer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger())

	protected := r.Group("/api", RequireAuth(tokens))
	protected.GET("/whoami", func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"subject": principal.Subject, "authorities": principal.Authorities})
	})
	protected.PUT("/users/:id", RequireUserOwnerOrAdmin(authorizer), func(c *gin.Context) {
		current, ok := GetCurrentUser(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"current": current.ID})
	})
	return r
}

func perform(r http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	message, _ := body["error"].(string)
	return message
}

func TestRequireAuth(t *testing.T) {
	tokens := auth.NewTokenService(testSecret, "self")
	r := newRouter(tokens, auth.NewAuthorizer(stubUsers{}))

	t.Run("missing token", func(t *testing.T) {
		w := perform(r, http.MethodGet, "/api/whoami", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Authentication required", errorMessage(t, w))
	})

	t.Run("malformed token", func(t *testing.T) {
		w := perform(r, http.MethodGet, "/api/whoami", "not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid token", errorMessage(t, w))
	})

	t.Run("foreign signature", func(t *testing.T) {
		foreign, err := auth.NewTokenService("other-secret", "self").Issue("jack@google.com", nil)
		require.NoError(t, err)
		w := perform(r, http.MethodGet, "/api/whoami", foreign)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		issued := time.Now().Add(-2 * time.Hour)
		expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "jack@google.com",
				IssuedAt:  jwt.NewNumericDate(issued),
				ExpiresAt: jwt.NewNumericDate(issued.Add(auth.TokenTTL)),
			},
		}).SignedString([]byte(testSecret))
		require.NoError(t, err)

		w := perform(r, http.MethodGet, "/api/whoami", expired)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Token expired", errorMessage(t, w))
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := tokens.Issue("jack@google.com", []string{"USER", "SOMETHING_ELSE"})
		require.NoError(t, err)

		w := perform(r, http.MethodGet, "/api/whoami", token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"subject":"jack@google.com","authorities":["USER","SOMETHING_ELSE"]}`, w.Body.String())
		assert.NotEmpty(t, w.Header().Get(constants.HeaderRequestID))
	})
}

func TestRequireUserOwnerOrAdmin(t *testing.T) {
	tokens := auth.NewTokenService(testSecret, "self")
	users := stubUsers{
		"hexlet@example.com": {ID: 1, Email: "hexlet@example.com"},
		"jack@google.com":    {ID: 2, Email: "jack@google.com"},
	}
	r := newRouter(tokens, auth.NewAuthorizer(users))

	issue := func(subject string, authorities ...string) string {
		token, err := tokens.Issue(subject, authorities)
		require.NoError(t, err)
		return token
	}

	tests := []struct {
		name   string
		token  string
		path   string
		status int
	}{
		{"owner", issue("jack@google.com", models.RoleUser), "/api/users/2", http.StatusOK},
		{"other user", issue("jack@google.com", models.RoleUser), "/api/users/1", http.StatusForbidden},
		{"admin on other user", issue("hexlet@example.com", models.RoleAdmin), "/api/users/2", http.StatusOK},
		{"admin on missing user", issue("hexlet@example.com", models.RoleAdmin), "/api/users/99", http.StatusOK},
		{"unknown subject", issue("ghost@google.com", models.RoleAdmin), "/api/users/2", http.StatusUnauthorized},
		{"bad id", issue("jack@google.com", models.RoleUser), "/api/users/abc", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := perform(r, http.MethodPut, tt.path, tt.token)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}
