package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-tracker-api/internal/auth"
	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
	"github.com/yukikurage/task-tracker-api/internal/middleware"
	"github.com/yukikurage/task-tracker-api/internal/repository"
	"github.com/yukikurage/task-tracker-api/internal/services"
)

// RouterConfig holds what the HTTP layer needs to build its services.
type RouterConfig struct {
	Store     repository.Store
	Hasher    *auth.PasswordHasher
	Tokens    *auth.TokenService
	StaticDir string
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery())

	authorizer := auth.NewAuthorizer(cfg.Store.Users())

	authHandler := NewAuthHandler(services.NewAuthService(cfg.Store.Users(), cfg.Hasher, cfg.Tokens))
	userHandler := NewUserHandler(services.NewUserService(cfg.Store, cfg.Hasher))
	statusHandler := NewTaskStatusHandler(services.NewTaskStatusService(cfg.Store))
	labelHandler := NewLabelHandler(services.NewLabelService(cfg.Store))
	taskHandler := NewTaskHandler(services.NewTaskService(cfg.Store))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Task Tracker API is running",
		})
	})

	registerStatic(r, cfg.StaticDir)

	api := r.Group("/api")
	{
		// Public
		api.POST("/login", authHandler.Login)

		protected := api.Group("")
		protected.Use(middleware.RequireAuth(cfg.Tokens))

		users := protected.Group("/users")
		{
			users.GET("", userHandler.ListUsers)
			users.GET("/:id", userHandler.GetUser)
			users.POST("", userHandler.CreateUser)
			users.PUT("/:id", middleware.RequireUserOwnerOrAdmin(authorizer), userHandler.UpdateUser)
			users.DELETE("/:id", middleware.RequireUserOwnerOrAdmin(authorizer), userHandler.DeleteUser)
		}

		statuses := protected.Group("/task_statuses")
		{
			statuses.GET("", statusHandler.ListTaskStatuses)
			statuses.GET("/:id", statusHandler.GetTaskStatus)
			statuses.POST("", statusHandler.CreateTaskStatus)
			statuses.PUT("/:id", statusHandler.UpdateTaskStatus)
			statuses.DELETE("/:id", statusHandler.DeleteTaskStatus)
		}

		labels := protected.Group("/labels")
		{
			labels.GET("", labelHandler.ListLabels)
			labels.GET("/:id", labelHandler.GetLabel)
			labels.POST("", labelHandler.CreateLabel)
			labels.PUT("/:id", labelHandler.UpdateLabel)
			labels.DELETE("/:id", labelHandler.DeleteLabel)
		}

		tasks := protected.Group("/tasks")
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.POST("", taskHandler.CreateTask)
			tasks.PUT("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		apierrors.Respond(c, apierrors.NotFoundf("Route %s not found", c.Request.URL.Path))
	})

	return r
}

// registerStatic serves the bundled frontend when dir exists.
func registerStatic(r *gin.Engine, dir string) {
	if dir == "" {
		return
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return
	}

	index := filepath.Join(dir, "index.html")
	r.StaticFile("/", index)
	r.StaticFile("/index.html", index)
	r.StaticFile("/favicon.ico", filepath.Join(dir, "favicon.ico"))
	r.Static("/assets", filepath.Join(dir, "assets"))
}
