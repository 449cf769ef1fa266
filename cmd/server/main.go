package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-tracker-api/internal/auth"
	"github.com/yukikurage/task-tracker-api/internal/config"
	"github.com/yukikurage/task-tracker-api/internal/database"
	"github.com/yukikurage/task-tracker-api/internal/handlers"
	"github.com/yukikurage/task-tracker-api/internal/repository"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		fatal("failed to connect to database", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		fatal("failed to run migrations", err)
	}

	hasher := auth.NewPasswordHasher(cfg.BcryptCost)

	if cfg.SeedOnStart {
		admin := database.AdminAccount{Email: cfg.AdminEmail, Password: cfg.AdminPassword}
		if err := database.Seed(context.Background(), db, hasher, admin); err != nil {
			fatal("failed to seed database", err)
		}
	}

	router := handlers.NewRouter(handlers.RouterConfig{
		Store:     repository.NewStore(db),
		Hasher:    hasher,
		Tokens:    auth.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer),
		StaticDir: cfg.StaticDir,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server starting", slog.String("addr", srv.Addr), slog.String("db_driver", cfg.DBDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal("failed to start server", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", slog.Any("error", err))
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}

func fatal(msg string, err error) {
	slog.Error(msg, slog.Any("error", err))
	os.Exit(1)
}
