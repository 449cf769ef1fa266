package database

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/yukikurage/task-tracker-api/internal/config"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Supported DB_DRIVER values
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

// Connect opens the database selected by cfg.DBDriver.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: newLogger(cfg),
	}

	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case DriverPostgres:
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			cfg.DBHost,
			cfg.DBPort,
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBName,
			cfg.DBSSLMode,
		)
		dialector = postgres.Open(dsn)
	case DriverMySQL:
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBHost,
			cfg.DBPort,
			cfg.DBName,
		)
		dialector = mysql.Open(dsn)
	case DriverSQLite:
		return OpenSQLite(cfg.SQLitePath, gormConfig)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	slog.Info("database connection established", slog.String("driver", cfg.DBDriver))
	return db, nil
}

// OpenSQLite opens a SQLite database with foreign keys enforced. The pool is
// limited to one connection so that ":memory:" databases are shared by every
// query.
func OpenSQLite(path string, gormConfig *gorm.Config) (*gorm.DB, error) {
	if gormConfig == nil {
		gormConfig = &gorm.Config{Logger: logger.Discard}
	}

	db, err := gorm.Open(sqlite.Open(sqliteDSN(path)), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

func sqliteDSN(path string) string {
	if path == "" || path == ":memory:" {
		return "file::memory:?_foreign_keys=1"
	}
	return "file:" + path + "?_foreign_keys=1"
}

func newLogger(cfg *config.Config) logger.Interface {
	level := logger.Warn
	if cfg.SlogLevel() <= slog.LevelDebug {
		level = logger.Info
	}
	return logger.NewSlogLogger(slog.Default(), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		ParameterizedQueries:      true,
	})
}

// Migrate creates or updates the schema. The task_labels join table is
// registered first so its foreign keys follow models.TaskLabel.
func Migrate(db *gorm.DB) error {
	slog.Info("running database migrations")

	if err := db.SetupJoinTable(&models.Task{}, "Labels", &models.TaskLabel{}); err != nil {
		return fmt.Errorf("failed to set up task_labels join table: %w", err)
	}

	err := db.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.TaskStatus{},
		&models.Label{},
		&models.Task{},
		&models.TaskLabel{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := AddIndexes(db); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}

	slog.Info("database migrations completed")
	return nil
}
