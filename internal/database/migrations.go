package database

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AddIndexes adds indexes on the foreign key columns used by restricted
// deletes and by task filtering.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table  string
		name   string
		column string
	}{
		{"tasks", "idx_tasks_task_status_id", "task_status_id"},
		{"tasks", "idx_tasks_assignee_id", "assignee_id"},
		{"user_roles", "idx_user_roles_role_id", "role_id"},
	}

	migrator := db.Migrator()
	for _, idx := range indexes {
		if migrator.HasIndex(idx.table, idx.name) {
			slog.Debug("index already exists, skipping", slog.String("index", idx.name))
			continue
		}

		err := db.Exec("CREATE INDEX ? ON ? (?)",
			clause.Column{Name: idx.name},
			clause.Table{Name: idx.table},
			clause.Column{Name: idx.column},
		).Error
		if err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		slog.Info("created index", slog.String("index", idx.name), slog.String("table", idx.table), slog.String("column", idx.column))
	}

	return nil
}
