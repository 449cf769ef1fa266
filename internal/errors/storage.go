package errors

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Relation names a foreign key that can block a delete.
type Relation int

const (
	RelationNone Relation = iota
	RelationTaskStatus
	RelationLabel
	RelationAssignee
)

const (
	TaskStatusDeleteMessage = "The task_status cannot be deleted because it's applied to a task"
	LabelDeleteMessage      = "The label cannot be deleted because it's applied to a task"
	UserDeleteMessage       = "It's impossible to delete a user because he's assigned to a task"
	ConflictMessage         = "The operation conflicts with existing data"
)

type foreignKeyRule struct {
	relation Relation
	patterns []string
	message  string
}

// Patterns cover the constraint names gorm generates and the FK columns
// quoted in MySQL messages.
var foreignKeyRules = []foreignKeyRule{
	{RelationTaskStatus, []string{"fk_tasks_task_status", "task_status_id"}, TaskStatusDeleteMessage},
	{RelationLabel, []string{"fk_task_labels_label", "`label_id`"}, LabelDeleteMessage},
	{RelationAssignee, []string{"fk_tasks_assignee", "assignee_id"}, UserDeleteMessage},
}

type violation int

const (
	violationNone violation = iota
	violationForeignKey
	violationUnique
)

const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"

	mysqlRowIsReferenced = 1451
	mysqlNoReferencedRow = 1452
	mysqlDuplicateEntry  = 1062
)

// TranslateStorage rewrites storage constraint failures into API errors.
// Foreign key violations matching a known relationship become Restriction
// errors; when the driver reports no constraint detail (SQLite) the hint
// names the relationship the caller was deleting through. Other constraint
// violations become a generic Conflict. Any other error is returned as is.
func TranslateStorage(err error, hint Relation) error {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return err
	}

	kind, detail := classify(err)
	switch kind {
	case violationForeignKey:
		if rule, ok := matchForeignKey(detail); ok {
			return Wrap(KindRestriction, rule.message, err)
		}
		if message, ok := restrictionMessage(hint); ok {
			return Wrap(KindRestriction, message, err)
		}
		return Wrap(KindConflict, ConflictMessage, err)
	case violationUnique:
		return Wrap(KindConflict, ConflictMessage, err)
	default:
		return err
	}
}

func classify(err error) (violation, string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		detail := strings.Join([]string{pgErr.ConstraintName, pgErr.TableName, pgErr.Message, pgErr.Detail}, " ")
		switch pgErr.Code {
		case pgForeignKeyViolation:
			return violationForeignKey, detail
		case pgUniqueViolation:
			return violationUnique, detail
		}
		return violationNone, ""
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlRowIsReferenced, mysqlNoReferencedRow:
			return violationForeignKey, myErr.Message
		case mysqlDuplicateEntry:
			return violationUnique, myErr.Message
		}
		return violationNone, ""
	}

	switch {
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return violationForeignKey, err.Error()
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return violationUnique, err.Error()
	}

	message := err.Error()
	switch {
	case strings.Contains(message, "FOREIGN KEY constraint failed"):
		return violationForeignKey, message
	case strings.Contains(message, "UNIQUE constraint failed"):
		return violationUnique, message
	}
	return violationNone, ""
}

func matchForeignKey(detail string) (foreignKeyRule, bool) {
	lowered := strings.ToLower(detail)
	for _, rule := range foreignKeyRules {
		for _, pattern := range rule.patterns {
			if strings.Contains(lowered, pattern) {
				return rule, true
			}
		}
	}
	return foreignKeyRule{}, false
}

func restrictionMessage(relation Relation) (string, bool) {
	for _, rule := range foreignKeyRules {
		if rule.relation == relation {
			return rule.message, true
		}
	}
	return "", false
}
