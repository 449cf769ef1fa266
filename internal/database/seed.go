package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/yukikurage/task-tracker-api/internal/models"
	"gorm.io/gorm"
)

// Hasher produces the stored digest for a plaintext password.
type Hasher interface {
	Hash(plain string) (string, error)
}

// AdminAccount is the bootstrap administrator.
type AdminAccount struct {
	Email    string
	Password string
}

var defaultStatuses = []models.TaskStatus{
	{Name: "Draft", Slug: "draft"},
	{Name: "ToReview", Slug: "to_review"},
	{Name: "ToBeFixed", Slug: "to_be_fixed"},
	{Name: "ToPublish", Slug: "to_publish"},
	{Name: "Published", Slug: "published"},
}

var defaultLabels = []string{"feature", "bug"}

// Seed inserts the reference data and the admin account. Rows that already
// exist are left untouched, so Seed can run on every start.
func Seed(ctx context.Context, db *gorm.DB, hasher Hasher, admin AdminAccount) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		roles := make(map[string]models.Role, 2)
		for _, authority := range []string{models.RoleAdmin, models.RoleUser} {
			var role models.Role
			if err := tx.Where(models.Role{Authority: authority}).FirstOrCreate(&role).Error; err != nil {
				return fmt.Errorf("failed to seed role %s: %w", authority, err)
			}
			roles[authority] = role
		}

		for _, status := range defaultStatuses {
			var existing models.TaskStatus
			err := tx.Where(models.TaskStatus{Slug: status.Slug}).
				Attrs(models.TaskStatus{Name: status.Name}).
				FirstOrCreate(&existing).Error
			if err != nil {
				return fmt.Errorf("failed to seed task status %s: %w", status.Slug, err)
			}
		}

		for _, name := range defaultLabels {
			var label models.Label
			if err := tx.Where(models.Label{Name: name}).FirstOrCreate(&label).Error; err != nil {
				return fmt.Errorf("failed to seed label %s: %w", name, err)
			}
		}

		if admin.Email == "" {
			return nil
		}

		var user models.User
		err := tx.Where("email = ?", admin.Email).First(&user).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to look up admin: %w", err)
		}

		digest, err := hasher.Hash(admin.Password)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}
		user = models.User{
			Email:          admin.Email,
			PasswordDigest: digest,
			Roles:          []models.Role{roles[models.RoleAdmin]},
		}
		if err := tx.Omit("Roles.*").Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create admin: %w", err)
		}

		slog.InfoContext(ctx, "seeded admin account", slog.String("email", admin.Email))
		return nil
	})
}
