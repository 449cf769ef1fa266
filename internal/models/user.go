package models

import "time"

type User struct {
	ID             uint64    `gorm:"primarykey" json:"id"`
	Email          string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordDigest string    `gorm:"column:password;type:varchar(255);not null" json:"-"`
	FirstName      string    `gorm:"type:varchar(255)" json:"first_name"`
	LastName       string    `gorm:"type:varchar(255)" json:"last_name"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Relations
	Roles []Role `gorm:"many2many:user_roles" json:"-"`
}

// Authorities returns the authority names of the preloaded roles.
func (u User) Authorities() []string {
	authorities := make([]string, 0, len(u.Roles))
	for _, role := range u.Roles {
		authorities = append(authorities, role.Authority)
	}
	return authorities
}
