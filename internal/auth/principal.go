package auth

import (
	"slices"

	"github.com/yukikurage/task-tracker-api/internal/models"
)

// Principal is the authenticated identity attached to a request. It carries
// identity and the authorities declared on the token, not a live role
// snapshot.
type Principal struct {
	Subject     string
	Authorities []string
}

// HasAuthority reports whether the principal declares the given authority.
func (p Principal) HasAuthority(authority string) bool {
	return slices.Contains(p.Authorities, authority)
}

// IsAdmin reports whether the principal declares the ADMIN authority.
func (p Principal) IsAdmin() bool {
	return p.HasAuthority(models.RoleAdmin)
}
