package authz

import (
	"github.com/crm/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// Actor is the authenticated principal performing an operation.
type Actor struct {
	UserID uuid.UUID
	Role   identity.Role
}

// Can reports whether the actor may perform action on resource.
func (a Actor) Can(resource Resource, action Action) bool {
	return Can(a.Role, resource, action)
}

// ScopeFor returns the actor's visibility scope on a resource, or nil
// if the actor sees all rows.
func (a Actor) ScopeFor(resource Resource) *Scope {
	return ScopeFor(a.Role, resource, a.UserID)
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == identity.RoleAdmin
}
