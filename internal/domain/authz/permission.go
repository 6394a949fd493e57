package authz

import (
	"github.com/crm/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// Action represents an operation on a resource
type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Resource represents a protected resource type
type Resource string

const (
	ResourceLeads          Resource = "leads"
	ResourceClients        Resource = "clients"
	ResourceQuotations     Resource = "quotations"
	ResourceInvoices       Resource = "invoices"
	ResourcePayments       Resource = "payments"
	ResourceServiceTickets Resource = "service_tickets"
	ResourceCallLogs       Resource = "call_logs"
	ResourceUsers          Resource = "users"
)

// roleSet is a set of roles allowed to perform an action
type roleSet map[identity.Role]bool

func roles(rs ...identity.Role) roleSet {
	set := make(roleSet, len(rs))
	for _, r := range rs {
		set[r] = true
	}
	return set
}

// allAuthenticated grants the action to every known role
func allAuthenticated() roleSet {
	return roles(identity.AllRoles()...)
}

// matrix is the immutable permission matrix, built once at package init.
// Lookup: matrix[resource][action] -> set of roles allowed.
var matrix = map[Resource]map[Action]roleSet{
	ResourceLeads: {
		ActionRead:   roles(identity.RoleAdmin, identity.RoleSalesManager, identity.RoleSalesExecutive),
		ActionCreate: roles(identity.RoleAdmin, identity.RoleSalesManager, identity.RoleSalesExecutive),
		ActionUpdate: roles(identity.RoleAdmin, identity.RoleSalesManager, identity.RoleSalesExecutive),
		ActionDelete: roles(identity.RoleAdmin, identity.RoleSalesManager),
	},
	ResourceClients: {
		ActionRead:   roles(identity.RoleAdmin, identity.RoleSalesManager, identity.RoleSalesExecutive, identity.RoleAccountant),
		ActionCreate: roles(identity.RoleAdmin, identity.RoleSalesManager),
		ActionUpdate: roles(identity.RoleAdmin, identity.RoleSalesManager),
		ActionDelete: roles(identity.RoleAdmin),
	},
	ResourceQuotations: {
		ActionRead:   allAuthenticated(),
		ActionCreate: roles(identity.RoleAdmin, identity.RoleSalesManager, identity.RoleSalesExecutive),
		ActionUpdate: roles(identity.RoleAdmin, identity.RoleSalesManager, identity.RoleSalesExecutive),
		ActionDelete: roles(identity.RoleAdmin, identity.RoleSalesManager),
	},
	ResourceInvoices: {
		ActionRead:   allAuthenticated(),
		ActionCreate: roles(identity.RoleAdmin, identity.RoleAccountant),
		ActionUpdate: roles(identity.RoleAdmin, identity.RoleAccountant),
		ActionDelete: roles(identity.RoleAdmin),
	},
	ResourcePayments: {
		ActionRead:   allAuthenticated(),
		ActionCreate: roles(identity.RoleAdmin, identity.RoleAccountant),
		ActionDelete: roles(identity.RoleAdmin),
		// Payments are immutable once recorded; there is no update action.
	},
	ResourceServiceTickets: {
		ActionRead:   allAuthenticated(),
		ActionCreate: allAuthenticated(),
		ActionUpdate: allAuthenticated(),
		ActionDelete: roles(identity.RoleAdmin),
	},
	ResourceCallLogs: {
		ActionRead:   allAuthenticated(),
		ActionCreate: roles(identity.RoleAdmin, identity.RoleSalesManager, identity.RoleSalesExecutive),
		ActionUpdate: roles(identity.RoleAdmin, identity.RoleSalesManager, identity.RoleSalesExecutive),
		ActionDelete: roles(identity.RoleAdmin, identity.RoleSalesManager),
	},
	ResourceUsers: {
		// Every authenticated user can read the user directory (for dropdowns)
		ActionRead:   allAuthenticated(),
		ActionCreate: roles(identity.RoleAdmin),
		ActionUpdate: roles(identity.RoleAdmin),
		ActionDelete: roles(identity.RoleAdmin),
	},
}

// Can reports whether the given role may perform action on resource.
// Unknown roles, resources, and actions are denied.
func Can(role identity.Role, resource Resource, action Action) bool {
	actions, ok := matrix[resource]
	if !ok {
		return false
	}
	allowed, ok := actions[action]
	if !ok {
		return false
	}
	return allowed[role]
}

// Scope is a mandatory row-level filter that the store must apply when
// listing or reading a resource on behalf of a role.
type Scope struct {
	Field string
	Value interface{}
}

// ScopeFor returns the visibility scope for a role on a resource, or nil
// if the role sees all rows.
func ScopeFor(role identity.Role, resource Resource, userID uuid.UUID) *Scope {
	switch {
	case role == identity.RoleSalesExecutive && resource == ResourceLeads:
		return &Scope{Field: "assigned_to", Value: userID}
	case role == identity.RoleEngineer && resource == ResourceServiceTickets:
		return &Scope{Field: "assigned_to", Value: userID}
	case role == identity.RoleAccountant && resource == ResourceQuotations:
		return &Scope{Field: "status", Value: "approved"}
	}
	return nil
}
