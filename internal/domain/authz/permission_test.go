package authz

import (
	"testing"

	"github.com/crm/backend/internal/domain/identity"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCan(t *testing.T) {
	tests := []struct {
		name     string
		role     identity.Role
		resource Resource
		action   Action
		want     bool
	}{
		{"admin can delete leads", identity.RoleAdmin, ResourceLeads, ActionDelete, true},
		{"sales manager can delete leads", identity.RoleSalesManager, ResourceLeads, ActionDelete, true},
		{"sales executive cannot delete leads", identity.RoleSalesExecutive, ResourceLeads, ActionDelete, false},
		{"sales executive can create leads", identity.RoleSalesExecutive, ResourceLeads, ActionCreate, true},
		{"accountant cannot read leads", identity.RoleAccountant, ResourceLeads, ActionRead, false},
		{"engineer cannot read leads", identity.RoleEngineer, ResourceLeads, ActionRead, false},

		{"accountant can read clients", identity.RoleAccountant, ResourceClients, ActionRead, true},
		{"sales executive cannot create clients", identity.RoleSalesExecutive, ResourceClients, ActionCreate, false},
		{"only admin deletes clients", identity.RoleSalesManager, ResourceClients, ActionDelete, false},
		{"admin deletes clients", identity.RoleAdmin, ResourceClients, ActionDelete, true},

		{"client role can read quotations", identity.RoleClient, ResourceQuotations, ActionRead, true},
		{"accountant cannot create quotations", identity.RoleAccountant, ResourceQuotations, ActionCreate, false},
		{"sales executive can update quotations", identity.RoleSalesExecutive, ResourceQuotations, ActionUpdate, true},

		{"accountant can create invoices", identity.RoleAccountant, ResourceInvoices, ActionCreate, true},
		{"sales manager cannot create invoices", identity.RoleSalesManager, ResourceInvoices, ActionCreate, false},
		{"engineer can read invoices", identity.RoleEngineer, ResourceInvoices, ActionRead, true},

		{"accountant can record payments", identity.RoleAccountant, ResourcePayments, ActionCreate, true},
		{"payments have no update action", identity.RoleAdmin, ResourcePayments, ActionUpdate, false},
		{"only admin deletes payments", identity.RoleAccountant, ResourcePayments, ActionDelete, false},

		{"engineer can update service tickets", identity.RoleEngineer, ResourceServiceTickets, ActionUpdate, true},
		{"client can create service tickets", identity.RoleClient, ResourceServiceTickets, ActionCreate, true},
		{"engineer cannot delete service tickets", identity.RoleEngineer, ResourceServiceTickets, ActionDelete, false},

		{"engineer cannot create call logs", identity.RoleEngineer, ResourceCallLogs, ActionCreate, false},
		{"sales executive can create call logs", identity.RoleSalesExecutive, ResourceCallLogs, ActionCreate, true},

		{"everyone reads users", identity.RoleClient, ResourceUsers, ActionRead, true},
		{"only admin creates users", identity.RoleSalesManager, ResourceUsers, ActionCreate, false},
		{"admin creates users", identity.RoleAdmin, ResourceUsers, ActionCreate, true},

		{"unknown role denied", identity.Role("superuser"), ResourceLeads, ActionRead, false},
		{"unknown resource denied", identity.RoleAdmin, Resource("reports"), ActionRead, false},
		{"unknown action denied", identity.RoleAdmin, ResourceLeads, Action("export"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Can(tt.role, tt.resource, tt.action))
		})
	}
}

func TestScopeFor(t *testing.T) {
	userID := uuid.New()

	t.Run("sales executive sees only assigned leads", func(t *testing.T) {
		scope := ScopeFor(identity.RoleSalesExecutive, ResourceLeads, userID)
		require.NotNil(t, scope)
		assert.Equal(t, "assigned_to", scope.Field)
		assert.Equal(t, userID, scope.Value)
	})

	t.Run("engineer sees only assigned tickets", func(t *testing.T) {
		scope := ScopeFor(identity.RoleEngineer, ResourceServiceTickets, userID)
		require.NotNil(t, scope)
		assert.Equal(t, "assigned_to", scope.Field)
		assert.Equal(t, userID, scope.Value)
	})

	t.Run("accountant sees only approved quotations", func(t *testing.T) {
		scope := ScopeFor(identity.RoleAccountant, ResourceQuotations, userID)
		require.NotNil(t, scope)
		assert.Equal(t, "status", scope.Field)
		assert.Equal(t, "approved", scope.Value)
	})

	t.Run("managers are unscoped", func(t *testing.T) {
		assert.Nil(t, ScopeFor(identity.RoleSalesManager, ResourceLeads, userID))
		assert.Nil(t, ScopeFor(identity.RoleAdmin, ResourceServiceTickets, userID))
		assert.Nil(t, ScopeFor(identity.RoleSalesExecutive, ResourceQuotations, userID))
	})
}
