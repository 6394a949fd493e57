package crm

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTicket(t *testing.T) *ServiceTicket {
	t.Helper()
	ticket, err := NewServiceTicket("TKT-2026-0001", uuid.New(), "Printer on fire", "It is on fire", TicketPriorityHigh, uuid.New())
	require.NoError(t, err)
	ticket.ClearDomainEvents()
	return ticket
}

func TestNewServiceTicket(t *testing.T) {
	t.Run("creates open ticket", func(t *testing.T) {
		clientID := uuid.New()
		createdBy := uuid.New()
		ticket, err := NewServiceTicket("TKT-2026-0001", clientID, "Printer on fire", "details", TicketPriorityUrgent, createdBy)

		require.NoError(t, err)
		assert.Equal(t, TicketStatusOpen, ticket.Status)
		assert.Equal(t, clientID, ticket.ClientID)
		assert.Equal(t, createdBy, ticket.CreatedBy)
		assert.Nil(t, ticket.AssignedTo)
		assert.Nil(t, ticket.ResolvedAt)

		events := ticket.GetDomainEvents()
		require.Len(t, events, 1)
		_, ok := events[0].(*ServiceTicketCreatedEvent)
		assert.True(t, ok)
	})

	t.Run("fails without ticket number", func(t *testing.T) {
		_, err := NewServiceTicket("", uuid.New(), "Title", "", TicketPriorityLow, uuid.New())
		assert.Error(t, err)
	})

	t.Run("fails without client", func(t *testing.T) {
		_, err := NewServiceTicket("TKT-1", uuid.Nil, "Title", "", TicketPriorityLow, uuid.New())
		assert.Error(t, err)
	})

	t.Run("fails with invalid priority", func(t *testing.T) {
		_, err := NewServiceTicket("TKT-1", uuid.New(), "Title", "", TicketPriority("critical"), uuid.New())
		assert.Error(t, err)
	})
}

func TestServiceTicketAssign(t *testing.T) {
	t.Run("open ticket moves to assigned", func(t *testing.T) {
		ticket := newTestTicket(t)
		engineerID := uuid.New()

		require.NoError(t, ticket.Assign(engineerID))

		assert.Equal(t, TicketStatusAssigned, ticket.Status)
		assert.True(t, ticket.IsAssignedTo(engineerID))
	})

	t.Run("reassignment keeps in_progress status", func(t *testing.T) {
		ticket := newTestTicket(t)
		require.NoError(t, ticket.Assign(uuid.New()))
		require.NoError(t, ticket.Start())

		other := uuid.New()
		require.NoError(t, ticket.Assign(other))

		assert.Equal(t, TicketStatusInProgress, ticket.Status)
		assert.True(t, ticket.IsAssignedTo(other))
	})

	t.Run("cannot assign closed ticket", func(t *testing.T) {
		ticket := newTestTicket(t)
		require.NoError(t, ticket.Close())

		assert.Error(t, ticket.Assign(uuid.New()))
	})
}

func TestServiceTicketLifecycle(t *testing.T) {
	t.Run("open to in_progress to resolved to closed", func(t *testing.T) {
		ticket := newTestTicket(t)

		require.NoError(t, ticket.Start())
		assert.Equal(t, TicketStatusInProgress, ticket.Status)
		assert.Nil(t, ticket.ResolvedAt)

		require.NoError(t, ticket.Resolve())
		assert.Equal(t, TicketStatusResolved, ticket.Status)
		require.NotNil(t, ticket.ResolvedAt)
		resolvedAt := *ticket.ResolvedAt

		require.NoError(t, ticket.Close())
		assert.Equal(t, TicketStatusClosed, ticket.Status)
		// ResolvedAt keeps its original stamp
		assert.Equal(t, resolvedAt, *ticket.ResolvedAt)
	})

	t.Run("closing an unresolved ticket stamps ResolvedAt", func(t *testing.T) {
		ticket := newTestTicket(t)

		require.NoError(t, ticket.Close())
		assert.NotNil(t, ticket.ResolvedAt)
	})

	t.Run("cannot start a resolved ticket", func(t *testing.T) {
		ticket := newTestTicket(t)
		require.NoError(t, ticket.Resolve())

		assert.Error(t, ticket.Start())
	})

	t.Run("cannot resolve twice", func(t *testing.T) {
		ticket := newTestTicket(t)
		require.NoError(t, ticket.Resolve())

		assert.Error(t, ticket.Resolve())
	})

	t.Run("cannot close twice", func(t *testing.T) {
		ticket := newTestTicket(t)
		require.NoError(t, ticket.Close())

		assert.Error(t, ticket.Close())
	})
}

func TestServiceTicketUpdate(t *testing.T) {
	ticket := newTestTicket(t)

	require.NoError(t, ticket.Update("Printer smoking", "less fire now", TicketPriorityMedium))
	assert.Equal(t, "Printer smoking", ticket.Title)
	assert.Equal(t, TicketPriorityMedium, ticket.Priority)

	require.NoError(t, ticket.Close())
	assert.Error(t, ticket.Update("Title", "", TicketPriorityLow))
}
