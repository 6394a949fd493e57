package crm

import (
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant for ServiceTicket
const AggregateTypeServiceTicket = "ServiceTicket"

// ServiceTicket domain event types
const (
	EventTypeServiceTicketCreated       = "ServiceTicketCreated"
	EventTypeServiceTicketAssigned      = "ServiceTicketAssigned"
	EventTypeServiceTicketStatusChanged = "ServiceTicketStatusChanged"
)

// ServiceTicketCreatedEvent is published when a service ticket is created
type ServiceTicketCreatedEvent struct {
	shared.BaseDomainEvent
	TicketNumber string         `json:"ticket_number"`
	ClientID     uuid.UUID      `json:"client_id"`
	Priority     TicketPriority `json:"priority"`
}

// NewServiceTicketCreatedEvent creates a new ServiceTicketCreatedEvent
func NewServiceTicketCreatedEvent(ticket *ServiceTicket) *ServiceTicketCreatedEvent {
	return &ServiceTicketCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeServiceTicketCreated, AggregateTypeServiceTicket, ticket.ID),
		TicketNumber:    ticket.TicketNumber,
		ClientID:        ticket.ClientID,
		Priority:        ticket.Priority,
	}
}

// ServiceTicketAssignedEvent is published when a ticket is assigned to an engineer
type ServiceTicketAssignedEvent struct {
	shared.BaseDomainEvent
	TicketNumber string    `json:"ticket_number"`
	AssignedTo   uuid.UUID `json:"assigned_to"`
}

// NewServiceTicketAssignedEvent creates a new ServiceTicketAssignedEvent
func NewServiceTicketAssignedEvent(ticket *ServiceTicket, assignedTo uuid.UUID) *ServiceTicketAssignedEvent {
	return &ServiceTicketAssignedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeServiceTicketAssigned, AggregateTypeServiceTicket, ticket.ID),
		TicketNumber:    ticket.TicketNumber,
		AssignedTo:      assignedTo,
	}
}

// ServiceTicketStatusChangedEvent is published when a ticket's status changes
type ServiceTicketStatusChangedEvent struct {
	shared.BaseDomainEvent
	TicketNumber string       `json:"ticket_number"`
	OldStatus    TicketStatus `json:"old_status"`
	NewStatus    TicketStatus `json:"new_status"`
}

// NewServiceTicketStatusChangedEvent creates a new ServiceTicketStatusChangedEvent
func NewServiceTicketStatusChangedEvent(ticket *ServiceTicket, oldStatus, newStatus TicketStatus) *ServiceTicketStatusChangedEvent {
	return &ServiceTicketStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeServiceTicketStatusChanged, AggregateTypeServiceTicket, ticket.ID),
		TicketNumber:    ticket.TicketNumber,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}
