package crm

import (
	"fmt"
	"strings"
	"time"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TicketStatus represents the status of a service ticket
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusAssigned   TicketStatus = "assigned"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

// IsValid checks if the status is a valid TicketStatus
func (s TicketStatus) IsValid() bool {
	switch s {
	case TicketStatusOpen, TicketStatusAssigned, TicketStatusInProgress,
		TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

// String returns the string representation of TicketStatus
func (s TicketStatus) String() string {
	return string(s)
}

// IsTerminal returns true if the ticket is in a terminal state
func (s TicketStatus) IsTerminal() bool {
	return s == TicketStatusClosed
}

// TicketPriority represents the priority of a service ticket
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
	TicketPriorityUrgent TicketPriority = "urgent"
)

// IsValid checks if the priority is a valid TicketPriority
func (p TicketPriority) IsValid() bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh, TicketPriorityUrgent:
		return true
	}
	return false
}

// ServiceTicket represents a support request raised against a client.
// It is the aggregate root for service ticket operations.
type ServiceTicket struct {
	shared.BaseAggregateRoot
	TicketNumber string
	ClientID     uuid.UUID
	Title        string
	Description  string
	Status       TicketStatus
	Priority     TicketPriority
	AssignedTo   *uuid.UUID
	ResolvedAt   *time.Time
	CreatedBy    uuid.UUID
}

// NewServiceTicket creates a new open service ticket
func NewServiceTicket(ticketNumber string, clientID uuid.UUID, title, description string, priority TicketPriority, createdBy uuid.UUID) (*ServiceTicket, error) {
	title = strings.TrimSpace(title)

	if ticketNumber == "" {
		return nil, shared.NewDomainError("INVALID_TICKET_NUMBER", "Ticket number cannot be empty")
	}
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if len(title) > 200 {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot exceed 200 characters")
	}
	if !priority.IsValid() {
		return nil, shared.NewDomainError("INVALID_PRIORITY", "Ticket priority is not valid")
	}
	if createdBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CREATOR", "Creator ID cannot be empty")
	}

	ticket := &ServiceTicket{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		TicketNumber:      ticketNumber,
		ClientID:          clientID,
		Title:             title,
		Description:       description,
		Status:            TicketStatusOpen,
		Priority:          priority,
		CreatedBy:         createdBy,
	}

	ticket.AddDomainEvent(NewServiceTicketCreatedEvent(ticket))

	return ticket, nil
}

// Update updates the ticket's title, description and priority
func (t *ServiceTicket) Update(title, description string, priority TicketPriority) error {
	title = strings.TrimSpace(title)

	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if len(title) > 200 {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot exceed 200 characters")
	}
	if !priority.IsValid() {
		return shared.NewDomainError("INVALID_PRIORITY", "Ticket priority is not valid")
	}
	if t.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Cannot update a closed ticket")
	}

	t.Title = title
	t.Description = description
	t.Priority = priority
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}

// Assign assigns the ticket to an engineer.
// An open ticket moves to the assigned status.
func (t *ServiceTicket) Assign(userID uuid.UUID) error {
	if userID == uuid.Nil {
		return shared.NewDomainError("INVALID_ASSIGNEE", "Assignee ID cannot be empty")
	}
	if t.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Cannot assign a closed ticket")
	}

	t.AssignedTo = &userID
	if t.Status == TicketStatusOpen {
		t.Status = TicketStatusAssigned
	}
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewServiceTicketAssignedEvent(t, userID))

	return nil
}

// Start moves the ticket into in_progress
func (t *ServiceTicket) Start() error {
	if t.Status != TicketStatusOpen && t.Status != TicketStatusAssigned {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot start work on ticket in %s status", t.Status))
	}

	oldStatus := t.Status
	t.Status = TicketStatusInProgress
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewServiceTicketStatusChangedEvent(t, oldStatus, TicketStatusInProgress))

	return nil
}

// Resolve marks the ticket as resolved and stamps ResolvedAt
func (t *ServiceTicket) Resolve() error {
	if t.Status == TicketStatusResolved || t.Status == TicketStatusClosed {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot resolve ticket in %s status", t.Status))
	}

	oldStatus := t.Status
	now := time.Now()
	t.Status = TicketStatusResolved
	t.ResolvedAt = &now
	t.UpdatedAt = now
	t.IncrementVersion()

	t.AddDomainEvent(NewServiceTicketStatusChangedEvent(t, oldStatus, TicketStatusResolved))

	return nil
}

// Close closes the ticket. ResolvedAt is stamped if the ticket was
// never resolved before closing.
func (t *ServiceTicket) Close() error {
	if t.Status == TicketStatusClosed {
		return shared.NewDomainError("INVALID_STATE", "Ticket is already closed")
	}

	oldStatus := t.Status
	now := time.Now()
	t.Status = TicketStatusClosed
	if t.ResolvedAt == nil {
		t.ResolvedAt = &now
	}
	t.UpdatedAt = now
	t.IncrementVersion()

	t.AddDomainEvent(NewServiceTicketStatusChangedEvent(t, oldStatus, TicketStatusClosed))

	return nil
}

// IsAssignedTo returns true if the ticket is assigned to the given user
func (t *ServiceTicket) IsAssignedTo(userID uuid.UUID) bool {
	return t.AssignedTo != nil && *t.AssignedTo == userID
}
