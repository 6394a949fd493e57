package crm

import (
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant for Lead
const AggregateTypeLead = "Lead"

// Lead domain event types
const (
	EventTypeLeadCreated       = "LeadCreated"
	EventTypeLeadAssigned      = "LeadAssigned"
	EventTypeLeadStatusChanged = "LeadStatusChanged"
)

// LeadCreatedEvent is published when a lead is created
type LeadCreatedEvent struct {
	shared.BaseDomainEvent
	CompanyName string     `json:"company_name"`
	Source      LeadSource `json:"source"`
}

// NewLeadCreatedEvent creates a new LeadCreatedEvent
func NewLeadCreatedEvent(lead *Lead) *LeadCreatedEvent {
	return &LeadCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLeadCreated, AggregateTypeLead, lead.ID),
		CompanyName:     lead.CompanyName,
		Source:          lead.Source,
	}
}

// LeadAssignedEvent is published when a lead is assigned to a user
type LeadAssignedEvent struct {
	shared.BaseDomainEvent
	CompanyName string    `json:"company_name"`
	AssignedTo  uuid.UUID `json:"assigned_to"`
}

// NewLeadAssignedEvent creates a new LeadAssignedEvent
func NewLeadAssignedEvent(lead *Lead, assignedTo uuid.UUID) *LeadAssignedEvent {
	return &LeadAssignedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLeadAssigned, AggregateTypeLead, lead.ID),
		CompanyName:     lead.CompanyName,
		AssignedTo:      assignedTo,
	}
}

// LeadStatusChangedEvent is published when a lead's status changes
type LeadStatusChangedEvent struct {
	shared.BaseDomainEvent
	CompanyName string     `json:"company_name"`
	OldStatus   LeadStatus `json:"old_status"`
	NewStatus   LeadStatus `json:"new_status"`
}

// NewLeadStatusChangedEvent creates a new LeadStatusChangedEvent
func NewLeadStatusChangedEvent(lead *Lead, oldStatus, newStatus LeadStatus) *LeadStatusChangedEvent {
	return &LeadStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLeadStatusChanged, AggregateTypeLead, lead.ID),
		CompanyName:     lead.CompanyName,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}
