package crm

import (
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant for CallLog
const AggregateTypeCallLog = "CallLog"

// CallLog domain event types
const (
	EventTypeCallLogCreated = "CallLogCreated"
)

// CallLogCreatedEvent is published when a call log is created
type CallLogCreatedEvent struct {
	shared.BaseDomainEvent
	Type     CallType   `json:"type"`
	Subject  string     `json:"subject"`
	LeadID   *uuid.UUID `json:"lead_id,omitempty"`
	ClientID *uuid.UUID `json:"client_id,omitempty"`
}

// NewCallLogCreatedEvent creates a new CallLogCreatedEvent
func NewCallLogCreatedEvent(log *CallLog) *CallLogCreatedEvent {
	return &CallLogCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCallLogCreated, AggregateTypeCallLog, log.ID),
		Type:            log.Type,
		Subject:         log.Subject,
		LeadID:          log.LeadID,
		ClientID:        log.ClientID,
	}
}
