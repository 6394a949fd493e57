package crm

import (
	"strings"
	"time"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CallType represents the type of a logged interaction
type CallType string

const (
	CallTypeCall    CallType = "call"
	CallTypeEmail   CallType = "email"
	CallTypeMeeting CallType = "meeting"
	CallTypeNote    CallType = "note"
)

// IsValid checks if the call type is a valid CallType
func (t CallType) IsValid() bool {
	switch t {
	case CallTypeCall, CallTypeEmail, CallTypeMeeting, CallTypeNote:
		return true
	}
	return false
}

// CallLog records an interaction with a lead or a client.
// Exactly one of LeadID and ClientID must be set.
type CallLog struct {
	shared.BaseAggregateRoot
	LeadID       *uuid.UUID
	ClientID     *uuid.UUID
	Type         CallType
	Subject      string
	Notes        string
	ScheduledFor *time.Time
	Completed    bool
	CreatedBy    uuid.UUID
}

// NewCallLog creates a new call log attached to either a lead or a client
func NewCallLog(leadID, clientID *uuid.UUID, callType CallType, subject string, createdBy uuid.UUID) (*CallLog, error) {
	subject = strings.TrimSpace(subject)

	if err := validateCallLogTarget(leadID, clientID); err != nil {
		return nil, err
	}
	if !callType.IsValid() {
		return nil, shared.NewDomainError("INVALID_CALL_TYPE", "Call type is not valid")
	}
	if subject == "" {
		return nil, shared.NewDomainError("INVALID_SUBJECT", "Subject cannot be empty")
	}
	if len(subject) > 200 {
		return nil, shared.NewDomainError("INVALID_SUBJECT", "Subject cannot exceed 200 characters")
	}
	if createdBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CREATOR", "Creator ID cannot be empty")
	}

	log := &CallLog{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		LeadID:            leadID,
		ClientID:          clientID,
		Type:              callType,
		Subject:           subject,
		CreatedBy:         createdBy,
	}

	log.AddDomainEvent(NewCallLogCreatedEvent(log))

	return log, nil
}

// Update updates the call log's subject and notes
func (c *CallLog) Update(callType CallType, subject, notes string) error {
	subject = strings.TrimSpace(subject)

	if !callType.IsValid() {
		return shared.NewDomainError("INVALID_CALL_TYPE", "Call type is not valid")
	}
	if subject == "" {
		return shared.NewDomainError("INVALID_SUBJECT", "Subject cannot be empty")
	}
	if len(subject) > 200 {
		return shared.NewDomainError("INVALID_SUBJECT", "Subject cannot exceed 200 characters")
	}

	c.Type = callType
	c.Subject = subject
	c.Notes = notes
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// MarkCompleted marks the interaction as completed
func (c *CallLog) MarkCompleted() error {
	if c.Completed {
		return shared.NewDomainError("ALREADY_COMPLETED", "Call log is already completed")
	}

	c.Completed = true
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// Reschedule sets a new scheduled time for the interaction
func (c *CallLog) Reschedule(scheduledFor time.Time) error {
	if c.Completed {
		return shared.NewDomainError("INVALID_STATE", "Cannot reschedule a completed call log")
	}

	c.ScheduledFor = &scheduledFor
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// validateCallLogTarget enforces that exactly one of leadID and clientID is set
func validateCallLogTarget(leadID, clientID *uuid.UUID) error {
	hasLead := leadID != nil && *leadID != uuid.Nil
	hasClient := clientID != nil && *clientID != uuid.Nil

	if hasLead == hasClient {
		return shared.NewDomainError("INVALID_CALL_LOG_TARGET", "Call log must reference exactly one of lead or client")
	}
	return nil
}
