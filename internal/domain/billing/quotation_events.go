package billing

import (
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant for Quotation
const AggregateTypeQuotation = "Quotation"

// Quotation domain event types
const (
	EventTypeQuotationCreated   = "QuotationCreated"
	EventTypeQuotationSubmitted = "QuotationSubmitted"
	EventTypeQuotationApproved  = "QuotationApproved"
	EventTypeQuotationRejected  = "QuotationRejected"
	EventTypeQuotationConverted = "QuotationConverted"
)

// QuotationCreatedEvent is published when a quotation is created
type QuotationCreatedEvent struct {
	shared.BaseDomainEvent
	QuotationNumber string          `json:"quotation_number"`
	ClientID        uuid.UUID       `json:"client_id"`
	Total           decimal.Decimal `json:"total"`
}

// NewQuotationCreatedEvent creates a new QuotationCreatedEvent
func NewQuotationCreatedEvent(q *Quotation) *QuotationCreatedEvent {
	return &QuotationCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeQuotationCreated, AggregateTypeQuotation, q.ID),
		QuotationNumber: q.QuotationNumber,
		ClientID:        q.ClientID,
		Total:           q.Total,
	}
}

// QuotationSubmittedEvent is published when a quotation is submitted for approval
type QuotationSubmittedEvent struct {
	shared.BaseDomainEvent
	QuotationNumber string `json:"quotation_number"`
}

// NewQuotationSubmittedEvent creates a new QuotationSubmittedEvent
func NewQuotationSubmittedEvent(q *Quotation) *QuotationSubmittedEvent {
	return &QuotationSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeQuotationSubmitted, AggregateTypeQuotation, q.ID),
		QuotationNumber: q.QuotationNumber,
	}
}

// QuotationApprovedEvent is published when a quotation is approved
type QuotationApprovedEvent struct {
	shared.BaseDomainEvent
	QuotationNumber string    `json:"quotation_number"`
	ApprovedBy      uuid.UUID `json:"approved_by"`
}

// NewQuotationApprovedEvent creates a new QuotationApprovedEvent
func NewQuotationApprovedEvent(q *Quotation, approvedBy uuid.UUID) *QuotationApprovedEvent {
	return &QuotationApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeQuotationApproved, AggregateTypeQuotation, q.ID),
		QuotationNumber: q.QuotationNumber,
		ApprovedBy:      approvedBy,
	}
}

// QuotationRejectedEvent is published when a quotation is rejected
type QuotationRejectedEvent struct {
	shared.BaseDomainEvent
	QuotationNumber string `json:"quotation_number"`
}

// NewQuotationRejectedEvent creates a new QuotationRejectedEvent
func NewQuotationRejectedEvent(q *Quotation) *QuotationRejectedEvent {
	return &QuotationRejectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeQuotationRejected, AggregateTypeQuotation, q.ID),
		QuotationNumber: q.QuotationNumber,
	}
}

// QuotationConvertedEvent is published when a quotation is converted to an invoice
type QuotationConvertedEvent struct {
	shared.BaseDomainEvent
	QuotationNumber string          `json:"quotation_number"`
	ClientID        uuid.UUID       `json:"client_id"`
	Total           decimal.Decimal `json:"total"`
}

// NewQuotationConvertedEvent creates a new QuotationConvertedEvent
func NewQuotationConvertedEvent(q *Quotation) *QuotationConvertedEvent {
	return &QuotationConvertedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeQuotationConverted, AggregateTypeQuotation, q.ID),
		QuotationNumber: q.QuotationNumber,
		ClientID:        q.ClientID,
		Total:           q.Total,
	}
}
