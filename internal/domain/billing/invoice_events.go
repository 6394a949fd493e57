package billing

import (
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant for Invoice
const AggregateTypeInvoice = "Invoice"

// Invoice domain event types
const (
	EventTypeInvoiceCreated       = "InvoiceCreated"
	EventTypeInvoiceSent          = "InvoiceSent"
	EventTypeInvoiceCancelled     = "InvoiceCancelled"
	EventTypeInvoicePaid          = "InvoicePaid"
	EventTypeInvoicePartiallyPaid = "InvoicePartiallyPaid"
)

// InvoiceCreatedEvent is published when an invoice is created
type InvoiceCreatedEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber string          `json:"invoice_number"`
	ClientID      uuid.UUID       `json:"client_id"`
	QuotationID   *uuid.UUID      `json:"quotation_id,omitempty"`
	Total         decimal.Decimal `json:"total"`
}

// NewInvoiceCreatedEvent creates a new InvoiceCreatedEvent
func NewInvoiceCreatedEvent(inv *Invoice) *InvoiceCreatedEvent {
	return &InvoiceCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceCreated, AggregateTypeInvoice, inv.ID),
		InvoiceNumber:   inv.InvoiceNumber,
		ClientID:        inv.ClientID,
		QuotationID:     inv.QuotationID,
		Total:           inv.Total,
	}
}

// InvoiceSentEvent is published when an invoice is sent to the client
type InvoiceSentEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber string `json:"invoice_number"`
}

// NewInvoiceSentEvent creates a new InvoiceSentEvent
func NewInvoiceSentEvent(inv *Invoice) *InvoiceSentEvent {
	return &InvoiceSentEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceSent, AggregateTypeInvoice, inv.ID),
		InvoiceNumber:   inv.InvoiceNumber,
	}
}

// InvoiceCancelledEvent is published when an invoice is cancelled
type InvoiceCancelledEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber string `json:"invoice_number"`
}

// NewInvoiceCancelledEvent creates a new InvoiceCancelledEvent
func NewInvoiceCancelledEvent(inv *Invoice) *InvoiceCancelledEvent {
	return &InvoiceCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceCancelled, AggregateTypeInvoice, inv.ID),
		InvoiceNumber:   inv.InvoiceNumber,
	}
}

// InvoicePaidEvent is published when an invoice becomes fully paid
type InvoicePaidEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber string          `json:"invoice_number"`
	ClientID      uuid.UUID       `json:"client_id"`
	Total         decimal.Decimal `json:"total"`
}

// NewInvoicePaidEvent creates a new InvoicePaidEvent
func NewInvoicePaidEvent(inv *Invoice) *InvoicePaidEvent {
	return &InvoicePaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoicePaid, AggregateTypeInvoice, inv.ID),
		InvoiceNumber:   inv.InvoiceNumber,
		ClientID:        inv.ClientID,
		Total:           inv.Total,
	}
}

// InvoicePartiallyPaidEvent is published when a partial payment is applied
type InvoicePartiallyPaidEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber     string          `json:"invoice_number"`
	PaymentAmount     decimal.Decimal `json:"payment_amount"`
	PaidAmount        decimal.Decimal `json:"paid_amount"`
	OutstandingAmount decimal.Decimal `json:"outstanding_amount"`
}

// NewInvoicePartiallyPaidEvent creates a new InvoicePartiallyPaidEvent
func NewInvoicePartiallyPaidEvent(inv *Invoice, amount valueobject.Money) *InvoicePartiallyPaidEvent {
	return &InvoicePartiallyPaidEvent{
		BaseDomainEvent:   shared.NewBaseDomainEvent(EventTypeInvoicePartiallyPaid, AggregateTypeInvoice, inv.ID),
		InvoiceNumber:     inv.InvoiceNumber,
		PaymentAmount:     amount.Amount(),
		PaidAmount:        inv.PaidAmount,
		OutstandingAmount: inv.OutstandingAmount(),
	}
}
