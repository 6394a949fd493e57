package billing

import (
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant for Payment
const AggregateTypePayment = "Payment"

// Payment domain event types
const (
	EventTypePaymentRecorded = "PaymentRecorded"
)

// PaymentRecordedEvent is published when a payment is recorded
type PaymentRecordedEvent struct {
	shared.BaseDomainEvent
	InvoiceID uuid.UUID       `json:"invoice_id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    PaymentMethod   `json:"method"`
}

// NewPaymentRecordedEvent creates a new PaymentRecordedEvent
func NewPaymentRecordedEvent(payment *Payment) *PaymentRecordedEvent {
	return &PaymentRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentRecorded, AggregateTypePayment, payment.ID),
		InvoiceID:       payment.InvoiceID,
		Amount:          payment.Amount,
		Method:          payment.Method,
	}
}
