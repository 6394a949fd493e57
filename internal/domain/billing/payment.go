package billing

import (
	"time"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod represents how a payment was made
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodCheck        PaymentMethod = "check"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCreditCard   PaymentMethod = "credit_card"
	PaymentMethodOnline       PaymentMethod = "online"
)

// IsValid checks if the payment method is valid
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCheck, PaymentMethodBankTransfer,
		PaymentMethodCreditCard, PaymentMethodOnline:
		return true
	}
	return false
}

// Payment represents a single payment received against an invoice.
// Payments are immutable once recorded; recording a payment and updating
// its invoice happen in one transaction.
type Payment struct {
	shared.BaseAggregateRoot
	InvoiceID     uuid.UUID
	Amount        decimal.Decimal
	Method        PaymentMethod
	TransactionID string
	Notes         string
	RecordedBy    uuid.UUID
	PaymentDate   time.Time
}

// NewPayment creates a new payment record
func NewPayment(invoiceID uuid.UUID, amount decimal.Decimal, method PaymentMethod, transactionID, notes string, recordedBy uuid.UUID, paymentDate time.Time) (*Payment, error) {
	if invoiceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INVOICE", "Invoice ID cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method is not valid")
	}
	if recordedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RECORDER", "Recorder ID cannot be empty")
	}
	if paymentDate.IsZero() {
		paymentDate = time.Now()
	}

	payment := &Payment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		InvoiceID:         invoiceID,
		Amount:            amount,
		Method:            method,
		TransactionID:     transactionID,
		Notes:             notes,
		RecordedBy:        recordedBy,
		PaymentDate:       paymentDate,
	}

	payment.AddDomainEvent(NewPaymentRecordedEvent(payment))

	return payment, nil
}
