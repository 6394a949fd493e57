package billing

import (
	"fmt"
	"time"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the document status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusSent      InvoiceStatus = "sent"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusOverdue   InvoiceStatus = "overdue"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid,
		InvoiceStatusOverdue, InvoiceStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// IsTerminal returns true if the invoice is in a terminal state
func (s InvoiceStatus) IsTerminal() bool {
	return s == InvoiceStatusPaid || s == InvoiceStatusCancelled
}

// PaymentStatus represents how much of an invoice has been paid
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending" // No payment received
	PaymentStatusPartial PaymentStatus = "partial" // 0 < paid < total
	PaymentStatusPaid    PaymentStatus = "paid"    // Fully paid
)

// IsValid checks if the payment status is valid
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPartial, PaymentStatusPaid:
		return true
	}
	return false
}

// CanApplyPayment returns true if further payments can be applied
func (s PaymentStatus) CanApplyPayment() bool {
	return s == PaymentStatusPending || s == PaymentStatusPartial
}

// Invoice represents a bill issued to a client.
// It is the aggregate root for invoice operations and the target of
// payment reconciliation.
type Invoice struct {
	shared.BaseAggregateRoot
	InvoiceNumber string
	QuotationID   *uuid.UUID
	ClientID      uuid.UUID
	Status        InvoiceStatus
	PaymentStatus PaymentStatus
	Items         LineItems
	Subtotal      decimal.Decimal
	TaxRate       decimal.Decimal
	TaxAmount     decimal.Decimal
	Total         decimal.Decimal
	PaidAmount    decimal.Decimal
	DueDate       *time.Time
	Notes         string
	CreatedBy     uuid.UUID
	PaidAt        *time.Time
}

// NewInvoice creates a new draft invoice with totals computed from items
func NewInvoice(invoiceNumber string, clientID uuid.UUID, items LineItems, taxRate decimal.Decimal, dueDate *time.Time, notes string, createdBy uuid.UUID) (*Invoice, error) {
	if invoiceNumber == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("INVALID_ITEMS", "Invoice must have at least one line item")
	}
	if taxRate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_TAX_RATE", "Tax rate cannot be negative")
	}
	if createdBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CREATOR", "Creator ID cannot be empty")
	}

	inv := &Invoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		InvoiceNumber:     invoiceNumber,
		ClientID:          clientID,
		Status:            InvoiceStatusDraft,
		PaymentStatus:     PaymentStatusPending,
		Items:             items,
		TaxRate:           taxRate,
		PaidAmount:        decimal.Zero,
		DueDate:           dueDate,
		Notes:             notes,
		CreatedBy:         createdBy,
	}
	inv.recomputeTotals()

	inv.AddDomainEvent(NewInvoiceCreatedEvent(inv))

	return inv, nil
}

// NewInvoiceFromQuotation creates a draft invoice from an approved quotation,
// carrying over its line items, tax rate and client.
func NewInvoiceFromQuotation(invoiceNumber string, q *Quotation, dueDate *time.Time, createdBy uuid.UUID) (*Invoice, error) {
	if q == nil {
		return nil, shared.NewDomainError("INVALID_QUOTATION", "Quotation cannot be nil")
	}

	inv, err := NewInvoice(invoiceNumber, q.ClientID, q.Items, q.TaxRate, dueDate, q.Notes, createdBy)
	if err != nil {
		return nil, err
	}

	quotationID := q.ID
	inv.QuotationID = &quotationID

	return inv, nil
}

// recomputeTotals derives Subtotal, TaxAmount and Total from the line items
func (i *Invoice) recomputeTotals() {
	i.Subtotal = i.Items.Subtotal().Round(2)
	i.TaxAmount = i.Subtotal.Mul(i.TaxRate).Div(decimal.NewFromInt(100)).Round(2)
	i.Total = i.Subtotal.Add(i.TaxAmount)
}

// UpdateItems replaces the line items and recomputes totals.
// Only draft invoices can be edited.
func (i *Invoice) UpdateItems(items LineItems, taxRate decimal.Decimal) error {
	if i.Status != InvoiceStatusDraft {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot edit invoice in %s status", i.Status))
	}
	if len(items) == 0 {
		return shared.NewDomainError("INVALID_ITEMS", "Invoice must have at least one line item")
	}
	if taxRate.IsNegative() {
		return shared.NewDomainError("INVALID_TAX_RATE", "Tax rate cannot be negative")
	}

	i.Items = items
	i.TaxRate = taxRate
	i.recomputeTotals()
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

// SetNotes updates the invoice notes
func (i *Invoice) SetNotes(notes string) {
	i.Notes = notes
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
}

// Send marks a draft invoice as sent to the client
func (i *Invoice) Send() error {
	if i.Status != InvoiceStatusDraft {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot send invoice in %s status", i.Status))
	}

	i.Status = InvoiceStatusSent
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	i.AddDomainEvent(NewInvoiceSentEvent(i))

	return nil
}

// Cancel cancels an invoice. Invoices with payments applied cannot be cancelled.
func (i *Invoice) Cancel() error {
	if i.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel invoice in %s status", i.Status))
	}
	if i.PaidAmount.IsPositive() {
		return shared.NewDomainError("INVALID_STATE", "Cannot cancel an invoice with payments applied")
	}

	i.Status = InvoiceStatusCancelled
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	i.AddDomainEvent(NewInvoiceCancelledEvent(i))

	return nil
}

// MarkOverdue flags a sent invoice whose due date has passed
func (i *Invoice) MarkOverdue() error {
	if i.Status != InvoiceStatusSent {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot mark invoice overdue in %s status", i.Status))
	}
	if i.DueDate == nil || time.Now().Before(*i.DueDate) {
		return shared.NewDomainError("INVALID_STATE", "Invoice is not past its due date")
	}

	i.Status = InvoiceStatusOverdue
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

// OutstandingAmount returns the amount still owed on the invoice
func (i *Invoice) OutstandingAmount() decimal.Decimal {
	return i.Total.Sub(i.PaidAmount)
}

// ApplyPayment applies a payment to the invoice and rederives the payment
// status. The payment status never regresses: there is no refund path.
// Returns an error if the payment exceeds the outstanding amount or the
// invoice cannot accept payments.
func (i *Invoice) ApplyPayment(amount valueobject.Money) error {
	if i.Status == InvoiceStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Cannot apply payment to a cancelled invoice")
	}
	if !i.PaymentStatus.CanApplyPayment() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot apply payment to invoice in %s payment status", i.PaymentStatus))
	}
	if amount.Amount().LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if amount.Amount().GreaterThan(i.OutstandingAmount()) {
		return shared.NewDomainError("EXCEEDS_OUTSTANDING", fmt.Sprintf("Payment amount %s exceeds outstanding amount %s", amount.StringFixed(2), i.OutstandingAmount().StringFixed(2)))
	}

	i.PaidAmount = i.PaidAmount.Add(amount.Amount())

	if i.OutstandingAmount().IsZero() {
		now := time.Now()
		i.PaymentStatus = PaymentStatusPaid
		i.Status = InvoiceStatusPaid
		i.PaidAt = &now
		i.AddDomainEvent(NewInvoicePaidEvent(i))
	} else {
		i.PaymentStatus = PaymentStatusPartial
		i.AddDomainEvent(NewInvoicePartiallyPaidEvent(i, amount))
	}

	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}
