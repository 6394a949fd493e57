package billing

import (
	"fmt"
	"time"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuotationStatus represents the status of a quotation
type QuotationStatus string

const (
	QuotationStatusDraft           QuotationStatus = "draft"
	QuotationStatusPendingApproval QuotationStatus = "pending_approval"
	QuotationStatusApproved        QuotationStatus = "approved"
	QuotationStatusRejected        QuotationStatus = "rejected"
	QuotationStatusConverted       QuotationStatus = "converted"
)

// IsValid checks if the status is a valid QuotationStatus
func (s QuotationStatus) IsValid() bool {
	switch s {
	case QuotationStatusDraft, QuotationStatusPendingApproval, QuotationStatusApproved,
		QuotationStatusRejected, QuotationStatusConverted:
		return true
	}
	return false
}

// String returns the string representation of QuotationStatus
func (s QuotationStatus) String() string {
	return string(s)
}

// IsTerminal returns true if the quotation is in a terminal state
func (s QuotationStatus) IsTerminal() bool {
	return s == QuotationStatusRejected || s == QuotationStatusConverted
}

// Quotation represents a priced offer sent to a client.
// It is the aggregate root for quotation operations.
type Quotation struct {
	shared.BaseAggregateRoot
	QuotationNumber string
	ClientID        uuid.UUID
	LeadID          *uuid.UUID
	Status          QuotationStatus
	Items           LineItems
	Subtotal        decimal.Decimal
	TaxRate         decimal.Decimal // Percentage, e.g. 8.5
	TaxAmount       decimal.Decimal
	Total           decimal.Decimal
	ValidUntil      *time.Time
	Notes           string
	CreatedBy       uuid.UUID
	ApprovedBy      *uuid.UUID
}

// NewQuotation creates a new draft quotation with totals computed from items
func NewQuotation(quotationNumber string, clientID uuid.UUID, leadID *uuid.UUID, items LineItems, taxRate decimal.Decimal, validUntil *time.Time, notes string, createdBy uuid.UUID) (*Quotation, error) {
	if quotationNumber == "" {
		return nil, shared.NewDomainError("INVALID_QUOTATION_NUMBER", "Quotation number cannot be empty")
	}
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("INVALID_ITEMS", "Quotation must have at least one line item")
	}
	if taxRate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_TAX_RATE", "Tax rate cannot be negative")
	}
	if createdBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CREATOR", "Creator ID cannot be empty")
	}

	q := &Quotation{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		QuotationNumber:   quotationNumber,
		ClientID:          clientID,
		LeadID:            leadID,
		Status:            QuotationStatusDraft,
		Items:             items,
		TaxRate:           taxRate,
		ValidUntil:        validUntil,
		Notes:             notes,
		CreatedBy:         createdBy,
	}
	q.recomputeTotals()

	q.AddDomainEvent(NewQuotationCreatedEvent(q))

	return q, nil
}

// recomputeTotals derives Subtotal, TaxAmount and Total from the line items.
// TaxAmount = Subtotal * TaxRate / 100, rounded to 2 decimal places.
func (q *Quotation) recomputeTotals() {
	q.Subtotal = q.Items.Subtotal().Round(2)
	q.TaxAmount = q.Subtotal.Mul(q.TaxRate).Div(decimal.NewFromInt(100)).Round(2)
	q.Total = q.Subtotal.Add(q.TaxAmount)
}

// UpdateItems replaces the line items and recomputes totals.
// Only draft quotations can be edited.
func (q *Quotation) UpdateItems(items LineItems, taxRate decimal.Decimal) error {
	if q.Status != QuotationStatusDraft {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot edit quotation in %s status", q.Status))
	}
	if len(items) == 0 {
		return shared.NewDomainError("INVALID_ITEMS", "Quotation must have at least one line item")
	}
	if taxRate.IsNegative() {
		return shared.NewDomainError("INVALID_TAX_RATE", "Tax rate cannot be negative")
	}

	q.Items = items
	q.TaxRate = taxRate
	q.recomputeTotals()
	q.UpdatedAt = time.Now()
	q.IncrementVersion()

	return nil
}

// SetNotes updates the quotation notes
func (q *Quotation) SetNotes(notes string) {
	q.Notes = notes
	q.UpdatedAt = time.Now()
	q.IncrementVersion()
}

// Submit moves a draft quotation to pending approval
func (q *Quotation) Submit() error {
	if q.Status != QuotationStatusDraft {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot submit quotation in %s status", q.Status))
	}

	q.Status = QuotationStatusPendingApproval
	q.UpdatedAt = time.Now()
	q.IncrementVersion()

	q.AddDomainEvent(NewQuotationSubmittedEvent(q))

	return nil
}

// Approve approves a pending quotation and records the approver
func (q *Quotation) Approve(approvedBy uuid.UUID) error {
	if q.Status != QuotationStatusPendingApproval {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot approve quotation in %s status", q.Status))
	}
	if approvedBy == uuid.Nil {
		return shared.NewDomainError("INVALID_APPROVER", "Approver ID cannot be empty")
	}

	q.Status = QuotationStatusApproved
	q.ApprovedBy = &approvedBy
	q.UpdatedAt = time.Now()
	q.IncrementVersion()

	q.AddDomainEvent(NewQuotationApprovedEvent(q, approvedBy))

	return nil
}

// Reject rejects a pending quotation
func (q *Quotation) Reject() error {
	if q.Status != QuotationStatusPendingApproval {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot reject quotation in %s status", q.Status))
	}

	q.Status = QuotationStatusRejected
	q.UpdatedAt = time.Now()
	q.IncrementVersion()

	q.AddDomainEvent(NewQuotationRejectedEvent(q))

	return nil
}

// MarkConverted marks an approved quotation as converted into an invoice.
// A quotation can only be converted once.
func (q *Quotation) MarkConverted() error {
	if q.Status == QuotationStatusConverted {
		return shared.NewDomainError("ALREADY_CONVERTED", "Quotation has already been converted")
	}
	if q.Status != QuotationStatusApproved {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot convert quotation in %s status", q.Status))
	}

	q.Status = QuotationStatusConverted
	q.UpdatedAt = time.Now()
	q.IncrementVersion()

	q.AddDomainEvent(NewQuotationConvertedEvent(q))

	return nil
}

// IsExpired returns true if the quotation's validity period has passed
func (q *Quotation) IsExpired() bool {
	return q.ValidUntil != nil && time.Now().After(*q.ValidUntil)
}
