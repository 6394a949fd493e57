package billing

import (
	"context"
	"time"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuotationFilter defines filtering options for quotation queries
type QuotationFilter struct {
	shared.Filter
	ClientID  *uuid.UUID       // Filter by client
	LeadID    *uuid.UUID       // Filter by originating lead
	Status    *QuotationStatus // Filter by status (also used as visibility scope)
	CreatedBy *uuid.UUID       // Filter by creator
}

// QuotationRepository defines the interface for quotation persistence
type QuotationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Quotation, error)
	FindByQuotationNumber(ctx context.Context, quotationNumber string) (*Quotation, error)
	FindAll(ctx context.Context, filter QuotationFilter) ([]Quotation, error)
	Save(ctx context.Context, quotation *Quotation) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter QuotationFilter) (int64, error)
	CountByStatus(ctx context.Context, status QuotationStatus) (int64, error)
	NextQuotationNumber(ctx context.Context) (string, error)
}

// InvoiceFilter defines filtering options for invoice queries
type InvoiceFilter struct {
	shared.Filter
	ClientID      *uuid.UUID     // Filter by client
	QuotationID   *uuid.UUID     // Filter by source quotation
	Status        *InvoiceStatus // Filter by document status
	PaymentStatus *PaymentStatus // Filter by payment status
	DueBefore     *time.Time     // Filter by due date
}

// InvoiceRepository defines the interface for invoice persistence
type InvoiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)

	// FindByIDForUpdate finds an invoice and takes a row lock for the
	// duration of the surrounding transaction
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Invoice, error)

	FindByInvoiceNumber(ctx context.Context, invoiceNumber string) (*Invoice, error)
	FindAll(ctx context.Context, filter InvoiceFilter) ([]Invoice, error)
	Save(ctx context.Context, invoice *Invoice) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, invoice *Invoice) error

	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter InvoiceFilter) (int64, error)
	CountByStatus(ctx context.Context, status InvoiceStatus) (int64, error)
	NextInvoiceNumber(ctx context.Context) (string, error)

	// TotalPaidAmount returns the sum of paid amounts across all
	// non-cancelled invoices
	TotalPaidAmount(ctx context.Context) (decimal.Decimal, error)

	// TotalOutstandingAmount returns the sum of amounts still owed across
	// all non-cancelled invoices
	TotalOutstandingAmount(ctx context.Context) (decimal.Decimal, error)
}

// PaymentFilter defines filtering options for payment queries
type PaymentFilter struct {
	shared.Filter
	InvoiceID  *uuid.UUID     // Filter by invoice
	Method     *PaymentMethod // Filter by payment method
	RecordedBy *uuid.UUID     // Filter by recorder
	FromDate   *time.Time     // Filter by payment date range start
	ToDate     *time.Time     // Filter by payment date range end
}

// PaymentRepository defines the interface for payment persistence
type PaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	FindByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]Payment, error)
	FindAll(ctx context.Context, filter PaymentFilter) ([]Payment, error)
	Save(ctx context.Context, payment *Payment) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter PaymentFilter) (int64, error)
}
