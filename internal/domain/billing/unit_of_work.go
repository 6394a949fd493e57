package billing

import "context"

// TxRepositories bundles the billing repositories bound to a single
// database transaction.
type TxRepositories struct {
	Quotations QuotationRepository
	Invoices   InvoiceRepository
	Payments   PaymentRepository
}

// UnitOfWork runs billing operations that must commit or roll back as one.
// Payment reconciliation and quotation conversion both write two aggregates
// and go through here.
type UnitOfWork interface {
	WithinTransaction(ctx context.Context, fn func(repos TxRepositories) error) error
}
