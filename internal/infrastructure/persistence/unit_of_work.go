package persistence

import (
	"context"

	"github.com/crm/backend/internal/domain/billing"
	"gorm.io/gorm"
)

// GormBillingUnitOfWork implements billing.UnitOfWork on top of a GORM
// transaction. Each callback receives repositories bound to the transaction,
// so row locks taken with FindByIDForUpdate hold until commit.
type GormBillingUnitOfWork struct {
	db *gorm.DB
}

// NewGormBillingUnitOfWork creates a new GormBillingUnitOfWork
func NewGormBillingUnitOfWork(db *gorm.DB) *GormBillingUnitOfWork {
	return &GormBillingUnitOfWork{db: db}
}

// WithinTransaction runs fn inside a database transaction
func (u *GormBillingUnitOfWork) WithinTransaction(ctx context.Context, fn func(repos billing.TxRepositories) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(billing.TxRepositories{
			Quotations: NewGormQuotationRepository(tx),
			Invoices:   NewGormInvoiceRepository(tx),
			Payments:   NewGormPaymentRepository(tx),
		})
	})
}

var _ billing.UnitOfWork = (*GormBillingUnitOfWork)(nil)
