package billing

import (
	"context"
	"errors"
	"time"

	"github.com/crm/backend/internal/domain/authz"
	"github.com/crm/backend/internal/domain/billing"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/domain/shared/valueobject"
	"github.com/crm/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxReconcileRetries bounds how often a payment is retried when a
// concurrent writer bumps the invoice version between lock and save.
const maxReconcileRetries = 3

// PaymentService records payments and reconciles them against invoices
type PaymentService struct {
	paymentRepo billing.PaymentRepository
	uow         billing.UnitOfWork
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(paymentRepo billing.PaymentRepository, uow billing.UnitOfWork) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		uow:         uow,
	}
}

// Record records a payment and applies it to its invoice. The payment row
// and the invoice's paid amount and payment status commit in one
// transaction; the invoice row is locked for the duration, so concurrent
// payments serialize and the paid amount never exceeds the total.
func (s *PaymentService) Record(ctx context.Context, actor authz.Actor, req RecordPaymentRequest) (*RecordPaymentResponse, error) {
	if !actor.Can(authz.ResourcePayments, authz.ActionCreate) {
		return nil, shared.ErrForbidden
	}

	var paymentDate time.Time
	if req.PaymentDate != nil {
		paymentDate = *req.PaymentDate
	}

	var (
		payment *billing.Payment
		invoice *billing.Invoice
	)

	for attempt := 0; ; attempt++ {
		err := s.uow.WithinTransaction(ctx, func(repos billing.TxRepositories) error {
			var err error
			invoice, err = repos.Invoices.FindByIDForUpdate(ctx, req.InvoiceID)
			if err != nil {
				return err
			}

			payment, err = billing.NewPayment(req.InvoiceID, req.Amount, billing.PaymentMethod(req.Method),
				req.TransactionID, req.Notes, actor.UserID, paymentDate)
			if err != nil {
				return err
			}

			if err := invoice.ApplyPayment(valueobject.NewMoneyUSD(req.Amount)); err != nil {
				return err
			}

			if err := repos.Payments.Save(ctx, payment); err != nil {
				return err
			}
			return repos.Invoices.SaveWithLock(ctx, invoice)
		})
		if err == nil {
			break
		}
		if isOptimisticLockError(err) && attempt < maxReconcileRetries-1 {
			logger.L(ctx).Warn("Payment reconciliation conflict, retrying",
				zap.String("invoice_id", req.InvoiceID.String()),
				zap.Int("attempt", attempt+1),
			)
			continue
		}
		if isOptimisticLockError(err) {
			return nil, shared.NewDomainError("CONCURRENCY_CONFLICT", "Invoice was modified concurrently, please retry")
		}
		return nil, err
	}

	logger.L(ctx).Info("Payment recorded",
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("amount", payment.Amount.StringFixed(2)),
		zap.String("payment_status", string(invoice.PaymentStatus)),
	)

	return &RecordPaymentResponse{
		Payment: ToPaymentResponse(payment),
		Invoice: ToInvoiceResponse(invoice),
	}, nil
}

// GetByID retrieves a payment by ID
func (s *PaymentService) GetByID(ctx context.Context, actor authz.Actor, paymentID uuid.UUID) (*PaymentResponse, error) {
	if !actor.Can(authz.ResourcePayments, authz.ActionRead) {
		return nil, shared.ErrForbidden
	}

	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	response := ToPaymentResponse(payment)
	return &response, nil
}

// List retrieves payments matching the filter
func (s *PaymentService) List(ctx context.Context, actor authz.Actor, filter PaymentListFilter) ([]PaymentResponse, int64, error) {
	if !actor.Can(authz.ResourcePayments, authz.ActionRead) {
		return nil, 0, shared.ErrForbidden
	}

	f := billing.PaymentFilter{Filter: shared.DefaultFilter()}
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		f.OrderBy = filter.OrderBy
		f.OrderDir = filter.OrderDir
	}
	if filter.InvoiceID != nil {
		f.InvoiceID = filter.InvoiceID
	}
	if filter.Method != "" {
		method := billing.PaymentMethod(filter.Method)
		f.Method = &method
	}
	if filter.RecordedBy != nil {
		f.RecordedBy = filter.RecordedBy
	}
	if filter.FromDate != nil {
		f.FromDate = filter.FromDate
	}
	if filter.ToDate != nil {
		f.ToDate = filter.ToDate
	}

	payments, err := s.paymentRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.paymentRepo.Count(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = ToPaymentResponse(&payments[i])
	}
	return responses, total, nil
}

// ListByInvoice retrieves all payments applied to an invoice, oldest first
func (s *PaymentService) ListByInvoice(ctx context.Context, actor authz.Actor, invoiceID uuid.UUID) ([]PaymentResponse, error) {
	if !actor.Can(authz.ResourcePayments, authz.ActionRead) {
		return nil, shared.ErrForbidden
	}

	payments, err := s.paymentRepo.FindByInvoiceID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	responses := make([]PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = ToPaymentResponse(&payments[i])
	}
	return responses, nil
}

// Delete deletes a payment record. The invoice is not re-credited; there
// is no refund path.
func (s *PaymentService) Delete(ctx context.Context, actor authz.Actor, paymentID uuid.UUID) error {
	if !actor.Can(authz.ResourcePayments, authz.ActionDelete) {
		return shared.ErrForbidden
	}
	return s.paymentRepo.Delete(ctx, paymentID)
}

// isOptimisticLockError reports whether err is a version conflict from
// SaveWithLock
func isOptimisticLockError(err error) bool {
	var domainErr *shared.DomainError
	return errors.As(err, &domainErr) && domainErr.Code == "OPTIMISTIC_LOCK_ERROR"
}
