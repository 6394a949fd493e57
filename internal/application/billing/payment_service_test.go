package billing

import (
	"context"
	"testing"
	"time"

	"github.com/crm/backend/internal/domain/authz"
	"github.com/crm/backend/internal/domain/billing"
	"github.com/crm/backend/internal/domain/identity"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockQuotationRepository is a mock implementation of QuotationRepository
type MockQuotationRepository struct {
	mock.Mock
}

func (m *MockQuotationRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Quotation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Quotation), args.Error(1)
}

func (m *MockQuotationRepository) FindByQuotationNumber(ctx context.Context, quotationNumber string) (*billing.Quotation, error) {
	args := m.Called(ctx, quotationNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Quotation), args.Error(1)
}

func (m *MockQuotationRepository) FindAll(ctx context.Context, filter billing.QuotationFilter) ([]billing.Quotation, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]billing.Quotation), args.Error(1)
}

func (m *MockQuotationRepository) Save(ctx context.Context, quotation *billing.Quotation) error {
	args := m.Called(ctx, quotation)
	return args.Error(0)
}

func (m *MockQuotationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockQuotationRepository) Count(ctx context.Context, filter billing.QuotationFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQuotationRepository) CountByStatus(ctx context.Context, status billing.QuotationStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQuotationRepository) NextQuotationNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

var _ billing.QuotationRepository = (*MockQuotationRepository)(nil)

// MockInvoiceRepository is a mock implementation of InvoiceRepository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByInvoiceNumber(ctx context.Context, invoiceNumber string) (*billing.Invoice, error) {
	args := m.Called(ctx, invoiceNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindAll(ctx context.Context, filter billing.InvoiceFilter) ([]billing.Invoice, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) Save(ctx context.Context, invoice *billing.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) SaveWithLock(ctx context.Context, invoice *billing.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Count(ctx context.Context, filter billing.InvoiceFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) CountByStatus(ctx context.Context, status billing.InvoiceStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) NextInvoiceNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockInvoiceRepository) TotalPaidAmount(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockInvoiceRepository) TotalOutstandingAmount(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

var _ billing.InvoiceRepository = (*MockInvoiceRepository)(nil)

// MockPaymentRepository is a mock implementation of PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]billing.Payment, error) {
	args := m.Called(ctx, invoiceID)
	return args.Get(0).([]billing.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindAll(ctx context.Context, filter billing.PaymentFilter) ([]billing.Payment, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]billing.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Save(ctx context.Context, payment *billing.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPaymentRepository) Count(ctx context.Context, filter billing.PaymentFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

var _ billing.PaymentRepository = (*MockPaymentRepository)(nil)

// fakeUnitOfWork hands the callback a fixed set of repositories. There is
// no real transaction; the mocks record every call.
type fakeUnitOfWork struct {
	repos billing.TxRepositories
}

func (f *fakeUnitOfWork) WithinTransaction(ctx context.Context, fn func(repos billing.TxRepositories) error) error {
	return fn(f.repos)
}

var _ billing.UnitOfWork = (*fakeUnitOfWork)(nil)

// =============================================================================
// Test Helpers
// =============================================================================

func accountantActor() authz.Actor {
	return authz.Actor{
		UserID: uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		Role:   identity.RoleAccountant,
	}
}

func engineerActor() authz.Actor {
	return authz.Actor{
		UserID: uuid.MustParse("22222222-2222-2222-2222-222222222222"),
		Role:   identity.RoleEngineer,
	}
}

func testLineItems(t *testing.T, unitPrice string) billing.LineItems {
	t.Helper()
	price, err := decimal.NewFromString(unitPrice)
	require.NoError(t, err)
	item, err := billing.NewLineItem("Consulting services", decimal.NewFromInt(1), price)
	require.NoError(t, err)
	return billing.LineItems{*item}
}

// createTestInvoice builds a sent invoice with total 6600.00 (6000 + 10% tax)
func createTestInvoice(t *testing.T) *billing.Invoice {
	t.Helper()
	invoice, err := billing.NewInvoice("INV-2026-00001", uuid.New(), testLineItems(t, "6000.00"),
		decimal.NewFromInt(10), nil, "", uuid.New())
	require.NoError(t, err)
	require.NoError(t, invoice.Send())
	require.True(t, invoice.Total.Equal(decimal.RequireFromString("6600.00")))
	return invoice
}

// =============================================================================
// PaymentService Tests
// =============================================================================

func TestPaymentService_Record_PartialThenPaid(t *testing.T) {
	invoiceRepo := new(MockInvoiceRepository)
	paymentRepo := new(MockPaymentRepository)
	uow := &fakeUnitOfWork{repos: billing.TxRepositories{
		Invoices: invoiceRepo,
		Payments: paymentRepo,
	}}
	service := NewPaymentService(paymentRepo, uow)

	ctx := context.Background()
	invoice := createTestInvoice(t)

	invoiceRepo.On("FindByIDForUpdate", ctx, invoice.ID).Return(invoice, nil)
	invoiceRepo.On("SaveWithLock", ctx, invoice).Return(nil)
	paymentRepo.On("Save", ctx, mock.AnythingOfType("*billing.Payment")).Return(nil)

	first, err := service.Record(ctx, accountantActor(), RecordPaymentRequest{
		InvoiceID: invoice.ID,
		Amount:    decimal.RequireFromString("3300.00"),
		Method:    "bank_transfer",
	})

	require.NoError(t, err)
	assert.Equal(t, "partial", first.Invoice.PaymentStatus)
	assert.True(t, first.Invoice.PaidAmount.Equal(decimal.RequireFromString("3300.00")))

	second, err := service.Record(ctx, accountantActor(), RecordPaymentRequest{
		InvoiceID: invoice.ID,
		Amount:    decimal.RequireFromString("3300.00"),
		Method:    "bank_transfer",
	})

	require.NoError(t, err)
	assert.Equal(t, "paid", second.Invoice.PaymentStatus)
	assert.Equal(t, "paid", second.Invoice.Status)
	assert.True(t, second.Invoice.PaidAmount.Equal(decimal.RequireFromString("6600.00")))
	assert.True(t, second.Invoice.Outstanding.IsZero())
	invoiceRepo.AssertExpectations(t)
	paymentRepo.AssertExpectations(t)
}

func TestPaymentService_Record_ExceedsOutstanding(t *testing.T) {
	invoiceRepo := new(MockInvoiceRepository)
	paymentRepo := new(MockPaymentRepository)
	uow := &fakeUnitOfWork{repos: billing.TxRepositories{
		Invoices: invoiceRepo,
		Payments: paymentRepo,
	}}
	service := NewPaymentService(paymentRepo, uow)

	ctx := context.Background()
	invoice := createTestInvoice(t)

	invoiceRepo.On("FindByIDForUpdate", ctx, invoice.ID).Return(invoice, nil)

	result, err := service.Record(ctx, accountantActor(), RecordPaymentRequest{
		InvoiceID: invoice.ID,
		Amount:    decimal.RequireFromString("9000.00"),
		Method:    "cash",
	})

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "EXCEEDS_OUTSTANDING", domainErr.Code)
	// Nothing was persisted
	paymentRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	invoiceRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
}

func TestPaymentService_Record_InvoiceNotFound(t *testing.T) {
	invoiceRepo := new(MockInvoiceRepository)
	paymentRepo := new(MockPaymentRepository)
	uow := &fakeUnitOfWork{repos: billing.TxRepositories{
		Invoices: invoiceRepo,
		Payments: paymentRepo,
	}}
	service := NewPaymentService(paymentRepo, uow)

	ctx := context.Background()
	invoiceID := uuid.New()

	invoiceRepo.On("FindByIDForUpdate", ctx, invoiceID).Return(nil, shared.ErrNotFound)

	result, err := service.Record(ctx, accountantActor(), RecordPaymentRequest{
		InvoiceID: invoiceID,
		Amount:    decimal.NewFromInt(100),
		Method:    "cash",
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestPaymentService_Record_Forbidden(t *testing.T) {
	service := NewPaymentService(new(MockPaymentRepository), &fakeUnitOfWork{})

	result, err := service.Record(context.Background(), engineerActor(), RecordPaymentRequest{
		InvoiceID: uuid.New(),
		Amount:    decimal.NewFromInt(100),
		Method:    "cash",
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func TestPaymentService_Record_RetriesOnVersionConflict(t *testing.T) {
	invoiceRepo := new(MockInvoiceRepository)
	paymentRepo := new(MockPaymentRepository)
	uow := &fakeUnitOfWork{repos: billing.TxRepositories{
		Invoices: invoiceRepo,
		Payments: paymentRepo,
	}}
	service := NewPaymentService(paymentRepo, uow)

	ctx := context.Background()
	conflict := shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "The invoice has been modified by another transaction")

	// First attempt conflicts, second succeeds
	invoiceRepo.On("FindByIDForUpdate", ctx, mock.Anything).Return(createTestInvoice(t), nil)
	paymentRepo.On("Save", ctx, mock.AnythingOfType("*billing.Payment")).Return(nil)
	invoiceRepo.On("SaveWithLock", ctx, mock.Anything).Return(conflict).Once()
	invoiceRepo.On("SaveWithLock", ctx, mock.Anything).Return(nil).Once()

	result, err := service.Record(ctx, accountantActor(), RecordPaymentRequest{
		InvoiceID: uuid.New(),
		Amount:    decimal.RequireFromString("100.00"),
		Method:    "check",
	})

	require.NoError(t, err)
	assert.Equal(t, "partial", result.Invoice.PaymentStatus)
	invoiceRepo.AssertExpectations(t)
}

func TestPaymentService_Record_ConflictExhaustsRetries(t *testing.T) {
	invoiceRepo := new(MockInvoiceRepository)
	paymentRepo := new(MockPaymentRepository)
	uow := &fakeUnitOfWork{repos: billing.TxRepositories{
		Invoices: invoiceRepo,
		Payments: paymentRepo,
	}}
	service := NewPaymentService(paymentRepo, uow)

	ctx := context.Background()
	conflict := shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "The invoice has been modified by another transaction")

	invoiceRepo.On("FindByIDForUpdate", ctx, mock.Anything).Return(createTestInvoice(t), nil)
	paymentRepo.On("Save", ctx, mock.AnythingOfType("*billing.Payment")).Return(nil)
	invoiceRepo.On("SaveWithLock", ctx, mock.Anything).Return(conflict).Times(maxReconcileRetries)

	result, err := service.Record(ctx, accountantActor(), RecordPaymentRequest{
		InvoiceID: uuid.New(),
		Amount:    decimal.RequireFromString("100.00"),
		Method:    "check",
	})

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CONCURRENCY_CONFLICT", domainErr.Code)
	invoiceRepo.AssertExpectations(t)
}

func TestPaymentService_Record_DefaultsPaymentDate(t *testing.T) {
	invoiceRepo := new(MockInvoiceRepository)
	paymentRepo := new(MockPaymentRepository)
	uow := &fakeUnitOfWork{repos: billing.TxRepositories{
		Invoices: invoiceRepo,
		Payments: paymentRepo,
	}}
	service := NewPaymentService(paymentRepo, uow)

	ctx := context.Background()
	invoice := createTestInvoice(t)

	invoiceRepo.On("FindByIDForUpdate", ctx, invoice.ID).Return(invoice, nil)
	invoiceRepo.On("SaveWithLock", ctx, invoice).Return(nil)
	paymentRepo.On("Save", ctx, mock.AnythingOfType("*billing.Payment")).Return(nil)

	before := time.Now()
	result, err := service.Record(ctx, accountantActor(), RecordPaymentRequest{
		InvoiceID: invoice.ID,
		Amount:    decimal.RequireFromString("50.00"),
		Method:    "online",
	})

	require.NoError(t, err)
	assert.False(t, result.Payment.PaymentDate.Before(before))
}

func TestPaymentService_ListByInvoice(t *testing.T) {
	paymentRepo := new(MockPaymentRepository)
	service := NewPaymentService(paymentRepo, &fakeUnitOfWork{})

	ctx := context.Background()
	invoiceID := uuid.New()
	payment, err := billing.NewPayment(invoiceID, decimal.NewFromInt(100), billing.PaymentMethodCash, "", "", uuid.New(), time.Now())
	require.NoError(t, err)

	paymentRepo.On("FindByInvoiceID", ctx, invoiceID).Return([]billing.Payment{*payment}, nil)

	results, err := service.ListByInvoice(ctx, accountantActor(), invoiceID)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, invoiceID, results[0].InvoiceID)
	paymentRepo.AssertExpectations(t)
}
