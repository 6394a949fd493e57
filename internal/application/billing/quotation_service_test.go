package billing

import (
	"context"
	"testing"

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

func salesManagerActor() authz.Actor {
	return authz.Actor{
		UserID: uuid.MustParse("33333333-3333-3333-3333-333333333333"),
		Role:   identity.RoleSalesManager,
	}
}

func createTestQuotation(t *testing.T) *billing.Quotation {
	t.Helper()
	quotation, err := billing.NewQuotation("QT-2026-00001", uuid.New(), nil,
		testLineItems(t, "6000.00"), decimal.NewFromInt(10), nil, "", uuid.New())
	require.NoError(t, err)
	return quotation
}

func TestQuotationService_Create_ComputesTotals(t *testing.T) {
	quotationRepo := new(MockQuotationRepository)
	service := NewQuotationService(quotationRepo, &fakeUnitOfWork{})

	ctx := context.Background()
	quotationRepo.On("NextQuotationNumber", ctx).Return("QT-2026-00042", nil)
	quotationRepo.On("Save", ctx, mock.AnythingOfType("*billing.Quotation")).Return(nil)

	result, err := service.Create(ctx, salesManagerActor(), CreateQuotationRequest{
		ClientID: uuid.New(),
		Items: []LineItemRequest{
			{Description: "License", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.RequireFromString("1500.00")},
			{Description: "Support", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.RequireFromString("3000.00")},
		},
		TaxRate: decimal.NewFromInt(10),
	})

	require.NoError(t, err)
	assert.Equal(t, "QT-2026-00042", result.QuotationNumber)
	assert.Equal(t, "draft", result.Status)
	assert.True(t, result.Subtotal.Equal(decimal.RequireFromString("6000.00")))
	assert.True(t, result.TaxAmount.Equal(decimal.RequireFromString("600.00")))
	assert.True(t, result.Total.Equal(decimal.RequireFromString("6600.00")))
	quotationRepo.AssertExpectations(t)
}

func TestQuotationService_Create_Forbidden(t *testing.T) {
	service := NewQuotationService(new(MockQuotationRepository), &fakeUnitOfWork{})

	result, err := service.Create(context.Background(), accountantActor(), CreateQuotationRequest{
		ClientID: uuid.New(),
		Items: []LineItemRequest{
			{Description: "License", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(100)},
		},
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func TestQuotationService_ApprovalFlow(t *testing.T) {
	quotationRepo := new(MockQuotationRepository)
	service := NewQuotationService(quotationRepo, &fakeUnitOfWork{})

	ctx := context.Background()
	actor := salesManagerActor()
	quotation := createTestQuotation(t)

	quotationRepo.On("FindByID", ctx, quotation.ID).Return(quotation, nil)
	quotationRepo.On("Save", ctx, quotation).Return(nil)

	submitted, err := service.Submit(ctx, actor, quotation.ID)
	require.NoError(t, err)
	assert.Equal(t, "pending_approval", submitted.Status)

	approved, err := service.Approve(ctx, actor, quotation.ID)
	require.NoError(t, err)
	assert.Equal(t, "approved", approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, actor.UserID, *approved.ApprovedBy)
}

func TestQuotationService_Approve_NotPending(t *testing.T) {
	quotationRepo := new(MockQuotationRepository)
	service := NewQuotationService(quotationRepo, &fakeUnitOfWork{})

	ctx := context.Background()
	quotation := createTestQuotation(t)

	quotationRepo.On("FindByID", ctx, quotation.ID).Return(quotation, nil)

	result, err := service.Approve(ctx, salesManagerActor(), quotation.ID)

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
	quotationRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestQuotationService_List_AccountantSeesOnlyApproved(t *testing.T) {
	quotationRepo := new(MockQuotationRepository)
	service := NewQuotationService(quotationRepo, &fakeUnitOfWork{})

	ctx := context.Background()
	requested := billing.QuotationStatusDraft

	quotationRepo.On("FindAll", ctx, mock.MatchedBy(func(f billing.QuotationFilter) bool {
		return f.Status != nil && *f.Status == billing.QuotationStatusApproved
	})).Return([]billing.Quotation{}, nil)
	quotationRepo.On("Count", ctx, mock.MatchedBy(func(f billing.QuotationFilter) bool {
		return f.Status != nil && *f.Status == billing.QuotationStatusApproved
	})).Return(int64(0), nil)

	// Even an explicit draft filter is overridden by the accountant scope
	_, _, err := service.List(ctx, accountantActor(), QuotationListFilter{Status: string(requested)})

	require.NoError(t, err)
	quotationRepo.AssertExpectations(t)
}

func TestQuotationService_GetByID_AccountantCannotSeeDraft(t *testing.T) {
	quotationRepo := new(MockQuotationRepository)
	service := NewQuotationService(quotationRepo, &fakeUnitOfWork{})

	ctx := context.Background()
	quotation := createTestQuotation(t)

	quotationRepo.On("FindByID", ctx, quotation.ID).Return(quotation, nil)

	result, err := service.GetByID(ctx, accountantActor(), quotation.ID)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestQuotationService_Convert_Success(t *testing.T) {
	quotationRepo := new(MockQuotationRepository)
	invoiceRepo := new(MockInvoiceRepository)
	uow := &fakeUnitOfWork{repos: billing.TxRepositories{
		Quotations: quotationRepo,
		Invoices:   invoiceRepo,
	}}
	service := NewQuotationService(quotationRepo, uow)

	ctx := context.Background()
	actor := salesManagerActor()
	quotation := createTestQuotation(t)
	require.NoError(t, quotation.Submit())
	require.NoError(t, quotation.Approve(actor.UserID))

	quotationRepo.On("FindByID", ctx, quotation.ID).Return(quotation, nil)
	quotationRepo.On("Save", ctx, quotation).Return(nil)
	invoiceRepo.On("NextInvoiceNumber", ctx).Return("INV-2026-00007", nil)
	invoiceRepo.On("Save", ctx, mock.AnythingOfType("*billing.Invoice")).Return(nil)

	invoice, err := service.Convert(ctx, actor, quotation.ID, ConvertQuotationRequest{})

	require.NoError(t, err)
	assert.Equal(t, "INV-2026-00007", invoice.InvoiceNumber)
	assert.Equal(t, "draft", invoice.Status)
	assert.Equal(t, quotation.ClientID, invoice.ClientID)
	require.NotNil(t, invoice.QuotationID)
	assert.Equal(t, quotation.ID, *invoice.QuotationID)
	assert.True(t, invoice.Total.Equal(quotation.Total))
	assert.Equal(t, billing.QuotationStatusConverted, quotation.Status)
	quotationRepo.AssertExpectations(t)
	invoiceRepo.AssertExpectations(t)
}

func TestQuotationService_Convert_AlreadyConverted(t *testing.T) {
	quotationRepo := new(MockQuotationRepository)
	invoiceRepo := new(MockInvoiceRepository)
	uow := &fakeUnitOfWork{repos: billing.TxRepositories{
		Quotations: quotationRepo,
		Invoices:   invoiceRepo,
	}}
	service := NewQuotationService(quotationRepo, uow)

	ctx := context.Background()
	actor := salesManagerActor()
	quotation := createTestQuotation(t)
	require.NoError(t, quotation.Submit())
	require.NoError(t, quotation.Approve(actor.UserID))
	require.NoError(t, quotation.MarkConverted())

	quotationRepo.On("FindByID", ctx, quotation.ID).Return(quotation, nil)
	invoiceRepo.On("NextInvoiceNumber", ctx).Return("INV-2026-00008", nil)

	result, err := service.Convert(ctx, actor, quotation.ID, ConvertQuotationRequest{})

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_CONVERTED", domainErr.Code)
	quotationRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	invoiceRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestQuotationService_Update_DraftOnly(t *testing.T) {
	quotationRepo := new(MockQuotationRepository)
	service := NewQuotationService(quotationRepo, &fakeUnitOfWork{})

	ctx := context.Background()
	quotation := createTestQuotation(t)
	require.NoError(t, quotation.Submit())

	quotationRepo.On("FindByID", ctx, quotation.ID).Return(quotation, nil)

	newRate := decimal.NewFromInt(20)
	result, err := service.Update(ctx, salesManagerActor(), quotation.ID, UpdateQuotationRequest{TaxRate: &newRate})

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
}
