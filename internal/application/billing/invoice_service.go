package billing

import (
	"context"

	"github.com/crm/backend/internal/domain/authz"
	"github.com/crm/backend/internal/domain/billing"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// InvoiceService handles invoice operations
type InvoiceService struct {
	invoiceRepo billing.InvoiceRepository
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(invoiceRepo billing.InvoiceRepository) *InvoiceService {
	return &InvoiceService{invoiceRepo: invoiceRepo}
}

// Create creates a new draft invoice
func (s *InvoiceService) Create(ctx context.Context, actor authz.Actor, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	if !actor.Can(authz.ResourceInvoices, authz.ActionCreate) {
		return nil, shared.ErrForbidden
	}

	items, err := toLineItems(req.Items)
	if err != nil {
		return nil, err
	}

	number, err := s.invoiceRepo.NextInvoiceNumber(ctx)
	if err != nil {
		return nil, err
	}

	invoice, err := billing.NewInvoice(number, req.ClientID, items, req.TaxRate, req.DueDate, req.Notes, actor.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// GetByID retrieves an invoice by ID
func (s *InvoiceService) GetByID(ctx context.Context, actor authz.Actor, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	if !actor.Can(authz.ResourceInvoices, authz.ActionRead) {
		return nil, shared.ErrForbidden
	}

	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// List retrieves invoices matching the filter
func (s *InvoiceService) List(ctx context.Context, actor authz.Actor, filter InvoiceListFilter) ([]InvoiceResponse, int64, error) {
	if !actor.Can(authz.ResourceInvoices, authz.ActionRead) {
		return nil, 0, shared.ErrForbidden
	}

	f := billing.InvoiceFilter{Filter: shared.DefaultFilter()}
	f.Search = filter.Search
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
	if filter.ClientID != nil {
		f.ClientID = filter.ClientID
	}
	if filter.QuotationID != nil {
		f.QuotationID = filter.QuotationID
	}
	if filter.Status != "" {
		status := billing.InvoiceStatus(filter.Status)
		f.Status = &status
	}
	if filter.PaymentStatus != "" {
		paymentStatus := billing.PaymentStatus(filter.PaymentStatus)
		f.PaymentStatus = &paymentStatus
	}
	if filter.DueBefore != nil {
		f.DueBefore = filter.DueBefore
	}

	invoices, err := s.invoiceRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.invoiceRepo.Count(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		responses[i] = ToInvoiceResponse(&invoices[i])
	}
	return responses, total, nil
}

// Update updates a draft invoice's items, tax rate or notes
func (s *InvoiceService) Update(ctx context.Context, actor authz.Actor, invoiceID uuid.UUID, req UpdateInvoiceRequest) (*InvoiceResponse, error) {
	if !actor.Can(authz.ResourceInvoices, authz.ActionUpdate) {
		return nil, shared.ErrForbidden
	}

	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	if len(req.Items) > 0 || req.TaxRate != nil {
		items := invoice.Items
		if len(req.Items) > 0 {
			items, err = toLineItems(req.Items)
			if err != nil {
				return nil, err
			}
		}
		taxRate := invoice.TaxRate
		if req.TaxRate != nil {
			taxRate = *req.TaxRate
		}
		if err := invoice.UpdateItems(items, taxRate); err != nil {
			return nil, err
		}
	}

	if req.Notes != nil {
		invoice.SetNotes(*req.Notes)
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// Send marks a draft invoice as sent to the client
func (s *InvoiceService) Send(ctx context.Context, actor authz.Actor, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	return s.transition(ctx, actor, invoiceID, (*billing.Invoice).Send)
}

// Cancel cancels an invoice without payments applied
func (s *InvoiceService) Cancel(ctx context.Context, actor authz.Actor, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	return s.transition(ctx, actor, invoiceID, (*billing.Invoice).Cancel)
}

// MarkOverdue flags a sent invoice whose due date has passed
func (s *InvoiceService) MarkOverdue(ctx context.Context, actor authz.Actor, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	return s.transition(ctx, actor, invoiceID, (*billing.Invoice).MarkOverdue)
}

// Delete deletes an invoice
func (s *InvoiceService) Delete(ctx context.Context, actor authz.Actor, invoiceID uuid.UUID) error {
	if !actor.Can(authz.ResourceInvoices, authz.ActionDelete) {
		return shared.ErrForbidden
	}
	return s.invoiceRepo.Delete(ctx, invoiceID)
}

// transition applies a status change and saves
func (s *InvoiceService) transition(ctx context.Context, actor authz.Actor, invoiceID uuid.UUID, change func(*billing.Invoice) error) (*InvoiceResponse, error) {
	if !actor.Can(authz.ResourceInvoices, authz.ActionUpdate) {
		return nil, shared.ErrForbidden
	}

	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	if err := change(invoice); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(invoice)
	return &response, nil
}
