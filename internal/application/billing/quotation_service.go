package billing

import (
	"context"

	"github.com/crm/backend/internal/domain/authz"
	"github.com/crm/backend/internal/domain/billing"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// QuotationService handles quotation operations, including the approval
// workflow and conversion into an invoice
type QuotationService struct {
	quotationRepo billing.QuotationRepository
	uow           billing.UnitOfWork
}

// NewQuotationService creates a new QuotationService
func NewQuotationService(quotationRepo billing.QuotationRepository, uow billing.UnitOfWork) *QuotationService {
	return &QuotationService{
		quotationRepo: quotationRepo,
		uow:           uow,
	}
}

// Create creates a new draft quotation
func (s *QuotationService) Create(ctx context.Context, actor authz.Actor, req CreateQuotationRequest) (*QuotationResponse, error) {
	if !actor.Can(authz.ResourceQuotations, authz.ActionCreate) {
		return nil, shared.ErrForbidden
	}

	items, err := toLineItems(req.Items)
	if err != nil {
		return nil, err
	}

	number, err := s.quotationRepo.NextQuotationNumber(ctx)
	if err != nil {
		return nil, err
	}

	quotation, err := billing.NewQuotation(number, req.ClientID, req.LeadID, items, req.TaxRate, req.ValidUntil, req.Notes, actor.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.quotationRepo.Save(ctx, quotation); err != nil {
		return nil, err
	}

	response := ToQuotationResponse(quotation)
	return &response, nil
}

// GetByID retrieves a quotation, enforcing the actor's visibility scope
func (s *QuotationService) GetByID(ctx context.Context, actor authz.Actor, quotationID uuid.UUID) (*QuotationResponse, error) {
	if !actor.Can(authz.ResourceQuotations, authz.ActionRead) {
		return nil, shared.ErrForbidden
	}

	quotation, err := s.findVisible(ctx, actor, quotationID)
	if err != nil {
		return nil, err
	}

	response := ToQuotationResponse(quotation)
	return &response, nil
}

// List retrieves quotations matching the filter, within the actor's scope
func (s *QuotationService) List(ctx context.Context, actor authz.Actor, filter QuotationListFilter) ([]QuotationResponse, int64, error) {
	if !actor.Can(authz.ResourceQuotations, authz.ActionRead) {
		return nil, 0, shared.ErrForbidden
	}

	f := billing.QuotationFilter{Filter: shared.DefaultFilter()}
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
	if filter.LeadID != nil {
		f.LeadID = filter.LeadID
	}
	if filter.Status != "" {
		status := billing.QuotationStatus(filter.Status)
		f.Status = &status
	}
	if filter.CreatedBy != nil {
		f.CreatedBy = filter.CreatedBy
	}

	// The visibility scope overrides any requested status filter
	if scope := actor.ScopeFor(authz.ResourceQuotations); scope != nil {
		approved := billing.QuotationStatusApproved
		f.Status = &approved
	}

	quotations, err := s.quotationRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.quotationRepo.Count(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]QuotationResponse, len(quotations))
	for i := range quotations {
		responses[i] = ToQuotationResponse(&quotations[i])
	}
	return responses, total, nil
}

// Update updates a draft quotation's items, tax rate or notes
func (s *QuotationService) Update(ctx context.Context, actor authz.Actor, quotationID uuid.UUID, req UpdateQuotationRequest) (*QuotationResponse, error) {
	if !actor.Can(authz.ResourceQuotations, authz.ActionUpdate) {
		return nil, shared.ErrForbidden
	}

	quotation, err := s.findVisible(ctx, actor, quotationID)
	if err != nil {
		return nil, err
	}

	if len(req.Items) > 0 || req.TaxRate != nil {
		items := quotation.Items
		if len(req.Items) > 0 {
			items, err = toLineItems(req.Items)
			if err != nil {
				return nil, err
			}
		}
		taxRate := quotation.TaxRate
		if req.TaxRate != nil {
			taxRate = *req.TaxRate
		}
		if err := quotation.UpdateItems(items, taxRate); err != nil {
			return nil, err
		}
	}

	if req.Notes != nil {
		quotation.SetNotes(*req.Notes)
	}

	if err := s.quotationRepo.Save(ctx, quotation); err != nil {
		return nil, err
	}

	response := ToQuotationResponse(quotation)
	return &response, nil
}

// Submit moves a draft quotation to pending approval
func (s *QuotationService) Submit(ctx context.Context, actor authz.Actor, quotationID uuid.UUID) (*QuotationResponse, error) {
	return s.transition(ctx, actor, quotationID, func(q *billing.Quotation) error {
		return q.Submit()
	})
}

// Approve approves a pending quotation, recording the actor as approver
func (s *QuotationService) Approve(ctx context.Context, actor authz.Actor, quotationID uuid.UUID) (*QuotationResponse, error) {
	return s.transition(ctx, actor, quotationID, func(q *billing.Quotation) error {
		return q.Approve(actor.UserID)
	})
}

// Reject rejects a pending quotation
func (s *QuotationService) Reject(ctx context.Context, actor authz.Actor, quotationID uuid.UUID) (*QuotationResponse, error) {
	return s.transition(ctx, actor, quotationID, func(q *billing.Quotation) error {
		return q.Reject()
	})
}

// Convert converts an approved quotation into a draft invoice. The new
// invoice and the quotation's converted status are committed together, so
// a quotation can never be converted twice.
func (s *QuotationService) Convert(ctx context.Context, actor authz.Actor, quotationID uuid.UUID, req ConvertQuotationRequest) (*InvoiceResponse, error) {
	if !actor.Can(authz.ResourceQuotations, authz.ActionUpdate) {
		return nil, shared.ErrForbidden
	}

	var invoice *billing.Invoice
	err := s.uow.WithinTransaction(ctx, func(repos billing.TxRepositories) error {
		quotation, err := repos.Quotations.FindByID(ctx, quotationID)
		if err != nil {
			return err
		}

		number, err := repos.Invoices.NextInvoiceNumber(ctx)
		if err != nil {
			return err
		}

		invoice, err = billing.NewInvoiceFromQuotation(number, quotation, req.DueDate, actor.UserID)
		if err != nil {
			return err
		}

		if err := quotation.MarkConverted(); err != nil {
			return err
		}

		if err := repos.Invoices.Save(ctx, invoice); err != nil {
			return err
		}
		return repos.Quotations.Save(ctx, quotation)
	})
	if err != nil {
		return nil, err
	}

	logger.L(ctx).Info("Quotation converted to invoice",
		zap.String("quotation_id", quotationID.String()),
		zap.String("invoice_number", invoice.InvoiceNumber),
	)

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// Delete deletes a quotation
func (s *QuotationService) Delete(ctx context.Context, actor authz.Actor, quotationID uuid.UUID) error {
	if !actor.Can(authz.ResourceQuotations, authz.ActionDelete) {
		return shared.ErrForbidden
	}
	return s.quotationRepo.Delete(ctx, quotationID)
}

// transition applies a status change and saves
func (s *QuotationService) transition(ctx context.Context, actor authz.Actor, quotationID uuid.UUID, change func(*billing.Quotation) error) (*QuotationResponse, error) {
	if !actor.Can(authz.ResourceQuotations, authz.ActionUpdate) {
		return nil, shared.ErrForbidden
	}

	quotation, err := s.findVisible(ctx, actor, quotationID)
	if err != nil {
		return nil, err
	}

	if err := change(quotation); err != nil {
		return nil, err
	}

	if err := s.quotationRepo.Save(ctx, quotation); err != nil {
		return nil, err
	}

	response := ToQuotationResponse(quotation)
	return &response, nil
}

// findVisible loads a quotation and verifies it falls within the actor's
// scope. Accountants only see approved quotations; anything else surfaces
// as not found.
func (s *QuotationService) findVisible(ctx context.Context, actor authz.Actor, quotationID uuid.UUID) (*billing.Quotation, error) {
	quotation, err := s.quotationRepo.FindByID(ctx, quotationID)
	if err != nil {
		return nil, err
	}
	if scope := actor.ScopeFor(authz.ResourceQuotations); scope != nil {
		if quotation.Status != billing.QuotationStatusApproved {
			return nil, shared.ErrNotFound
		}
	}
	return quotation, nil
}
