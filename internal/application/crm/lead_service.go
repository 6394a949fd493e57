package crm

import (
	"context"

	"github.com/crm/backend/internal/domain/authz"
	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// LeadService handles lead-related business operations
type LeadService struct {
	leadRepo crm.LeadRepository
}

// NewLeadService creates a new LeadService
func NewLeadService(leadRepo crm.LeadRepository) *LeadService {
	return &LeadService{leadRepo: leadRepo}
}

// Create creates a new lead
func (s *LeadService) Create(ctx context.Context, actor authz.Actor, req CreateLeadRequest) (*LeadResponse, error) {
	if !actor.Can(authz.ResourceLeads, authz.ActionCreate) {
		return nil, shared.ErrForbidden
	}

	lead, err := crm.NewLead(req.CompanyName, req.ContactPerson, crm.LeadSource(req.Source))
	if err != nil {
		return nil, err
	}

	if req.Email != "" || req.Phone != "" || req.Notes != "" {
		if err := lead.Update(req.CompanyName, req.ContactPerson, req.Email, req.Phone, req.Notes); err != nil {
			return nil, err
		}
	}
	if req.EstimatedValue != nil {
		if err := lead.SetEstimatedValue(*req.EstimatedValue); err != nil {
			return nil, err
		}
	}

	// Leads created by a sales executive are always theirs
	assignee := req.AssignedTo
	if scope := actor.ScopeFor(authz.ResourceLeads); scope != nil {
		assignee = &actor.UserID
	}
	if assignee != nil {
		if err := lead.Assign(*assignee); err != nil {
			return nil, err
		}
	}

	if err := s.leadRepo.Save(ctx, lead); err != nil {
		return nil, err
	}

	response := ToLeadResponse(lead)
	return &response, nil
}

// GetByID retrieves a lead, enforcing the actor's visibility scope
func (s *LeadService) GetByID(ctx context.Context, actor authz.Actor, leadID uuid.UUID) (*LeadResponse, error) {
	if !actor.Can(authz.ResourceLeads, authz.ActionRead) {
		return nil, shared.ErrForbidden
	}

	lead, err := s.findVisible(ctx, actor, leadID)
	if err != nil {
		return nil, err
	}

	response := ToLeadResponse(lead)
	return &response, nil
}

// List retrieves leads matching the filter, within the actor's scope
func (s *LeadService) List(ctx context.Context, actor authz.Actor, filter LeadListFilter) ([]LeadResponse, int64, error) {
	if !actor.Can(authz.ResourceLeads, authz.ActionRead) {
		return nil, 0, shared.ErrForbidden
	}

	f := crm.LeadFilter{Filter: shared.DefaultFilter()}
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
	if filter.Status != "" {
		status := crm.LeadStatus(filter.Status)
		f.Status = &status
	}
	if filter.Source != "" {
		source := crm.LeadSource(filter.Source)
		f.Source = &source
	}
	if filter.AssignedTo != nil {
		f.AssignedTo = filter.AssignedTo
	}

	// The visibility scope overrides any requested assignee filter
	if scope := actor.ScopeFor(authz.ResourceLeads); scope != nil {
		f.AssignedTo = &actor.UserID
	}

	leads, err := s.leadRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.leadRepo.Count(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]LeadResponse, len(leads))
	for i := range leads {
		responses[i] = ToLeadResponse(&leads[i])
	}
	return responses, total, nil
}

// Update updates a lead's details, status or assignment
func (s *LeadService) Update(ctx context.Context, actor authz.Actor, leadID uuid.UUID, req UpdateLeadRequest) (*LeadResponse, error) {
	if !actor.Can(authz.ResourceLeads, authz.ActionUpdate) {
		return nil, shared.ErrForbidden
	}

	lead, err := s.findVisible(ctx, actor, leadID)
	if err != nil {
		return nil, err
	}

	companyName := lead.CompanyName
	contactPerson := lead.ContactPerson
	email := lead.Email
	phone := lead.Phone
	notes := lead.Notes
	if req.CompanyName != nil {
		companyName = *req.CompanyName
	}
	if req.ContactPerson != nil {
		contactPerson = *req.ContactPerson
	}
	if req.Email != nil {
		email = *req.Email
	}
	if req.Phone != nil {
		phone = *req.Phone
	}
	if req.Notes != nil {
		notes = *req.Notes
	}
	if err := lead.Update(companyName, contactPerson, email, phone, notes); err != nil {
		return nil, err
	}

	if req.EstimatedValue != nil {
		if err := lead.SetEstimatedValue(*req.EstimatedValue); err != nil {
			return nil, err
		}
	}

	if req.AssignedTo != nil {
		if err := lead.Assign(*req.AssignedTo); err != nil {
			return nil, err
		}
	}

	if req.Status != nil {
		if err := lead.ChangeStatus(crm.LeadStatus(*req.Status)); err != nil {
			return nil, err
		}
	}

	if err := s.leadRepo.Save(ctx, lead); err != nil {
		return nil, err
	}

	response := ToLeadResponse(lead)
	return &response, nil
}

// Delete deletes a lead
func (s *LeadService) Delete(ctx context.Context, actor authz.Actor, leadID uuid.UUID) error {
	if !actor.Can(authz.ResourceLeads, authz.ActionDelete) {
		return shared.ErrForbidden
	}
	return s.leadRepo.Delete(ctx, leadID)
}

// findVisible loads a lead and verifies it falls within the actor's scope.
// Out-of-scope leads surface as not found rather than forbidden, so their
// existence is not leaked.
func (s *LeadService) findVisible(ctx context.Context, actor authz.Actor, leadID uuid.UUID) (*crm.Lead, error) {
	lead, err := s.leadRepo.FindByID(ctx, leadID)
	if err != nil {
		return nil, err
	}
	if scope := actor.ScopeFor(authz.ResourceLeads); scope != nil {
		if !lead.IsAssignedTo(actor.UserID) {
			return nil, shared.ErrNotFound
		}
	}
	return lead, nil
}
