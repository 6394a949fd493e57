package crm

import (
	"context"

	"github.com/crm/backend/internal/domain/authz"
	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TicketService handles service ticket operations
type TicketService struct {
	ticketRepo crm.ServiceTicketRepository
	clientRepo crm.ClientRepository
}

// NewTicketService creates a new TicketService
func NewTicketService(ticketRepo crm.ServiceTicketRepository, clientRepo crm.ClientRepository) *TicketService {
	return &TicketService{
		ticketRepo: ticketRepo,
		clientRepo: clientRepo,
	}
}

// Create opens a new service ticket against a client
func (s *TicketService) Create(ctx context.Context, actor authz.Actor, req CreateTicketRequest) (*TicketResponse, error) {
	if !actor.Can(authz.ResourceServiceTickets, authz.ActionCreate) {
		return nil, shared.ErrForbidden
	}

	if _, err := s.clientRepo.FindByID(ctx, req.ClientID); err != nil {
		if err == shared.ErrNotFound {
			return nil, shared.NewDomainError("INVALID_CLIENT", "Client does not exist")
		}
		return nil, err
	}

	number, err := s.ticketRepo.NextTicketNumber(ctx)
	if err != nil {
		return nil, err
	}

	priority := crm.TicketPriorityMedium
	if req.Priority != "" {
		priority = crm.TicketPriority(req.Priority)
	}

	ticket, err := crm.NewServiceTicket(number, req.ClientID, req.Title, req.Description, priority, actor.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.ticketRepo.Save(ctx, ticket); err != nil {
		return nil, err
	}

	logger.L(ctx).Info("Service ticket opened",
		zap.String("ticket_number", ticket.TicketNumber),
		zap.String("client_id", ticket.ClientID.String()),
	)

	response := ToTicketResponse(ticket)
	return &response, nil
}

// GetByID retrieves a ticket, enforcing the actor's visibility scope
func (s *TicketService) GetByID(ctx context.Context, actor authz.Actor, ticketID uuid.UUID) (*TicketResponse, error) {
	if !actor.Can(authz.ResourceServiceTickets, authz.ActionRead) {
		return nil, shared.ErrForbidden
	}

	ticket, err := s.findVisible(ctx, actor, ticketID)
	if err != nil {
		return nil, err
	}

	response := ToTicketResponse(ticket)
	return &response, nil
}

// List retrieves tickets matching the filter, within the actor's scope
func (s *TicketService) List(ctx context.Context, actor authz.Actor, filter TicketListFilter) ([]TicketResponse, int64, error) {
	if !actor.Can(authz.ResourceServiceTickets, authz.ActionRead) {
		return nil, 0, shared.ErrForbidden
	}

	f := crm.ServiceTicketFilter{Filter: shared.DefaultFilter()}
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
	if filter.Status != "" {
		status := crm.TicketStatus(filter.Status)
		f.Status = &status
	}
	if filter.Priority != "" {
		priority := crm.TicketPriority(filter.Priority)
		f.Priority = &priority
	}
	if filter.AssignedTo != nil {
		f.AssignedTo = filter.AssignedTo
	}

	// The visibility scope overrides any requested assignee filter
	if scope := actor.ScopeFor(authz.ResourceServiceTickets); scope != nil {
		f.AssignedTo = &actor.UserID
	}

	tickets, err := s.ticketRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.ticketRepo.Count(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]TicketResponse, len(tickets))
	for i := range tickets {
		responses[i] = ToTicketResponse(&tickets[i])
	}
	return responses, total, nil
}

// Update updates a ticket's title, description or priority
func (s *TicketService) Update(ctx context.Context, actor authz.Actor, ticketID uuid.UUID, req UpdateTicketRequest) (*TicketResponse, error) {
	if !actor.Can(authz.ResourceServiceTickets, authz.ActionUpdate) {
		return nil, shared.ErrForbidden
	}

	ticket, err := s.findVisible(ctx, actor, ticketID)
	if err != nil {
		return nil, err
	}

	title := ticket.Title
	description := ticket.Description
	priority := ticket.Priority
	if req.Title != nil {
		title = *req.Title
	}
	if req.Description != nil {
		description = *req.Description
	}
	if req.Priority != nil {
		priority = crm.TicketPriority(*req.Priority)
	}
	if err := ticket.Update(title, description, priority); err != nil {
		return nil, err
	}

	if err := s.ticketRepo.Save(ctx, ticket); err != nil {
		return nil, err
	}

	response := ToTicketResponse(ticket)
	return &response, nil
}

// Assign assigns a ticket to an engineer
func (s *TicketService) Assign(ctx context.Context, actor authz.Actor, ticketID uuid.UUID, req AssignTicketRequest) (*TicketResponse, error) {
	if !actor.Can(authz.ResourceServiceTickets, authz.ActionUpdate) {
		return nil, shared.ErrForbidden
	}

	ticket, err := s.findVisible(ctx, actor, ticketID)
	if err != nil {
		return nil, err
	}

	if err := ticket.Assign(req.AssignedTo); err != nil {
		return nil, err
	}

	if err := s.ticketRepo.Save(ctx, ticket); err != nil {
		return nil, err
	}

	logger.L(ctx).Info("Service ticket assigned",
		zap.String("ticket_number", ticket.TicketNumber),
		zap.String("assigned_to", req.AssignedTo.String()),
	)

	response := ToTicketResponse(ticket)
	return &response, nil
}

// Start moves a ticket into in_progress
func (s *TicketService) Start(ctx context.Context, actor authz.Actor, ticketID uuid.UUID) (*TicketResponse, error) {
	return s.transition(ctx, actor, ticketID, (*crm.ServiceTicket).Start)
}

// Resolve marks a ticket as resolved
func (s *TicketService) Resolve(ctx context.Context, actor authz.Actor, ticketID uuid.UUID) (*TicketResponse, error) {
	return s.transition(ctx, actor, ticketID, (*crm.ServiceTicket).Resolve)
}

// Close closes a ticket
func (s *TicketService) Close(ctx context.Context, actor authz.Actor, ticketID uuid.UUID) (*TicketResponse, error) {
	return s.transition(ctx, actor, ticketID, (*crm.ServiceTicket).Close)
}

// Delete deletes a ticket
func (s *TicketService) Delete(ctx context.Context, actor authz.Actor, ticketID uuid.UUID) error {
	if !actor.Can(authz.ResourceServiceTickets, authz.ActionDelete) {
		return shared.ErrForbidden
	}
	return s.ticketRepo.Delete(ctx, ticketID)
}

// transition applies a status change within the actor's scope and saves
func (s *TicketService) transition(ctx context.Context, actor authz.Actor, ticketID uuid.UUID, change func(*crm.ServiceTicket) error) (*TicketResponse, error) {
	if !actor.Can(authz.ResourceServiceTickets, authz.ActionUpdate) {
		return nil, shared.ErrForbidden
	}

	ticket, err := s.findVisible(ctx, actor, ticketID)
	if err != nil {
		return nil, err
	}

	if err := change(ticket); err != nil {
		return nil, err
	}

	if err := s.ticketRepo.Save(ctx, ticket); err != nil {
		return nil, err
	}

	response := ToTicketResponse(ticket)
	return &response, nil
}

// findVisible loads a ticket and verifies it falls within the actor's scope.
// Out-of-scope tickets surface as not found rather than forbidden, so their
// existence is not leaked.
func (s *TicketService) findVisible(ctx context.Context, actor authz.Actor, ticketID uuid.UUID) (*crm.ServiceTicket, error) {
	ticket, err := s.ticketRepo.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if scope := actor.ScopeFor(authz.ResourceServiceTickets); scope != nil {
		if !ticket.IsAssignedTo(actor.UserID) {
			return nil, shared.ErrNotFound
		}
	}
	return ticket, nil
}
