package crm

import (
	"context"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// LeadFilter defines filtering options for lead queries
type LeadFilter struct {
	shared.Filter
	Status     *LeadStatus // Filter by status
	Source     *LeadSource // Filter by source
	AssignedTo *uuid.UUID  // Filter by assignee (visibility scope)
}

// LeadRepository defines the interface for lead persistence
type LeadRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Lead, error)
	FindAll(ctx context.Context, filter LeadFilter) ([]Lead, error)
	Save(ctx context.Context, lead *Lead) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter LeadFilter) (int64, error)
	CountByStatus(ctx context.Context, status LeadStatus) (int64, error)
}

// ClientFilter defines filtering options for client queries
type ClientFilter struct {
	shared.Filter
	AccountManager *uuid.UUID // Filter by account manager
	Country        *string    // Filter by country
}

// ClientRepository defines the interface for client persistence
type ClientRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Client, error)
	FindAll(ctx context.Context, filter ClientFilter) ([]Client, error)
	Save(ctx context.Context, client *Client) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter ClientFilter) (int64, error)
	ExistsByCompanyName(ctx context.Context, companyName string) (bool, error)
}

// ServiceTicketFilter defines filtering options for ticket queries
type ServiceTicketFilter struct {
	shared.Filter
	ClientID   *uuid.UUID      // Filter by client
	Status     *TicketStatus   // Filter by status
	Priority   *TicketPriority // Filter by priority
	AssignedTo *uuid.UUID      // Filter by assignee (visibility scope)
}

// ServiceTicketRepository defines the interface for service ticket persistence
type ServiceTicketRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ServiceTicket, error)
	FindByTicketNumber(ctx context.Context, ticketNumber string) (*ServiceTicket, error)
	FindAll(ctx context.Context, filter ServiceTicketFilter) ([]ServiceTicket, error)
	Save(ctx context.Context, ticket *ServiceTicket) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter ServiceTicketFilter) (int64, error)
	CountByStatus(ctx context.Context, status TicketStatus) (int64, error)
	NextTicketNumber(ctx context.Context) (string, error)
}

// CallLogFilter defines filtering options for call log queries
type CallLogFilter struct {
	shared.Filter
	LeadID    *uuid.UUID // Filter by lead
	ClientID  *uuid.UUID // Filter by client
	Type      *CallType  // Filter by interaction type
	Completed *bool      // Filter by completion
}

// CallLogRepository defines the interface for call log persistence
type CallLogRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CallLog, error)
	FindAll(ctx context.Context, filter CallLogFilter) ([]CallLog, error)
	Save(ctx context.Context, log *CallLog) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter CallLogFilter) (int64, error)
}
