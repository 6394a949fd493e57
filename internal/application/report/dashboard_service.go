package report

import (
	"context"

	"github.com/crm/backend/internal/domain/authz"
	"github.com/crm/backend/internal/domain/billing"
	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DashboardMetrics aggregates the numbers shown on the landing dashboard
type DashboardMetrics struct {
	Leads          StatusCounts    `json:"leads"`
	ServiceTickets StatusCounts    `json:"service_tickets"`
	Quotations     StatusCounts    `json:"quotations"`
	Invoices       StatusCounts    `json:"invoices"`
	Clients        int64           `json:"clients"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	Outstanding    decimal.Decimal `json:"outstanding"`
}

// StatusCounts holds a total and a per-status breakdown
type StatusCounts struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"by_status"`
}

// DashboardService computes dashboard metrics across the CRM and billing
// aggregates
type DashboardService struct {
	leadRepo      crm.LeadRepository
	clientRepo    crm.ClientRepository
	ticketRepo    crm.ServiceTicketRepository
	quotationRepo billing.QuotationRepository
	invoiceRepo   billing.InvoiceRepository
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	leadRepo crm.LeadRepository,
	clientRepo crm.ClientRepository,
	ticketRepo crm.ServiceTicketRepository,
	quotationRepo billing.QuotationRepository,
	invoiceRepo billing.InvoiceRepository,
) *DashboardService {
	return &DashboardService{
		leadRepo:      leadRepo,
		clientRepo:    clientRepo,
		ticketRepo:    ticketRepo,
		quotationRepo: quotationRepo,
		invoiceRepo:   invoiceRepo,
	}
}

// Metrics returns the dashboard metrics. Every authenticated user can see
// them; the per-entity numbers are whole-company, not scoped.
func (s *DashboardService) Metrics(ctx context.Context, actor authz.Actor) (*DashboardMetrics, error) {
	metrics := &DashboardMetrics{}

	leads, err := s.leadStatusCounts(ctx)
	if err != nil {
		return nil, err
	}
	metrics.Leads = leads

	tickets, err := s.ticketStatusCounts(ctx)
	if err != nil {
		return nil, err
	}
	metrics.ServiceTickets = tickets

	quotations, err := s.quotationStatusCounts(ctx)
	if err != nil {
		return nil, err
	}
	metrics.Quotations = quotations

	invoices, err := s.invoiceStatusCounts(ctx)
	if err != nil {
		return nil, err
	}
	metrics.Invoices = invoices

	clients, err := s.clientRepo.Count(ctx, crm.ClientFilter{Filter: shared.Filter{}})
	if err != nil {
		return nil, err
	}
	metrics.Clients = clients

	revenue, err := s.invoiceRepo.TotalPaidAmount(ctx)
	if err != nil {
		return nil, err
	}
	metrics.TotalRevenue = revenue

	outstanding, err := s.invoiceRepo.TotalOutstandingAmount(ctx)
	if err != nil {
		return nil, err
	}
	metrics.Outstanding = outstanding

	return metrics, nil
}

func (s *DashboardService) leadStatusCounts(ctx context.Context) (StatusCounts, error) {
	statuses := []crm.LeadStatus{
		crm.LeadStatusNew, crm.LeadStatusInProgress,
		crm.LeadStatusConverted, crm.LeadStatusLost,
	}
	counts := StatusCounts{ByStatus: make(map[string]int64, len(statuses))}
	for _, status := range statuses {
		n, err := s.leadRepo.CountByStatus(ctx, status)
		if err != nil {
			return StatusCounts{}, err
		}
		counts.ByStatus[string(status)] = n
		counts.Total += n
	}
	return counts, nil
}

func (s *DashboardService) ticketStatusCounts(ctx context.Context) (StatusCounts, error) {
	statuses := []crm.TicketStatus{
		crm.TicketStatusOpen, crm.TicketStatusAssigned, crm.TicketStatusInProgress,
		crm.TicketStatusResolved, crm.TicketStatusClosed,
	}
	counts := StatusCounts{ByStatus: make(map[string]int64, len(statuses))}
	for _, status := range statuses {
		n, err := s.ticketRepo.CountByStatus(ctx, status)
		if err != nil {
			return StatusCounts{}, err
		}
		counts.ByStatus[string(status)] = n
		counts.Total += n
	}
	return counts, nil
}

func (s *DashboardService) quotationStatusCounts(ctx context.Context) (StatusCounts, error) {
	statuses := []billing.QuotationStatus{
		billing.QuotationStatusDraft, billing.QuotationStatusPendingApproval,
		billing.QuotationStatusApproved, billing.QuotationStatusRejected,
		billing.QuotationStatusConverted,
	}
	counts := StatusCounts{ByStatus: make(map[string]int64, len(statuses))}
	for _, status := range statuses {
		n, err := s.quotationRepo.CountByStatus(ctx, status)
		if err != nil {
			return StatusCounts{}, err
		}
		counts.ByStatus[string(status)] = n
		counts.Total += n
	}
	return counts, nil
}

func (s *DashboardService) invoiceStatusCounts(ctx context.Context) (StatusCounts, error) {
	statuses := []billing.InvoiceStatus{
		billing.InvoiceStatusDraft, billing.InvoiceStatusSent, billing.InvoiceStatusPaid,
		billing.InvoiceStatusOverdue, billing.InvoiceStatusCancelled,
	}
	counts := StatusCounts{ByStatus: make(map[string]int64, len(statuses))}
	for _, status := range statuses {
		n, err := s.invoiceRepo.CountByStatus(ctx, status)
		if err != nil {
			return StatusCounts{}, err
		}
		counts.ByStatus[string(status)] = n
		counts.Total += n
	}
	return counts, nil
}
