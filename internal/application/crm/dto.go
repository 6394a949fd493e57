package crm

import (
	"time"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Lead DTOs
// =============================================================================

// CreateLeadRequest represents a request to create a new lead
type CreateLeadRequest struct {
	CompanyName    string           `json:"company_name" binding:"required,min=1,max=200"`
	ContactPerson  string           `json:"contact_person" binding:"required,min=1,max=200"`
	Email          string           `json:"email" binding:"omitempty,email,max=255"`
	Phone          string           `json:"phone" binding:"max=50"`
	Source         string           `json:"source" binding:"required,oneof=website referral cold_call social_media trade_show other"`
	Notes          string           `json:"notes"`
	EstimatedValue *decimal.Decimal `json:"estimated_value"`
	AssignedTo     *uuid.UUID       `json:"assigned_to"`
}

// UpdateLeadRequest represents a request to update a lead
type UpdateLeadRequest struct {
	CompanyName    *string          `json:"company_name" binding:"omitempty,min=1,max=200"`
	ContactPerson  *string          `json:"contact_person" binding:"omitempty,min=1,max=200"`
	Email          *string          `json:"email" binding:"omitempty,email,max=255"`
	Phone          *string          `json:"phone" binding:"omitempty,max=50"`
	Notes          *string          `json:"notes"`
	EstimatedValue *decimal.Decimal `json:"estimated_value"`
	Status         *string          `json:"status" binding:"omitempty,oneof=new in_progress converted lost"`
	AssignedTo     *uuid.UUID       `json:"assigned_to"`
}

// LeadListFilter contains list parameters for leads
type LeadListFilter struct {
	Search     string     `form:"search"`
	Status     string     `form:"status" binding:"omitempty,oneof=new in_progress converted lost"`
	Source     string     `form:"source" binding:"omitempty,oneof=website referral cold_call social_media trade_show other"`
	AssignedTo *uuid.UUID `form:"assigned_to"`
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// LeadResponse represents a lead in API responses
type LeadResponse struct {
	ID             uuid.UUID       `json:"id"`
	CompanyName    string          `json:"company_name"`
	ContactPerson  string          `json:"contact_person"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	Status         string          `json:"status"`
	Source         string          `json:"source"`
	AssignedTo     *uuid.UUID      `json:"assigned_to,omitempty"`
	Notes          string          `json:"notes"`
	EstimatedValue decimal.Decimal `json:"estimated_value"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ToLeadResponse converts a domain Lead to a LeadResponse
func ToLeadResponse(l *crm.Lead) LeadResponse {
	return LeadResponse{
		ID:             l.ID,
		CompanyName:    l.CompanyName,
		ContactPerson:  l.ContactPerson,
		Email:          l.Email,
		Phone:          l.Phone,
		Status:         string(l.Status),
		Source:         string(l.Source),
		AssignedTo:     l.AssignedTo,
		Notes:          l.Notes,
		EstimatedValue: l.EstimatedValue,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}
}

// =============================================================================
// Client DTOs
// =============================================================================

// CreateClientRequest represents a request to create a new client
type CreateClientRequest struct {
	CompanyName    string     `json:"company_name" binding:"required,min=1,max=200"`
	ContactPerson  string     `json:"contact_person" binding:"required,min=1,max=200"`
	Email          string     `json:"email" binding:"omitempty,email,max=255"`
	Phone          string     `json:"phone" binding:"max=50"`
	Address        string     `json:"address" binding:"max=500"`
	City           string     `json:"city" binding:"max=100"`
	Country        string     `json:"country" binding:"max=100"`
	TaxID          string     `json:"tax_id" binding:"max=100"`
	AccountManager *uuid.UUID `json:"account_manager"`
}

// UpdateClientRequest represents a request to update a client
type UpdateClientRequest struct {
	CompanyName    *string    `json:"company_name" binding:"omitempty,min=1,max=200"`
	ContactPerson  *string    `json:"contact_person" binding:"omitempty,min=1,max=200"`
	Email          *string    `json:"email" binding:"omitempty,email,max=255"`
	Phone          *string    `json:"phone" binding:"omitempty,max=50"`
	Address        *string    `json:"address" binding:"omitempty,max=500"`
	City           *string    `json:"city" binding:"omitempty,max=100"`
	Country        *string    `json:"country" binding:"omitempty,max=100"`
	TaxID          *string    `json:"tax_id" binding:"omitempty,max=100"`
	AccountManager *uuid.UUID `json:"account_manager"`
}

// ClientListFilter contains list parameters for clients
type ClientListFilter struct {
	Search         string     `form:"search"`
	Country        string     `form:"country"`
	AccountManager *uuid.UUID `form:"account_manager"`
	Page           int        `form:"page"`
	PageSize       int        `form:"page_size"`
	OrderBy        string     `form:"order_by"`
	OrderDir       string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ClientResponse represents a client in API responses
type ClientResponse struct {
	ID             uuid.UUID  `json:"id"`
	CompanyName    string     `json:"company_name"`
	ContactPerson  string     `json:"contact_person"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone"`
	Address        string     `json:"address"`
	City           string     `json:"city"`
	Country        string     `json:"country"`
	TaxID          string     `json:"tax_id"`
	AccountManager *uuid.UUID `json:"account_manager,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// ToClientResponse converts a domain Client to a ClientResponse
func ToClientResponse(c *crm.Client) ClientResponse {
	return ClientResponse{
		ID:             c.ID,
		CompanyName:    c.CompanyName,
		ContactPerson:  c.ContactPerson,
		Email:          c.Email,
		Phone:          c.Phone,
		Address:        c.Address,
		City:           c.City,
		Country:        c.Country,
		TaxID:          c.TaxID,
		AccountManager: c.AccountManager,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

// =============================================================================
// Service ticket DTOs
// =============================================================================

// CreateTicketRequest represents a request to open a new service ticket
type CreateTicketRequest struct {
	ClientID    uuid.UUID `json:"client_id" binding:"required"`
	Title       string    `json:"title" binding:"required,min=1,max=300"`
	Description string    `json:"description"`
	Priority    string    `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
}

// UpdateTicketRequest represents a request to update a ticket
type UpdateTicketRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=300"`
	Description *string `json:"description"`
	Priority    *string `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
}

// AssignTicketRequest assigns a ticket to an engineer
type AssignTicketRequest struct {
	AssignedTo uuid.UUID `json:"assigned_to" binding:"required"`
}

// TicketListFilter contains list parameters for service tickets
type TicketListFilter struct {
	Search     string     `form:"search"`
	ClientID   *uuid.UUID `form:"client_id"`
	Status     string     `form:"status" binding:"omitempty,oneof=open assigned in_progress resolved closed"`
	Priority   string     `form:"priority" binding:"omitempty,oneof=low medium high urgent"`
	AssignedTo *uuid.UUID `form:"assigned_to"`
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// TicketResponse represents a service ticket in API responses
type TicketResponse struct {
	ID           uuid.UUID  `json:"id"`
	TicketNumber string     `json:"ticket_number"`
	ClientID     uuid.UUID  `json:"client_id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Status       string     `json:"status"`
	Priority     string     `json:"priority"`
	AssignedTo   *uuid.UUID `json:"assigned_to,omitempty"`
	ResolvedAt   *time.Time `json:"resolved_at,omitempty"`
	CreatedBy    uuid.UUID  `json:"created_by"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// ToTicketResponse converts a domain ServiceTicket to a TicketResponse
func ToTicketResponse(t *crm.ServiceTicket) TicketResponse {
	return TicketResponse{
		ID:           t.ID,
		TicketNumber: t.TicketNumber,
		ClientID:     t.ClientID,
		Title:        t.Title,
		Description:  t.Description,
		Status:       string(t.Status),
		Priority:     string(t.Priority),
		AssignedTo:   t.AssignedTo,
		ResolvedAt:   t.ResolvedAt,
		CreatedBy:    t.CreatedBy,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

// =============================================================================
// Call log DTOs
// =============================================================================

// CreateCallLogRequest represents a request to record an interaction.
// Exactly one of lead_id and client_id must be set.
type CreateCallLogRequest struct {
	LeadID       *uuid.UUID `json:"lead_id"`
	ClientID     *uuid.UUID `json:"client_id"`
	Type         string     `json:"type" binding:"required,oneof=call email meeting note"`
	Subject      string     `json:"subject" binding:"required,min=1,max=300"`
	Notes        string     `json:"notes"`
	ScheduledFor *time.Time `json:"scheduled_for"`
}

// UpdateCallLogRequest represents a request to update a call log
type UpdateCallLogRequest struct {
	Type         *string    `json:"type" binding:"omitempty,oneof=call email meeting note"`
	Subject      *string    `json:"subject" binding:"omitempty,min=1,max=300"`
	Notes        *string    `json:"notes"`
	ScheduledFor *time.Time `json:"scheduled_for"`
	Completed    *bool      `json:"completed"`
}

// CallLogListFilter contains list parameters for call logs
type CallLogListFilter struct {
	Search    string     `form:"search"`
	LeadID    *uuid.UUID `form:"lead_id"`
	ClientID  *uuid.UUID `form:"client_id"`
	Type      string     `form:"type" binding:"omitempty,oneof=call email meeting note"`
	Completed *bool      `form:"completed"`
	Page      int        `form:"page"`
	PageSize  int        `form:"page_size"`
	OrderBy   string     `form:"order_by"`
	OrderDir  string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// CallLogResponse represents a call log in API responses
type CallLogResponse struct {
	ID           uuid.UUID  `json:"id"`
	LeadID       *uuid.UUID `json:"lead_id,omitempty"`
	ClientID     *uuid.UUID `json:"client_id,omitempty"`
	Type         string     `json:"type"`
	Subject      string     `json:"subject"`
	Notes        string     `json:"notes"`
	ScheduledFor *time.Time `json:"scheduled_for,omitempty"`
	Completed    bool       `json:"completed"`
	CreatedBy    uuid.UUID  `json:"created_by"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// ToCallLogResponse converts a domain CallLog to a CallLogResponse
func ToCallLogResponse(c *crm.CallLog) CallLogResponse {
	return CallLogResponse{
		ID:           c.ID,
		LeadID:       c.LeadID,
		ClientID:     c.ClientID,
		Type:         string(c.Type),
		Subject:      c.Subject,
		Notes:        c.Notes,
		ScheduledFor: c.ScheduledFor,
		Completed:    c.Completed,
		CreatedBy:    c.CreatedBy,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
