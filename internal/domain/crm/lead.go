package crm

import (
	"strings"
	"time"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LeadStatus represents the status of a sales lead
type LeadStatus string

const (
	LeadStatusNew        LeadStatus = "new"
	LeadStatusInProgress LeadStatus = "in_progress"
	LeadStatusConverted  LeadStatus = "converted"
	LeadStatusLost       LeadStatus = "lost"
)

// IsValid checks if the status is a valid LeadStatus
func (s LeadStatus) IsValid() bool {
	switch s {
	case LeadStatusNew, LeadStatusInProgress, LeadStatusConverted, LeadStatusLost:
		return true
	}
	return false
}

// String returns the string representation of LeadStatus
func (s LeadStatus) String() string {
	return string(s)
}

// IsTerminal returns true if the lead is in a terminal state
func (s LeadStatus) IsTerminal() bool {
	return s == LeadStatusConverted || s == LeadStatusLost
}

// LeadSource represents where a lead originated from
type LeadSource string

const (
	LeadSourceWebsite     LeadSource = "website"
	LeadSourceReferral    LeadSource = "referral"
	LeadSourceColdCall    LeadSource = "cold_call"
	LeadSourceSocialMedia LeadSource = "social_media"
	LeadSourceTradeShow   LeadSource = "trade_show"
	LeadSourceOther       LeadSource = "other"
)

// IsValid checks if the source is a valid LeadSource
func (s LeadSource) IsValid() bool {
	switch s {
	case LeadSourceWebsite, LeadSourceReferral, LeadSourceColdCall,
		LeadSourceSocialMedia, LeadSourceTradeShow, LeadSourceOther:
		return true
	}
	return false
}

// Lead represents a potential sale being tracked by the sales team.
// It is the aggregate root for lead-related operations.
type Lead struct {
	shared.BaseAggregateRoot
	CompanyName    string
	ContactPerson  string
	Email          string
	Phone          string
	Status         LeadStatus
	Source         LeadSource
	AssignedTo     *uuid.UUID
	Notes          string
	EstimatedValue decimal.Decimal
}

// NewLead creates a new lead in the "new" status
func NewLead(companyName, contactPerson string, source LeadSource) (*Lead, error) {
	companyName = strings.TrimSpace(companyName)
	contactPerson = strings.TrimSpace(contactPerson)

	if companyName == "" {
		return nil, shared.NewDomainError("INVALID_COMPANY_NAME", "Company name cannot be empty")
	}
	if len(companyName) > 200 {
		return nil, shared.NewDomainError("INVALID_COMPANY_NAME", "Company name cannot exceed 200 characters")
	}
	if contactPerson == "" {
		return nil, shared.NewDomainError("INVALID_CONTACT_PERSON", "Contact person cannot be empty")
	}
	if !source.IsValid() {
		return nil, shared.NewDomainError("INVALID_LEAD_SOURCE", "Lead source is not valid")
	}

	lead := &Lead{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CompanyName:       companyName,
		ContactPerson:     contactPerson,
		Status:            LeadStatusNew,
		Source:            source,
		EstimatedValue:    decimal.Zero,
	}

	lead.AddDomainEvent(NewLeadCreatedEvent(lead))

	return lead, nil
}

// Update updates the lead's contact details
func (l *Lead) Update(companyName, contactPerson, email, phone, notes string) error {
	companyName = strings.TrimSpace(companyName)
	contactPerson = strings.TrimSpace(contactPerson)

	if companyName == "" {
		return shared.NewDomainError("INVALID_COMPANY_NAME", "Company name cannot be empty")
	}
	if len(companyName) > 200 {
		return shared.NewDomainError("INVALID_COMPANY_NAME", "Company name cannot exceed 200 characters")
	}
	if contactPerson == "" {
		return shared.NewDomainError("INVALID_CONTACT_PERSON", "Contact person cannot be empty")
	}

	l.CompanyName = companyName
	l.ContactPerson = contactPerson
	l.Email = strings.ToLower(strings.TrimSpace(email))
	l.Phone = strings.TrimSpace(phone)
	l.Notes = notes
	l.UpdatedAt = time.Now()
	l.IncrementVersion()

	return nil
}

// SetEstimatedValue sets the estimated deal value
func (l *Lead) SetEstimatedValue(value decimal.Decimal) error {
	if value.IsNegative() {
		return shared.NewDomainError("INVALID_ESTIMATED_VALUE", "Estimated value cannot be negative")
	}

	l.EstimatedValue = value
	l.UpdatedAt = time.Now()
	l.IncrementVersion()

	return nil
}

// Assign assigns the lead to a sales user
func (l *Lead) Assign(userID uuid.UUID) error {
	if userID == uuid.Nil {
		return shared.NewDomainError("INVALID_ASSIGNEE", "Assignee ID cannot be empty")
	}

	l.AssignedTo = &userID
	l.UpdatedAt = time.Now()
	l.IncrementVersion()

	l.AddDomainEvent(NewLeadAssignedEvent(l, userID))

	return nil
}

// ChangeStatus moves the lead to a new status.
// Transitions are recorded but not restricted to a one-way machine.
func (l *Lead) ChangeStatus(newStatus LeadStatus) error {
	if !newStatus.IsValid() {
		return shared.NewDomainError("INVALID_LEAD_STATUS", "Lead status is not valid")
	}
	if l.Status == newStatus {
		return nil
	}

	oldStatus := l.Status
	l.Status = newStatus
	l.UpdatedAt = time.Now()
	l.IncrementVersion()

	l.AddDomainEvent(NewLeadStatusChangedEvent(l, oldStatus, newStatus))

	return nil
}

// MarkConverted marks the lead as converted into a client
func (l *Lead) MarkConverted() error {
	return l.ChangeStatus(LeadStatusConverted)
}

// MarkLost marks the lead as lost
func (l *Lead) MarkLost() error {
	return l.ChangeStatus(LeadStatusLost)
}

// IsAssignedTo returns true if the lead is assigned to the given user
func (l *Lead) IsAssignedTo(userID uuid.UUID) bool {
	return l.AssignedTo != nil && *l.AssignedTo == userID
}
