package models

import (
	"time"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LeadModel is the persistence model for the Lead aggregate root.
type LeadModel struct {
	AggregateModel
	CompanyName    string          `gorm:"type:varchar(200);not null;index"`
	ContactPerson  string          `gorm:"type:varchar(200);not null"`
	Email          string          `gorm:"type:varchar(255)"`
	Phone          string          `gorm:"type:varchar(50)"`
	Status         crm.LeadStatus  `gorm:"type:varchar(20);not null;default:'new';index"`
	Source         crm.LeadSource  `gorm:"type:varchar(30);not null"`
	AssignedTo     *uuid.UUID      `gorm:"type:uuid;index"`
	Notes          string          `gorm:"type:text"`
	EstimatedValue decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (LeadModel) TableName() string {
	return "leads"
}

// ToDomain converts the persistence model to a domain Lead entity.
func (m *LeadModel) ToDomain() *crm.Lead {
	return &crm.Lead{
		BaseAggregateRoot: m.aggregateRoot(),
		CompanyName:       m.CompanyName,
		ContactPerson:     m.ContactPerson,
		Email:             m.Email,
		Phone:             m.Phone,
		Status:            m.Status,
		Source:            m.Source,
		AssignedTo:        m.AssignedTo,
		Notes:             m.Notes,
		EstimatedValue:    m.EstimatedValue,
	}
}

// FromDomain populates the persistence model from a domain Lead entity.
func (m *LeadModel) FromDomain(l *crm.Lead) {
	m.FromDomainAggregateRoot(l.BaseAggregateRoot)
	m.CompanyName = l.CompanyName
	m.ContactPerson = l.ContactPerson
	m.Email = l.Email
	m.Phone = l.Phone
	m.Status = l.Status
	m.Source = l.Source
	m.AssignedTo = l.AssignedTo
	m.Notes = l.Notes
	m.EstimatedValue = l.EstimatedValue
}

// LeadModelFromDomain creates a new persistence model from a domain Lead.
func LeadModelFromDomain(l *crm.Lead) *LeadModel {
	m := &LeadModel{}
	m.FromDomain(l)
	return m
}

// ClientModel is the persistence model for the Client aggregate root.
type ClientModel struct {
	AggregateModel
	CompanyName    string     `gorm:"type:varchar(200);not null;uniqueIndex"`
	ContactPerson  string     `gorm:"type:varchar(200);not null"`
	Email          string     `gorm:"type:varchar(255)"`
	Phone          string     `gorm:"type:varchar(50)"`
	Address        string     `gorm:"type:varchar(500)"`
	City           string     `gorm:"type:varchar(100)"`
	Country        string     `gorm:"type:varchar(100);index"`
	TaxID          string     `gorm:"type:varchar(100)"`
	AccountManager *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (ClientModel) TableName() string {
	return "clients"
}

// ToDomain converts the persistence model to a domain Client entity.
func (m *ClientModel) ToDomain() *crm.Client {
	return &crm.Client{
		BaseAggregateRoot: m.aggregateRoot(),
		CompanyName:       m.CompanyName,
		ContactPerson:     m.ContactPerson,
		Email:             m.Email,
		Phone:             m.Phone,
		Address:           m.Address,
		City:              m.City,
		Country:           m.Country,
		TaxID:             m.TaxID,
		AccountManager:    m.AccountManager,
	}
}

// FromDomain populates the persistence model from a domain Client entity.
func (m *ClientModel) FromDomain(c *crm.Client) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.CompanyName = c.CompanyName
	m.ContactPerson = c.ContactPerson
	m.Email = c.Email
	m.Phone = c.Phone
	m.Address = c.Address
	m.City = c.City
	m.Country = c.Country
	m.TaxID = c.TaxID
	m.AccountManager = c.AccountManager
}

// ClientModelFromDomain creates a new persistence model from a domain Client.
func ClientModelFromDomain(c *crm.Client) *ClientModel {
	m := &ClientModel{}
	m.FromDomain(c)
	return m
}

// ServiceTicketModel is the persistence model for the ServiceTicket aggregate root.
type ServiceTicketModel struct {
	AggregateModel
	TicketNumber string             `gorm:"type:varchar(50);not null;uniqueIndex"`
	ClientID     uuid.UUID          `gorm:"type:uuid;not null;index"`
	Title        string             `gorm:"type:varchar(300);not null"`
	Description  string             `gorm:"type:text"`
	Status       crm.TicketStatus   `gorm:"type:varchar(20);not null;default:'open';index"`
	Priority     crm.TicketPriority `gorm:"type:varchar(20);not null;default:'medium';index"`
	AssignedTo   *uuid.UUID         `gorm:"type:uuid;index"`
	ResolvedAt   *time.Time
	CreatedBy    uuid.UUID `gorm:"type:uuid;not null"`
}

// TableName returns the table name for GORM
func (ServiceTicketModel) TableName() string {
	return "service_tickets"
}

// ToDomain converts the persistence model to a domain ServiceTicket entity.
func (m *ServiceTicketModel) ToDomain() *crm.ServiceTicket {
	return &crm.ServiceTicket{
		BaseAggregateRoot: m.aggregateRoot(),
		TicketNumber:      m.TicketNumber,
		ClientID:          m.ClientID,
		Title:             m.Title,
		Description:       m.Description,
		Status:            m.Status,
		Priority:          m.Priority,
		AssignedTo:        m.AssignedTo,
		ResolvedAt:        m.ResolvedAt,
		CreatedBy:         m.CreatedBy,
	}
}

// FromDomain populates the persistence model from a domain ServiceTicket entity.
func (m *ServiceTicketModel) FromDomain(t *crm.ServiceTicket) {
	m.FromDomainAggregateRoot(t.BaseAggregateRoot)
	m.TicketNumber = t.TicketNumber
	m.ClientID = t.ClientID
	m.Title = t.Title
	m.Description = t.Description
	m.Status = t.Status
	m.Priority = t.Priority
	m.AssignedTo = t.AssignedTo
	m.ResolvedAt = t.ResolvedAt
	m.CreatedBy = t.CreatedBy
}

// ServiceTicketModelFromDomain creates a new persistence model from a domain ServiceTicket.
func ServiceTicketModelFromDomain(t *crm.ServiceTicket) *ServiceTicketModel {
	m := &ServiceTicketModel{}
	m.FromDomain(t)
	return m
}

// CallLogModel is the persistence model for the CallLog aggregate root.
type CallLogModel struct {
	AggregateModel
	LeadID       *uuid.UUID   `gorm:"type:uuid;index"`
	ClientID     *uuid.UUID   `gorm:"type:uuid;index"`
	Type         crm.CallType `gorm:"type:varchar(20);not null;index"`
	Subject      string       `gorm:"type:varchar(300);not null"`
	Notes        string       `gorm:"type:text"`
	ScheduledFor *time.Time   `gorm:"index"`
	Completed    bool         `gorm:"not null;default:false"`
	CreatedBy    uuid.UUID    `gorm:"type:uuid;not null"`
}

// TableName returns the table name for GORM
func (CallLogModel) TableName() string {
	return "call_logs"
}

// ToDomain converts the persistence model to a domain CallLog entity.
func (m *CallLogModel) ToDomain() *crm.CallLog {
	return &crm.CallLog{
		BaseAggregateRoot: m.aggregateRoot(),
		LeadID:            m.LeadID,
		ClientID:          m.ClientID,
		Type:              m.Type,
		Subject:           m.Subject,
		Notes:             m.Notes,
		ScheduledFor:      m.ScheduledFor,
		Completed:         m.Completed,
		CreatedBy:         m.CreatedBy,
	}
}

// FromDomain populates the persistence model from a domain CallLog entity.
func (m *CallLogModel) FromDomain(c *crm.CallLog) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.LeadID = c.LeadID
	m.ClientID = c.ClientID
	m.Type = c.Type
	m.Subject = c.Subject
	m.Notes = c.Notes
	m.ScheduledFor = c.ScheduledFor
	m.Completed = c.Completed
	m.CreatedBy = c.CreatedBy
}

// CallLogModelFromDomain creates a new persistence model from a domain CallLog.
func CallLogModelFromDomain(c *crm.CallLog) *CallLogModel {
	m := &CallLogModel{}
	m.FromDomain(c)
	return m
}
