package models

import (
	"time"

	"github.com/crm/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuotationModel is the persistence model for the Quotation aggregate root.
type QuotationModel struct {
	AggregateModel
	QuotationNumber string                  `gorm:"type:varchar(50);not null;uniqueIndex"`
	ClientID        uuid.UUID               `gorm:"type:uuid;not null;index"`
	LeadID          *uuid.UUID              `gorm:"type:uuid;index"`
	Status          billing.QuotationStatus `gorm:"type:varchar(20);not null;default:'draft';index"`
	Items           billing.LineItems       `gorm:"type:jsonb;default:'[]'"`
	Subtotal        decimal.Decimal         `gorm:"type:decimal(18,4);not null"`
	TaxRate         decimal.Decimal         `gorm:"type:decimal(8,4);not null"`
	TaxAmount       decimal.Decimal         `gorm:"type:decimal(18,4);not null"`
	Total           decimal.Decimal         `gorm:"type:decimal(18,4);not null"`
	ValidUntil      *time.Time              `gorm:"index"`
	Notes           string                  `gorm:"type:text"`
	CreatedBy       uuid.UUID               `gorm:"type:uuid;not null;index"`
	ApprovedBy      *uuid.UUID              `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (QuotationModel) TableName() string {
	return "quotations"
}

// ToDomain converts the persistence model to a domain Quotation entity.
func (m *QuotationModel) ToDomain() *billing.Quotation {
	return &billing.Quotation{
		BaseAggregateRoot: m.aggregateRoot(),
		QuotationNumber:   m.QuotationNumber,
		ClientID:          m.ClientID,
		LeadID:            m.LeadID,
		Status:            m.Status,
		Items:             m.Items,
		Subtotal:          m.Subtotal,
		TaxRate:           m.TaxRate,
		TaxAmount:         m.TaxAmount,
		Total:             m.Total,
		ValidUntil:        m.ValidUntil,
		Notes:             m.Notes,
		CreatedBy:         m.CreatedBy,
		ApprovedBy:        m.ApprovedBy,
	}
}

// FromDomain populates the persistence model from a domain Quotation entity.
func (m *QuotationModel) FromDomain(q *billing.Quotation) {
	m.FromDomainAggregateRoot(q.BaseAggregateRoot)
	m.QuotationNumber = q.QuotationNumber
	m.ClientID = q.ClientID
	m.LeadID = q.LeadID
	m.Status = q.Status
	m.Items = q.Items
	m.Subtotal = q.Subtotal
	m.TaxRate = q.TaxRate
	m.TaxAmount = q.TaxAmount
	m.Total = q.Total
	m.ValidUntil = q.ValidUntil
	m.Notes = q.Notes
	m.CreatedBy = q.CreatedBy
	m.ApprovedBy = q.ApprovedBy
}

// QuotationModelFromDomain creates a new persistence model from a domain Quotation.
func QuotationModelFromDomain(q *billing.Quotation) *QuotationModel {
	m := &QuotationModel{}
	m.FromDomain(q)
	return m
}

// InvoiceModel is the persistence model for the Invoice aggregate root.
type InvoiceModel struct {
	AggregateModel
	InvoiceNumber string                `gorm:"type:varchar(50);not null;uniqueIndex"`
	QuotationID   *uuid.UUID            `gorm:"type:uuid;index"`
	ClientID      uuid.UUID             `gorm:"type:uuid;not null;index"`
	Status        billing.InvoiceStatus `gorm:"type:varchar(20);not null;default:'draft';index"`
	PaymentStatus billing.PaymentStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	Items         billing.LineItems     `gorm:"type:jsonb;default:'[]'"`
	Subtotal      decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	TaxRate       decimal.Decimal       `gorm:"type:decimal(8,4);not null"`
	TaxAmount     decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	Total         decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	PaidAmount    decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	DueDate       *time.Time            `gorm:"index"`
	Notes         string                `gorm:"type:text"`
	CreatedBy     uuid.UUID             `gorm:"type:uuid;not null;index"`
	PaidAt        *time.Time
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice entity.
func (m *InvoiceModel) ToDomain() *billing.Invoice {
	return &billing.Invoice{
		BaseAggregateRoot: m.aggregateRoot(),
		InvoiceNumber:     m.InvoiceNumber,
		QuotationID:       m.QuotationID,
		ClientID:          m.ClientID,
		Status:            m.Status,
		PaymentStatus:     m.PaymentStatus,
		Items:             m.Items,
		Subtotal:          m.Subtotal,
		TaxRate:           m.TaxRate,
		TaxAmount:         m.TaxAmount,
		Total:             m.Total,
		PaidAmount:        m.PaidAmount,
		DueDate:           m.DueDate,
		Notes:             m.Notes,
		CreatedBy:         m.CreatedBy,
		PaidAt:            m.PaidAt,
	}
}

// FromDomain populates the persistence model from a domain Invoice entity.
func (m *InvoiceModel) FromDomain(inv *billing.Invoice) {
	m.FromDomainAggregateRoot(inv.BaseAggregateRoot)
	m.InvoiceNumber = inv.InvoiceNumber
	m.QuotationID = inv.QuotationID
	m.ClientID = inv.ClientID
	m.Status = inv.Status
	m.PaymentStatus = inv.PaymentStatus
	m.Items = inv.Items
	m.Subtotal = inv.Subtotal
	m.TaxRate = inv.TaxRate
	m.TaxAmount = inv.TaxAmount
	m.Total = inv.Total
	m.PaidAmount = inv.PaidAmount
	m.DueDate = inv.DueDate
	m.Notes = inv.Notes
	m.CreatedBy = inv.CreatedBy
	m.PaidAt = inv.PaidAt
}

// InvoiceModelFromDomain creates a new persistence model from a domain Invoice.
func InvoiceModelFromDomain(inv *billing.Invoice) *InvoiceModel {
	m := &InvoiceModel{}
	m.FromDomain(inv)
	return m
}

// PaymentModel is the persistence model for the Payment aggregate root.
type PaymentModel struct {
	AggregateModel
	InvoiceID     uuid.UUID             `gorm:"type:uuid;not null;index"`
	Amount        decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	Method        billing.PaymentMethod `gorm:"type:varchar(20);not null;index"`
	TransactionID string                `gorm:"type:varchar(100)"`
	Notes         string                `gorm:"type:text"`
	RecordedBy    uuid.UUID             `gorm:"type:uuid;not null;index"`
	PaymentDate   time.Time             `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment entity.
func (m *PaymentModel) ToDomain() *billing.Payment {
	return &billing.Payment{
		BaseAggregateRoot: m.aggregateRoot(),
		InvoiceID:         m.InvoiceID,
		Amount:            m.Amount,
		Method:            m.Method,
		TransactionID:     m.TransactionID,
		Notes:             m.Notes,
		RecordedBy:        m.RecordedBy,
		PaymentDate:       m.PaymentDate,
	}
}

// FromDomain populates the persistence model from a domain Payment entity.
func (m *PaymentModel) FromDomain(p *billing.Payment) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.InvoiceID = p.InvoiceID
	m.Amount = p.Amount
	m.Method = p.Method
	m.TransactionID = p.TransactionID
	m.Notes = p.Notes
	m.RecordedBy = p.RecordedBy
	m.PaymentDate = p.PaymentDate
}

// PaymentModelFromDomain creates a new persistence model from a domain Payment.
func PaymentModelFromDomain(p *billing.Payment) *PaymentModel {
	m := &PaymentModel{}
	m.FromDomain(p)
	return m
}
