package billing

import (
	"time"

	"github.com/crm/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Line item DTOs
// =============================================================================

// LineItemRequest represents a single billable line in a request
type LineItemRequest struct {
	Description string          `json:"description" binding:"required,min=1,max=500"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
}

// toLineItems converts request lines into domain line items
func toLineItems(reqs []LineItemRequest) (billing.LineItems, error) {
	items := make(billing.LineItems, 0, len(reqs))
	for _, r := range reqs {
		item, err := billing.NewLineItem(r.Description, r.Quantity, r.UnitPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, nil
}

// =============================================================================
// Quotation DTOs
// =============================================================================

// CreateQuotationRequest represents a request to create a new quotation
type CreateQuotationRequest struct {
	ClientID   uuid.UUID         `json:"client_id" binding:"required"`
	LeadID     *uuid.UUID        `json:"lead_id"`
	Items      []LineItemRequest `json:"items" binding:"required,min=1,dive"`
	TaxRate    decimal.Decimal   `json:"tax_rate"`
	ValidUntil *time.Time        `json:"valid_until"`
	Notes      string            `json:"notes"`
}

// UpdateQuotationRequest represents a request to update a draft quotation
type UpdateQuotationRequest struct {
	Items   []LineItemRequest `json:"items" binding:"omitempty,min=1,dive"`
	TaxRate *decimal.Decimal  `json:"tax_rate"`
	Notes   *string           `json:"notes"`
}

// ConvertQuotationRequest converts an approved quotation into an invoice
type ConvertQuotationRequest struct {
	DueDate *time.Time `json:"due_date"`
}

// QuotationListFilter contains list parameters for quotations
type QuotationListFilter struct {
	Search    string     `form:"search"`
	ClientID  *uuid.UUID `form:"client_id"`
	LeadID    *uuid.UUID `form:"lead_id"`
	Status    string     `form:"status" binding:"omitempty,oneof=draft pending_approval approved rejected converted"`
	CreatedBy *uuid.UUID `form:"created_by"`
	Page      int        `form:"page"`
	PageSize  int        `form:"page_size"`
	OrderBy   string     `form:"order_by"`
	OrderDir  string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// QuotationResponse represents a quotation in API responses
type QuotationResponse struct {
	ID              uuid.UUID         `json:"id"`
	QuotationNumber string            `json:"quotation_number"`
	ClientID        uuid.UUID         `json:"client_id"`
	LeadID          *uuid.UUID        `json:"lead_id,omitempty"`
	Status          string            `json:"status"`
	Items           billing.LineItems `json:"items"`
	Subtotal        decimal.Decimal   `json:"subtotal"`
	TaxRate         decimal.Decimal   `json:"tax_rate"`
	TaxAmount       decimal.Decimal   `json:"tax_amount"`
	Total           decimal.Decimal   `json:"total"`
	ValidUntil      *time.Time        `json:"valid_until,omitempty"`
	Notes           string            `json:"notes"`
	CreatedBy       uuid.UUID         `json:"created_by"`
	ApprovedBy      *uuid.UUID        `json:"approved_by,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// ToQuotationResponse converts a domain Quotation to a QuotationResponse
func ToQuotationResponse(q *billing.Quotation) QuotationResponse {
	return QuotationResponse{
		ID:              q.ID,
		QuotationNumber: q.QuotationNumber,
		ClientID:        q.ClientID,
		LeadID:          q.LeadID,
		Status:          string(q.Status),
		Items:           q.Items,
		Subtotal:        q.Subtotal,
		TaxRate:         q.TaxRate,
		TaxAmount:       q.TaxAmount,
		Total:           q.Total,
		ValidUntil:      q.ValidUntil,
		Notes:           q.Notes,
		CreatedBy:       q.CreatedBy,
		ApprovedBy:      q.ApprovedBy,
		CreatedAt:       q.CreatedAt,
		UpdatedAt:       q.UpdatedAt,
	}
}

// =============================================================================
// Invoice DTOs
// =============================================================================

// CreateInvoiceRequest represents a request to create a new invoice
type CreateInvoiceRequest struct {
	ClientID uuid.UUID         `json:"client_id" binding:"required"`
	Items    []LineItemRequest `json:"items" binding:"required,min=1,dive"`
	TaxRate  decimal.Decimal   `json:"tax_rate"`
	DueDate  *time.Time        `json:"due_date"`
	Notes    string            `json:"notes"`
}

// UpdateInvoiceRequest represents a request to update a draft invoice
type UpdateInvoiceRequest struct {
	Items   []LineItemRequest `json:"items" binding:"omitempty,min=1,dive"`
	TaxRate *decimal.Decimal  `json:"tax_rate"`
	Notes   *string           `json:"notes"`
}

// InvoiceListFilter contains list parameters for invoices
type InvoiceListFilter struct {
	Search        string     `form:"search"`
	ClientID      *uuid.UUID `form:"client_id"`
	QuotationID   *uuid.UUID `form:"quotation_id"`
	Status        string     `form:"status" binding:"omitempty,oneof=draft sent paid overdue cancelled"`
	PaymentStatus string     `form:"payment_status" binding:"omitempty,oneof=pending partial paid"`
	DueBefore     *time.Time `form:"due_before"`
	Page          int        `form:"page"`
	PageSize      int        `form:"page_size"`
	OrderBy       string     `form:"order_by"`
	OrderDir      string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID            uuid.UUID         `json:"id"`
	InvoiceNumber string            `json:"invoice_number"`
	QuotationID   *uuid.UUID        `json:"quotation_id,omitempty"`
	ClientID      uuid.UUID         `json:"client_id"`
	Status        string            `json:"status"`
	PaymentStatus string            `json:"payment_status"`
	Items         billing.LineItems `json:"items"`
	Subtotal      decimal.Decimal   `json:"subtotal"`
	TaxRate       decimal.Decimal   `json:"tax_rate"`
	TaxAmount     decimal.Decimal   `json:"tax_amount"`
	Total         decimal.Decimal   `json:"total"`
	PaidAmount    decimal.Decimal   `json:"paid_amount"`
	Outstanding   decimal.Decimal   `json:"outstanding"`
	DueDate       *time.Time        `json:"due_date,omitempty"`
	Notes         string            `json:"notes"`
	CreatedBy     uuid.UUID         `json:"created_by"`
	PaidAt        *time.Time        `json:"paid_at,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// ToInvoiceResponse converts a domain Invoice to an InvoiceResponse
func ToInvoiceResponse(i *billing.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:            i.ID,
		InvoiceNumber: i.InvoiceNumber,
		QuotationID:   i.QuotationID,
		ClientID:      i.ClientID,
		Status:        string(i.Status),
		PaymentStatus: string(i.PaymentStatus),
		Items:         i.Items,
		Subtotal:      i.Subtotal,
		TaxRate:       i.TaxRate,
		TaxAmount:     i.TaxAmount,
		Total:         i.Total,
		PaidAmount:    i.PaidAmount,
		Outstanding:   i.OutstandingAmount(),
		DueDate:       i.DueDate,
		Notes:         i.Notes,
		CreatedBy:     i.CreatedBy,
		PaidAt:        i.PaidAt,
		CreatedAt:     i.CreatedAt,
		UpdatedAt:     i.UpdatedAt,
	}
}

// =============================================================================
// Payment DTOs
// =============================================================================

// RecordPaymentRequest represents a request to record a payment against
// an invoice
type RecordPaymentRequest struct {
	InvoiceID     uuid.UUID       `json:"invoice_id" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Method        string          `json:"method" binding:"required,oneof=cash check bank_transfer credit_card online"`
	TransactionID string          `json:"transaction_id" binding:"max=200"`
	Notes         string          `json:"notes"`
	PaymentDate   *time.Time      `json:"payment_date"`
}

// PaymentListFilter contains list parameters for payments
type PaymentListFilter struct {
	InvoiceID  *uuid.UUID `form:"invoice_id"`
	Method     string     `form:"method" binding:"omitempty,oneof=cash check bank_transfer credit_card online"`
	RecordedBy *uuid.UUID `form:"recorded_by"`
	FromDate   *time.Time `form:"from_date"`
	ToDate     *time.Time `form:"to_date"`
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID            uuid.UUID       `json:"id"`
	InvoiceID     uuid.UUID       `json:"invoice_id"`
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"method"`
	TransactionID string          `json:"transaction_id"`
	Notes         string          `json:"notes"`
	RecordedBy    uuid.UUID       `json:"recorded_by"`
	PaymentDate   time.Time       `json:"payment_date"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ToPaymentResponse converts a domain Payment to a PaymentResponse
func ToPaymentResponse(p *billing.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            p.ID,
		InvoiceID:     p.InvoiceID,
		Amount:        p.Amount,
		Method:        string(p.Method),
		TransactionID: p.TransactionID,
		Notes:         p.Notes,
		RecordedBy:    p.RecordedBy,
		PaymentDate:   p.PaymentDate,
		CreatedAt:     p.CreatedAt,
	}
}

// RecordPaymentResponse returns the recorded payment together with the
// reconciled invoice
type RecordPaymentResponse struct {
	Payment PaymentResponse `json:"payment"`
	Invoice InvoiceResponse `json:"invoice"`
}
