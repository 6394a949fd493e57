package billing

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItem represents a single billable line on a quotation or invoice.
// This is a value object stored as JSONB within the owning aggregate.
type LineItem struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"` // Quantity * UnitPrice
}

// NewLineItem creates a new line item with the amount computed
func NewLineItem(description string, quantity, unitPrice decimal.Decimal) (*LineItem, error) {
	if description == "" {
		return nil, shared.NewDomainError("INVALID_LINE_ITEM", "Line item description cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_LINE_ITEM", "Line item quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_LINE_ITEM", "Line item unit price cannot be negative")
	}

	return &LineItem{
		ID:          uuid.New(),
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Amount:      quantity.Mul(unitPrice),
	}, nil
}

// LineItems is a slice of LineItem that implements GORM Scanner/Valuer for JSONB storage
type LineItems []LineItem

// Value implements driver.Valuer interface for GORM to store as JSONB
func (l LineItems) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner interface for GORM to read from JSONB
func (l *LineItems) Scan(value interface{}) error {
	if value == nil {
		*l = LineItems{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan LineItems: unsupported type")
	}

	if len(bytes) == 0 {
		*l = LineItems{}
		return nil
	}

	return json.Unmarshal(bytes, l)
}

// Subtotal returns the sum of all line item amounts
func (l LineItems) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range l {
		subtotal = subtotal.Add(item.Amount)
	}
	return subtotal
}
