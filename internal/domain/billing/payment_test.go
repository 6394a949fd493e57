package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPayment(t *testing.T) {
	invoiceID := uuid.New()
	recordedBy := uuid.New()

	t.Run("creates payment", func(t *testing.T) {
		when := time.Now().Add(-time.Hour)
		payment, err := NewPayment(invoiceID, decimal.NewFromInt(3300), PaymentMethodBankTransfer, "TXN-42", "first installment", recordedBy, when)

		require.NoError(t, err)
		assert.Equal(t, invoiceID, payment.InvoiceID)
		assert.Equal(t, "3300", payment.Amount.String())
		assert.Equal(t, PaymentMethodBankTransfer, payment.Method)
		assert.Equal(t, "TXN-42", payment.TransactionID)
		assert.Equal(t, recordedBy, payment.RecordedBy)
		assert.Equal(t, when, payment.PaymentDate)

		events := payment.GetDomainEvents()
		require.Len(t, events, 1)
		_, ok := events[0].(*PaymentRecordedEvent)
		assert.True(t, ok)
	})

	t.Run("defaults payment date to now", func(t *testing.T) {
		payment, err := NewPayment(invoiceID, decimal.NewFromInt(100), PaymentMethodCash, "", "", recordedBy, time.Time{})

		require.NoError(t, err)
		assert.False(t, payment.PaymentDate.IsZero())
	})

	t.Run("rejects zero amount", func(t *testing.T) {
		_, err := NewPayment(invoiceID, decimal.Zero, PaymentMethodCash, "", "", recordedBy, time.Now())
		assert.Error(t, err)
	})

	t.Run("rejects negative amount", func(t *testing.T) {
		_, err := NewPayment(invoiceID, decimal.NewFromInt(-50), PaymentMethodCash, "", "", recordedBy, time.Now())
		assert.Error(t, err)
	})

	t.Run("rejects unknown method", func(t *testing.T) {
		_, err := NewPayment(invoiceID, decimal.NewFromInt(50), PaymentMethod("barter"), "", "", recordedBy, time.Now())
		assert.Error(t, err)
	})

	t.Run("rejects missing invoice", func(t *testing.T) {
		_, err := NewPayment(uuid.Nil, decimal.NewFromInt(50), PaymentMethodCash, "", "", recordedBy, time.Now())
		assert.Error(t, err)
	})
}

func TestPaymentMethodIsValid(t *testing.T) {
	valid := []PaymentMethod{
		PaymentMethodCash, PaymentMethodCheck, PaymentMethodBankTransfer,
		PaymentMethodCreditCard, PaymentMethodOnline,
	}
	for _, m := range valid {
		assert.True(t, m.IsValid(), "method %s should be valid", m)
	}
	assert.False(t, PaymentMethod("crypto").IsValid())
}
