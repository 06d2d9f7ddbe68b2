package collection

import (
	"testing"
	"time"

	"github.com/audicob/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestPayment(t *testing.T) *Payment {
	p, err := NewPayment(uuid.New(), valueobject.NewMoneyPENFromFloat(350.00),
		time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC), uuid.New())
	require.NoError(t, err)
	p.ClearDomainEvents()
	return p
}

func TestPaymentStatus_IsFinal(t *testing.T) {
	assert.False(t, PaymentStatusPending.IsFinal())
	assert.True(t, PaymentStatusValidated.IsFinal())
	assert.True(t, PaymentStatusRejected.IsFinal())
}

func TestNewPayment(t *testing.T) {
	clientID := uuid.New()
	registeredBy := uuid.New()
	paidAt := time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC)

	p, err := NewPayment(clientID, valueobject.NewMoneyPENFromFloat(350.00), paidAt, registeredBy)

	require.NoError(t, err)
	assert.Equal(t, clientID, p.ClientID)
	assert.Equal(t, PaymentStatusPending, p.Status)
	assert.True(t, p.IsPending())
	assert.Nil(t, p.ReviewedBy)

	events := p.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventPaymentRegistered, events[0].EventType())
}

func TestNewPayment_Validation(t *testing.T) {
	paidAt := time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC)
	amount := valueobject.NewMoneyPENFromFloat(350.00)

	t.Run("empty client", func(t *testing.T) {
		_, err := NewPayment(uuid.Nil, amount, paidAt, uuid.New())
		assert.Error(t, err)
	})

	t.Run("zero amount", func(t *testing.T) {
		_, err := NewPayment(uuid.New(), valueobject.ZeroPEN(), paidAt, uuid.New())
		assert.Error(t, err)
	})

	t.Run("zero date", func(t *testing.T) {
		_, err := NewPayment(uuid.New(), amount, time.Time{}, uuid.New())
		assert.Error(t, err)
	})

	t.Run("empty registrar", func(t *testing.T) {
		_, err := NewPayment(uuid.New(), amount, paidAt, uuid.Nil)
		assert.Error(t, err)
	})
}

func TestPayment_Validate(t *testing.T) {
	p := createTestPayment(t)
	reviewer := uuid.New()

	require.NoError(t, p.Validate(reviewer, "matches bank statement"))

	assert.Equal(t, PaymentStatusValidated, p.Status)
	assert.False(t, p.IsPending())
	require.NotNil(t, p.ReviewedBy)
	assert.Equal(t, reviewer, *p.ReviewedBy)
	assert.NotNil(t, p.ReviewedAt)

	events := p.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventPaymentValidated, events[0].EventType())
}

func TestPayment_Validate_AlreadyReviewed(t *testing.T) {
	p := createTestPayment(t)
	require.NoError(t, p.Validate(uuid.New(), ""))

	assert.Error(t, p.Validate(uuid.New(), ""))
	assert.Error(t, p.Reject(uuid.New(), "late"))
}

func TestPayment_Reject(t *testing.T) {
	p := createTestPayment(t)
	reviewer := uuid.New()

	require.NoError(t, p.Reject(reviewer, "voucher does not match the deposit"))

	assert.Equal(t, PaymentStatusRejected, p.Status)
	assert.Equal(t, "voucher does not match the deposit", p.Observation)

	events := p.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventPaymentRejected, events[0].EventType())
}

func TestPayment_Reject_RequiresObservation(t *testing.T) {
	p := createTestPayment(t)

	err := p.Reject(uuid.New(), "   ")

	assert.Error(t, err)
	assert.Equal(t, PaymentStatusPending, p.Status)
	assert.Empty(t, p.GetDomainEvents())
}
