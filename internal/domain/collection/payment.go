package collection

import (
	"strings"
	"time"

	"github.com/audicob/backend/internal/domain/shared"
	"github.com/audicob/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus represents the validation status of a reported payment
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"   // Reported, awaiting supervisor review
	PaymentStatusValidated PaymentStatus = "VALIDATED" // Confirmed against the account
	PaymentStatusRejected  PaymentStatus = "REJECTED"  // Could not be confirmed
)

// IsValid checks if the payment status is valid
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusValidated, PaymentStatusRejected:
		return true
	}
	return false
}

// IsFinal reports whether the payment has been reviewed
func (s PaymentStatus) IsFinal() bool {
	return s == PaymentStatusValidated || s == PaymentStatusRejected
}

// Payment is the aggregate root for a payment reported against a client's
// debt. Payments enter as PENDING and are confirmed or rejected by a
// supervisor.
type Payment struct {
	shared.BaseAggregateRoot
	ClientID     uuid.UUID
	Amount       decimal.Decimal
	PaidAt       time.Time
	Status       PaymentStatus
	Observation  string
	RegisteredBy uuid.UUID
	ReviewedBy   *uuid.UUID
	ReviewedAt   *time.Time
}

// NewPayment registers a payment pending validation
func NewPayment(clientID uuid.UUID, amount valueobject.Money, paidAt time.Time, registeredBy uuid.UUID) (*Payment, error) {
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}
	if amount.Amount().LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be greater than zero")
	}
	if paidAt.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Payment date is required")
	}
	if registeredBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Registering user is required")
	}

	p := &Payment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ClientID:          clientID,
		Amount:            amount.Amount(),
		PaidAt:            paidAt,
		Status:            PaymentStatusPending,
		RegisteredBy:      registeredBy,
	}

	p.AddDomainEvent(NewPaymentRegisteredEvent(p))

	return p, nil
}

// Validate confirms the payment against the client's account
func (p *Payment) Validate(reviewedBy uuid.UUID, observation string) error {
	if p.Status.IsFinal() {
		return shared.NewDomainError("INVALID_STATE", "Payment has already been reviewed")
	}
	if reviewedBy == uuid.Nil {
		return shared.NewDomainError("INVALID_USER", "Reviewing user is required")
	}

	now := time.Now()
	p.Status = PaymentStatusValidated
	p.Observation = strings.TrimSpace(observation)
	p.ReviewedBy = &reviewedBy
	p.ReviewedAt = &now
	p.UpdatedAt = now
	p.IncrementVersion()

	p.AddDomainEvent(NewPaymentValidatedEvent(p))

	return nil
}

// Reject marks the payment as unconfirmable. A reason is mandatory so the
// advisor knows what to correct.
func (p *Payment) Reject(reviewedBy uuid.UUID, observation string) error {
	if p.Status.IsFinal() {
		return shared.NewDomainError("INVALID_STATE", "Payment has already been reviewed")
	}
	if reviewedBy == uuid.Nil {
		return shared.NewDomainError("INVALID_USER", "Reviewing user is required")
	}
	if strings.TrimSpace(observation) == "" {
		return shared.NewDomainError("MISSING_REASON", "An observation is required when rejecting a payment")
	}

	now := time.Now()
	p.Status = PaymentStatusRejected
	p.Observation = strings.TrimSpace(observation)
	p.ReviewedBy = &reviewedBy
	p.ReviewedAt = &now
	p.UpdatedAt = now
	p.IncrementVersion()

	p.AddDomainEvent(NewPaymentRejectedEvent(p))

	return nil
}

// IsPending reports whether the payment awaits review
func (p *Payment) IsPending() bool {
	return p.Status == PaymentStatusPending
}

// AmountMoney returns the payment amount as Money
func (p *Payment) AmountMoney() valueobject.Money {
	return valueobject.NewMoneyPEN(p.Amount)
}
