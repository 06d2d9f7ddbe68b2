package collection

import (
	"time"

	"github.com/audicob/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event type names published on the bus
const (
	EventClientRegistered         = "ClientRegistered"
	EventClientAssigned           = "ClientAssigned"
	EventDelinquencyStatusChanged = "DelinquencyStatusChanged"
	EventDebtRegistered           = "DebtRegistered"
	EventPaymentRegistered        = "PaymentRegistered"
	EventPaymentValidated         = "PaymentValidated"
	EventPaymentRejected          = "PaymentRejected"
)

// ClientRegisteredEvent is raised when a new client enters collection
type ClientRegisteredEvent struct {
	shared.BaseDomainEvent
	ClientID uuid.UUID `json:"client_id"`
	Document string    `json:"document"`
	Name     string    `json:"name"`
}

// NewClientRegisteredEvent creates a new ClientRegisteredEvent
func NewClientRegisteredEvent(c *Client) *ClientRegisteredEvent {
	return &ClientRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventClientRegistered, c.ID, "Client"),
		ClientID:        c.ID,
		Document:        c.Document,
		Name:            c.Name,
	}
}

// ClientAssignedEvent is raised when a client joins an advisor's portfolio
type ClientAssignedEvent struct {
	shared.BaseDomainEvent
	ClientID   uuid.UUID `json:"client_id"`
	ClientName string    `json:"client_name"`
	AdvisorID  uuid.UUID `json:"advisor_id"`
}

// NewClientAssignedEvent creates a new ClientAssignedEvent
func NewClientAssignedEvent(c *Client, advisorID uuid.UUID) *ClientAssignedEvent {
	return &ClientAssignedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventClientAssigned, c.ID, "Client"),
		ClientID:        c.ID,
		ClientName:      c.Name,
		AdvisorID:       advisorID,
	}
}

// DelinquencyStatusChangedEvent is raised after a validated status change.
// Notification delivery subscribes to this event; it is best-effort and
// never affects the transition itself.
type DelinquencyStatusChangedEvent struct {
	shared.BaseDomainEvent
	ClientID       uuid.UUID         `json:"client_id"`
	ClientName     string            `json:"client_name"`
	PreviousStatus DelinquencyStatus `json:"previous_status"`
	NewStatus      DelinquencyStatus `json:"new_status"`
	ChangedBy      uuid.UUID         `json:"changed_by"`
	Reason         string            `json:"reason"`
	ChangedAt      time.Time         `json:"changed_at"`
}

// NewDelinquencyStatusChangedEvent creates a new DelinquencyStatusChangedEvent
func NewDelinquencyStatusChangedEvent(c *Client, previous DelinquencyStatus, t *StatusTransition) *DelinquencyStatusChangedEvent {
	return &DelinquencyStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventDelinquencyStatusChanged, c.ID, "Client"),
		ClientID:        c.ID,
		ClientName:      c.Name,
		PreviousStatus:  previous,
		NewStatus:       t.NewStatus,
		ChangedBy:       t.ChangedBy,
		Reason:          t.Reason,
		ChangedAt:       t.ChangedAt,
	}
}

// DebtRegisteredEvent is raised when a debt is registered for a client
type DebtRegisteredEvent struct {
	shared.BaseDomainEvent
	DebtID    uuid.UUID       `json:"debt_id"`
	ClientID  uuid.UUID       `json:"client_id"`
	Principal decimal.Decimal `json:"principal"`
	DueDate   time.Time       `json:"due_date"`
}

// NewDebtRegisteredEvent creates a new DebtRegisteredEvent
func NewDebtRegisteredEvent(d *Debt) *DebtRegisteredEvent {
	return &DebtRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventDebtRegistered, d.ID, "Debt"),
		DebtID:          d.ID,
		ClientID:        d.ClientID,
		Principal:       d.Principal,
		DueDate:         d.DueDate,
	}
}

// PaymentRegisteredEvent is raised when a payment is reported
type PaymentRegisteredEvent struct {
	shared.BaseDomainEvent
	PaymentID uuid.UUID       `json:"payment_id"`
	ClientID  uuid.UUID       `json:"client_id"`
	Amount    decimal.Decimal `json:"amount"`
	PaidAt    time.Time       `json:"paid_at"`
}

// NewPaymentRegisteredEvent creates a new PaymentRegisteredEvent
func NewPaymentRegisteredEvent(p *Payment) *PaymentRegisteredEvent {
	return &PaymentRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventPaymentRegistered, p.ID, "Payment"),
		PaymentID:       p.ID,
		ClientID:        p.ClientID,
		Amount:          p.Amount,
		PaidAt:          p.PaidAt,
	}
}

// PaymentValidatedEvent is raised when a supervisor confirms a payment
type PaymentValidatedEvent struct {
	shared.BaseDomainEvent
	PaymentID  uuid.UUID       `json:"payment_id"`
	ClientID   uuid.UUID       `json:"client_id"`
	Amount     decimal.Decimal `json:"amount"`
	ReviewedBy uuid.UUID       `json:"reviewed_by"`
}

// NewPaymentValidatedEvent creates a new PaymentValidatedEvent
func NewPaymentValidatedEvent(p *Payment) *PaymentValidatedEvent {
	var reviewedBy uuid.UUID
	if p.ReviewedBy != nil {
		reviewedBy = *p.ReviewedBy
	}
	return &PaymentValidatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventPaymentValidated, p.ID, "Payment"),
		PaymentID:       p.ID,
		ClientID:        p.ClientID,
		Amount:          p.Amount,
		ReviewedBy:      reviewedBy,
	}
}

// PaymentRejectedEvent is raised when a supervisor rejects a payment
type PaymentRejectedEvent struct {
	shared.BaseDomainEvent
	PaymentID   uuid.UUID       `json:"payment_id"`
	ClientID    uuid.UUID       `json:"client_id"`
	Amount      decimal.Decimal `json:"amount"`
	Observation string          `json:"observation"`
	ReviewedBy  uuid.UUID       `json:"reviewed_by"`
}

// NewPaymentRejectedEvent creates a new PaymentRejectedEvent
func NewPaymentRejectedEvent(p *Payment) *PaymentRejectedEvent {
	var reviewedBy uuid.UUID
	if p.ReviewedBy != nil {
		reviewedBy = *p.ReviewedBy
	}
	return &PaymentRejectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventPaymentRejected, p.ID, "Payment"),
		PaymentID:       p.ID,
		ClientID:        p.ClientID,
		Amount:          p.Amount,
		Observation:     p.Observation,
		ReviewedBy:      reviewedBy,
	}
}
